package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// CompanyService manages vendor organizations and the find-or-create owner
// flow.
type CompanyService struct {
	companies  repository.CompanyRepository
	users      repository.UserRepository
	auth       *AuthService
	dispatcher events.Dispatcher
}

// NewCompanyService builds the service.
func NewCompanyService(companies repository.CompanyRepository, users repository.UserRepository, authService *AuthService, dispatcher events.Dispatcher) *CompanyService {
	return &CompanyService{companies: companies, users: users, auth: authService, dispatcher: dispatcher}
}

// CompanyCreateInput carries the company fields plus the optional credentials
// used to mint an owner when the caller is anonymous.
type CompanyCreateInput struct {
	Name         string
	Description  string
	ContactEmail string
	WebsiteURL   *string
	LogoURL      *string
	Address      *string
	PhoneNumber  *string

	// Owner credentials, required only for anonymous callers.
	OwnerEmail     string
	OwnerPassword  string
	OwnerFirstName string
	OwnerLastName  string
}

// CompanyCreateResult reports the company, its owner, and — for a freshly
// minted owner — the issued token pair.
type CompanyCreateResult struct {
	Company     *domain.Company
	Owner       *domain.User
	OwnerWasNew bool
	WasPromoted bool
	Tokens      *auth.TokenPair
}

// CreateWithOwner creates a company and resolves its owning identity.
//
// Two paths: an authenticated caller is reused as the owner and promoted to
// vendor unless already vendor or admin (promotion is idempotent); an
// anonymous caller must supply credentials and goes through the registration
// path at the vendor role, receiving a token pair. Either way the company
// references the owner and the owner is back-linked to the company.
func (s *CompanyService) CreateWithOwner(ctx context.Context, callerID *string, input CompanyCreateInput) (*CompanyCreateResult, error) {
	if input.Name == "" || input.Description == "" || input.ContactEmail == "" {
		return nil, apperrors.NewValidationError("name, description, contact_email required", nil)
	}

	contactEmail, ok := NormalizeEmail(input.ContactEmail)
	if !ok {
		return nil, apperrors.NewValidationError("invalid contact email", nil)
	}

	if _, err := s.companies.GetByContactEmail(ctx, contactEmail); err == nil {
		return nil, apperrors.NewConflict("a company with this contact email already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	result := &CompanyCreateResult{}

	if callerID != nil {
		owner, err := s.users.GetByID(ctx, *callerID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("user", nil)
			}
			return nil, apperrors.MapError(err)
		}
		if !owner.Role.AtLeast(domain.RoleVendor) {
			if err := s.users.UpdateRole(ctx, owner.ID, domain.RoleVendor); err != nil {
				return nil, apperrors.MapError(err)
			}
			owner.Role = domain.RoleVendor
			result.WasPromoted = true
		}
		result.Owner = owner
	} else {
		if input.OwnerEmail == "" || input.OwnerPassword == "" {
			return nil, apperrors.NewValidationError("email and password required to create a company without signing in", nil)
		}
		registered, err := s.auth.register(ctx, input.OwnerEmail, input.OwnerPassword, input.OwnerFirstName, input.OwnerLastName, domain.RoleVendor)
		if err != nil {
			return nil, err
		}
		result.Owner = registered.User
		result.OwnerWasNew = true
		result.Tokens = &registered.Tokens
	}

	company := &domain.Company{
		Name:         input.Name,
		Slug:         Slugify(input.Name),
		OwnerUserID:  result.Owner.ID,
		Description:  input.Description,
		ContactEmail: contactEmail,
		WebsiteURL:   input.WebsiteURL,
		LogoURL:      input.LogoURL,
		Address:      input.Address,
		PhoneNumber:  input.PhoneNumber,
		IsActive:     true,
	}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := s.users.LinkCompany(ctx, result.Owner.ID, company.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	result.Owner.CompanyID = &company.ID
	result.Company = company

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventCompanyCreated,
			UserID:    result.Owner.ID,
			Timestamp: time.Now(),
			Payload: events.CompanyCreatedPayload{
				CompanyID:   company.ID,
				Name:        company.Name,
				OwnerUserID: result.Owner.ID,
				OwnerWasNew: result.OwnerWasNew,
			},
		})
	}

	return result, nil
}

// GetCompany loads a company by ID.
func (s *CompanyService) GetCompany(ctx context.Context, id string) (*domain.Company, error) {
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("company", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return company, nil
}

// ListCompanies returns companies matching the filter.
func (s *CompanyService) ListCompanies(ctx context.Context, filter repository.CompanyFilter) ([]domain.Company, error) {
	companies, err := s.companies.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return companies, nil
}

// CompanyUpdateInput carries mutable company fields.
type CompanyUpdateInput struct {
	Name        *string
	Description *string
	WebsiteURL  *string
	LogoURL     *string
	Address     *string
	PhoneNumber *string
	IsActive    *bool
}

// UpdateCompany applies partial updates. Only the owner or an admin may
// update a company.
func (s *CompanyService) UpdateCompany(ctx context.Context, caller *auth.Principal, id string, input CompanyUpdateInput) (*domain.Company, error) {
	company, err := s.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	if company.OwnerUserID != caller.UserID && !caller.Role.AtLeast(domain.RoleAdmin) {
		return nil, apperrors.NewForbidden("only the company owner or an admin may update this company")
	}

	if input.Name != nil {
		company.Name = *input.Name
		company.Slug = Slugify(*input.Name)
	}
	if input.Description != nil {
		company.Description = *input.Description
	}
	if input.WebsiteURL != nil {
		company.WebsiteURL = input.WebsiteURL
	}
	if input.LogoURL != nil {
		company.LogoURL = input.LogoURL
	}
	if input.Address != nil {
		company.Address = input.Address
	}
	if input.PhoneNumber != nil {
		company.PhoneNumber = input.PhoneNumber
	}
	if input.IsActive != nil {
		company.IsActive = *input.IsActive
	}

	if err := s.companies.Update(ctx, company); err != nil {
		return nil, apperrors.MapError(err)
	}
	return company, nil
}

// DeleteCompany removes a company. Admin only (enforced at the route gate).
func (s *CompanyService) DeleteCompany(ctx context.Context, id string) error {
	if err := s.companies.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("company", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}
