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

// ProductService manages the catalog owned by vendor companies.
type ProductService struct {
	products   repository.ProductRepository
	companies  repository.CompanyRepository
	dispatcher events.Dispatcher
}

// NewProductService builds the service.
func NewProductService(products repository.ProductRepository, companies repository.CompanyRepository, dispatcher events.Dispatcher) *ProductService {
	return &ProductService{products: products, companies: companies, dispatcher: dispatcher}
}

// ProductCreateInput carries the fields for a new product.
type ProductCreateInput struct {
	Name        string
	Description string
	PriceCents  int64
	SKU         *string
	Quantity    int
	Category    string
	Status      domain.ProductStatus
}

// CreateProduct lists a product under the caller's company. Vendors may only
// list under their own company; admins under any.
func (s *ProductService) CreateProduct(ctx context.Context, caller *auth.Principal, companyID string, input ProductCreateInput) (*domain.Product, error) {
	if input.Name == "" || input.Description == "" || input.Category == "" {
		return nil, apperrors.NewValidationError("name, description, category required", nil)
	}
	if input.PriceCents < 0 {
		return nil, apperrors.NewValidationError("price must not be negative", nil)
	}
	if input.Status == "" {
		input.Status = domain.ProductStatusDraft
	}

	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("company", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if company.OwnerUserID != caller.UserID && !caller.Role.AtLeast(domain.RoleAdmin) {
		return nil, apperrors.NewForbidden("only the company owner or an admin may list products for this company")
	}

	product := &domain.Product{
		CompanyID:   company.ID,
		Name:        input.Name,
		Slug:        Slugify(input.Name) + "-" + uuid.NewString()[:8],
		Description: input.Description,
		PriceCents:  input.PriceCents,
		SKU:         input.SKU,
		Quantity:    input.Quantity,
		Category:    input.Category,
		Status:      input.Status,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventProductCreated,
			UserID:    caller.UserID,
			Timestamp: time.Now(),
			Payload: events.ProductCreatedPayload{
				ProductID: product.ID,
				CompanyID: company.ID,
				Name:      product.Name,
			},
		})
	}

	return product, nil
}

// GetProduct loads a product by ID.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return product, nil
}

// ListProducts returns products matching the filter.
func (s *ProductService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return products, nil
}

// ProductUpdateInput carries mutable product fields.
type ProductUpdateInput struct {
	Name        *string
	Description *string
	PriceCents  *int64
	SKU         *string
	Quantity    *int
	Category    *string
	Status      *domain.ProductStatus
}

// UpdateProduct applies partial updates after an ownership check.
func (s *ProductService) UpdateProduct(ctx context.Context, caller *auth.Principal, id string, input ProductUpdateInput) (*domain.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, caller, product.CompanyID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.PriceCents != nil {
		if *input.PriceCents < 0 {
			return nil, apperrors.NewValidationError("price must not be negative", nil)
		}
		product.PriceCents = *input.PriceCents
	}
	if input.SKU != nil {
		product.SKU = input.SKU
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Status != nil {
		product.Status = *input.Status
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, apperrors.MapError(err)
	}
	return product, nil
}

// DeleteProduct removes a product after an ownership check.
func (s *ProductService) DeleteProduct(ctx context.Context, caller *auth.Principal, id string) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, caller, product.CompanyID); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *ProductService) authorize(ctx context.Context, caller *auth.Principal, companyID string) error {
	if caller.Role.AtLeast(domain.RoleAdmin) {
		return nil
	}
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if company.OwnerUserID != caller.UserID {
		return apperrors.NewForbidden("only the company owner or an admin may modify this product")
	}
	return nil
}
