package dto

import (
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// CreateCompanyRequest payload. Owner credentials are only required when the
// caller is not signed in.
type CreateCompanyRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	ContactEmail string  `json:"contactEmail"`
	WebsiteURL   *string `json:"websiteUrl"`
	LogoURL      *string `json:"logoUrl"`
	Address      *string `json:"address"`
	PhoneNumber  *string `json:"phoneNumber"`

	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UpdateCompanyRequest payload for partial updates.
type UpdateCompanyRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	WebsiteURL  *string `json:"websiteUrl"`
	LogoURL     *string `json:"logoUrl"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phoneNumber"`
	IsActive    *bool   `json:"isActive"`
}

// CompanyResponse is the public company shape.
type CompanyResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	OwnerUserID  string    `json:"ownerUserId"`
	Description  string    `json:"description"`
	ContactEmail string    `json:"contactEmail"`
	WebsiteURL   *string   `json:"websiteUrl,omitempty"`
	LogoURL      *string   `json:"logoUrl,omitempty"`
	Address      *string   `json:"address,omitempty"`
	PhoneNumber  *string   `json:"phoneNumber,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewCompanyResponse maps a domain company.
func NewCompanyResponse(company *domain.Company) CompanyResponse {
	return CompanyResponse{
		ID:           company.ID,
		Name:         company.Name,
		Slug:         company.Slug,
		OwnerUserID:  company.OwnerUserID,
		Description:  company.Description,
		ContactEmail: company.ContactEmail,
		WebsiteURL:   company.WebsiteURL,
		LogoURL:      company.LogoURL,
		Address:      company.Address,
		PhoneNumber:  company.PhoneNumber,
		IsActive:     company.IsActive,
		CreatedAt:    company.CreatedAt,
	}
}
