package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/repository"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// CompaniesHandler exposes company endpoints.
type CompaniesHandler struct {
	service *service.CompanyService
}

// NewCompaniesHandler constructs handler.
func NewCompaniesHandler(companyService *service.CompanyService) *CompaniesHandler {
	return &CompaniesHandler{service: companyService}
}

// Create handles POST /api/companies. Runs behind optional auth: a signed-in
// caller becomes (or already is) the owner, an anonymous caller registers one.
func (h *CompaniesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	var callerID *string
	if principal, ok := auth.PrincipalFromContext(c); ok {
		callerID = &principal.UserID
	}

	result, err := h.service.CreateWithOwner(c.Context(), callerID, service.CompanyCreateInput{
		Name:           req.Name,
		Description:    req.Description,
		ContactEmail:   req.ContactEmail,
		WebsiteURL:     req.WebsiteURL,
		LogoURL:        req.LogoURL,
		Address:        req.Address,
		PhoneNumber:    req.PhoneNumber,
		OwnerEmail:     req.Email,
		OwnerPassword:  req.Password,
		OwnerFirstName: req.FirstName,
		OwnerLastName:  req.LastName,
	})
	if err != nil {
		return err
	}

	data := fiber.Map{
		"company": dto.NewCompanyResponse(result.Company),
		"owner":   dto.NewUserResponse(result.Owner),
	}
	if result.WasPromoted {
		data["ownerPromoted"] = true
	}
	if result.Tokens != nil {
		data["accessToken"] = result.Tokens.AccessToken
		data["refreshToken"] = result.Tokens.RefreshToken
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": data})
}

// List handles GET /api/companies.
func (h *CompaniesHandler) List(c *fiber.Ctx) error {
	filter := repository.CompanyFilter{
		Limit:  parseQueryInt(c, "limit", 10),
		Offset: (parseQueryInt(c, "page", 1) - 1) * parseQueryInt(c, "limit", 10),
	}
	if raw := c.Query("is_active"); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			filter.IsActive = &active
		}
	}

	companies, err := h.service.ListCompanies(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		items = append(items, dto.NewCompanyResponse(&companies[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /api/companies/:id.
func (h *CompaniesHandler) Get(c *fiber.Ctx) error {
	company, err := h.service.GetCompany(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCompanyResponse(company)})
}

// Update handles PUT /api/companies/:id.
func (h *CompaniesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	company, err := h.service.UpdateCompany(c.Context(), principal, c.Params("id"), service.CompanyUpdateInput{
		Name:        req.Name,
		Description: req.Description,
		WebsiteURL:  req.WebsiteURL,
		LogoURL:     req.LogoURL,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCompanyResponse(company)})
}

// Delete handles DELETE /api/companies/:id. Route is admin-gated.
func (h *CompaniesHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.DeleteCompany(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "company deleted"}})
}

func parseQueryInt(c *fiber.Ctx, key string, fallback int) int {
	val, err := strconv.Atoi(c.Query(key))
	if err != nil || val <= 0 {
		return fallback
	}
	return val
}
