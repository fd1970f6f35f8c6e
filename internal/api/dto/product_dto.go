package dto

import (
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// CreateProductRequest payload.
type CreateProductRequest struct {
	CompanyID   string               `json:"companyId"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	PriceCents  int64                `json:"priceCents"`
	SKU         *string              `json:"sku"`
	Quantity    int                  `json:"quantity"`
	Category    string               `json:"category"`
	Status      domain.ProductStatus `json:"status"`
}

// UpdateProductRequest payload for partial updates.
type UpdateProductRequest struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	PriceCents  *int64                `json:"priceCents"`
	SKU         *string               `json:"sku"`
	Quantity    *int                  `json:"quantity"`
	Category    *string               `json:"category"`
	Status      *domain.ProductStatus `json:"status"`
}

// ProductResponse is the public product shape.
type ProductResponse struct {
	ID          string               `json:"id"`
	CompanyID   string               `json:"companyId"`
	Name        string               `json:"name"`
	Slug        string               `json:"slug"`
	Description string               `json:"description"`
	PriceCents  int64                `json:"priceCents"`
	SKU         *string              `json:"sku,omitempty"`
	Quantity    int                  `json:"quantity"`
	Category    string               `json:"category"`
	Status      domain.ProductStatus `json:"status"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// NewProductResponse maps a domain product.
func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		CompanyID:   product.CompanyID,
		Name:        product.Name,
		Slug:        product.Slug,
		Description: product.Description,
		PriceCents:  product.PriceCents,
		SKU:         product.SKU,
		Quantity:    product.Quantity,
		Category:    product.Category,
		Status:      product.Status,
		CreatedAt:   product.CreatedAt,
	}
}
