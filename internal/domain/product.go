package domain

import "time"

// ProductStatus represents catalog lifecycle states.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusArchived ProductStatus = "archived"
)

// Product is a catalog item listed by a company.
type Product struct {
	ID          string
	CompanyID   string
	Name        string
	Slug        string
	Description string
	PriceCents  int64
	SKU         *string
	Quantity    int
	Category    string
	Status      ProductStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
