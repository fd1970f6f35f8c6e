package domain

import "time"

// Company is a vendor organization owned by a user.
type Company struct {
	ID           string
	Name         string
	Slug         string
	OwnerUserID  string
	Description  string
	ContactEmail string
	WebsiteURL   *string
	LogoURL      *string
	Address      *string
	PhoneNumber  *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
