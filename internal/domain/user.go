package domain

import "time"

// Role is the closed set of capability tiers a user can hold.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

// roleRank orders roles by capability so gates compare tiers, not string literals.
var roleRank = map[Role]int{
	RoleCustomer: 0,
	RoleVendor:   1,
	RoleAdmin:    2,
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r carries at least the capability of other.
func (r Role) AtLeast(other Role) bool {
	return roleRank[r] >= roleRank[other]
}

// User is the domain model for an authenticated principal.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	CompanyID    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
