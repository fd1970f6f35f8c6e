package events

import (
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventUserSignedIn    EventType = "user_signed_in"
	EventPasswordChanged EventType = "password_changed"
	EventSessionRevoked  EventType = "session_revoked"
	EventCompanyCreated  EventType = "company_created"
	EventProductCreated  EventType = "product_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// UserSignedInPayload payload.
type UserSignedInPayload struct {
	Email string `json:"email"`
}

// SessionRevokedPayload payload.
type SessionRevokedPayload struct {
	Reason string `json:"reason"`
}

// CompanyCreatedPayload payload.
type CompanyCreatedPayload struct {
	CompanyID   string `json:"company_id"`
	Name        string `json:"name"`
	OwnerUserID string `json:"owner_user_id"`
	OwnerWasNew bool   `json:"owner_was_new"`
}

// ProductCreatedPayload payload.
type ProductCreatedPayload struct {
	ProductID string `json:"product_id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
}
