package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// invalidCredentials is shared by "unknown email" and "wrong password" so the
// two cases cannot be told apart from the outside.
const invalidCredentials = "invalid email or password"

// AuthResult bundles a sanitized user with its freshly issued token pair.
type AuthResult struct {
	User   *domain.User
	Tokens auth.TokenPair
}

// AuthService orchestrates the credential lifecycle: signup, signin, refresh,
// logout, and password changes.
type AuthService struct {
	users      repository.UserRepository
	sessions   *auth.SessionStore
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// AuthDependencies encapsulates collaborator requirements for the auth service.
type AuthDependencies struct {
	UserRepo     repository.UserRepository
	SessionStore *auth.SessionStore
	TokenManager *auth.TokenManager
	Dispatcher   events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		sessions:   deps.SessionStore,
		tokenMgr:   deps.TokenManager,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.BcryptCost,
	}
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Signup creates a new identity at the default role and establishes a session.
func (s *AuthService) Signup(ctx context.Context, email, password, firstName, lastName string) (*AuthResult, error) {
	return s.register(ctx, email, password, firstName, lastName, domain.RoleCustomer)
}

// register is the shared identity-creation path used by Signup and by company
// creation for anonymous owners.
func (s *AuthService) register(ctx context.Context, email, password, firstName, lastName string, role domain.Role) (*AuthResult, error) {
	normalized, ok := NormalizeEmail(email)
	if !ok {
		return nil, apperrors.NewValidationError("invalid email address", nil)
	}

	if violations := auth.ValidatePasswordStrength(password); len(violations) > 0 {
		return nil, apperrors.NewValidationError("password too weak", map[string]any{"violations": violations})
	}

	if _, err := s.users.GetByEmail(ctx, normalized); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Email:        normalized,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	tokens, err := s.establishSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserRegisteredPayload{Email: user.Email, Role: user.Role})

	return &AuthResult{User: user, Tokens: tokens}, nil
}

// Signin verifies credentials and establishes a fresh session, superseding any
// previous one. Unknown email and wrong password fail identically.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*AuthResult, error) {
	normalized, ok := NormalizeEmail(email)
	if !ok {
		return nil, apperrors.NewValidationError("invalid email address", nil)
	}

	user, err := s.users.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized(invalidCredentials)
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized(invalidCredentials)
	}

	tokens, err := s.establishSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserSignedIn, user.ID, events.UserSignedInPayload{Email: user.Email})

	return &AuthResult{User: user, Tokens: tokens}, nil
}

// Refresh rotates the token pair. The refresh token must verify
// cryptographically AND match a live server-side session; an absent session
// (logout, expiry, supersession) is rejected even though the JWT itself is
// still valid. A store outage surfaces as 503, never as 401.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.tokenMgr.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid or expired refresh token")
	}

	stored, err := s.sessions.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrNoSession) {
			return nil, apperrors.NewUnauthorized("session expired")
		}
		return nil, apperrors.NewUnavailable("session store", err)
	}
	// A presented token that no longer matches the stored one was superseded
	// by a newer signin or refresh; it is one-time-use by rotation.
	if stored != refreshToken {
		return nil, apperrors.NewUnauthorized("session expired")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}

	tokens, err := s.establishSession(ctx, user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Tokens: tokens}, nil
}

// Logout revokes the user's session. Idempotent.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.sessions.Delete(ctx, userID); err != nil {
		return apperrors.NewUnavailable("session store", err)
	}
	s.publish(ctx, events.EventSessionRevoked, userID, events.SessionRevokedPayload{Reason: "logout"})
	return nil
}

// ChangePassword re-verifies the current password, rotates the hash, and
// revokes the session so every holder of the old refresh token must sign in
// again. Already-issued access tokens remain valid until their natural expiry.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return apperrors.MapError(err)
	}

	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("current password is incorrect")
	}

	if violations := auth.ValidatePasswordStrength(newPassword); len(violations) > 0 {
		return apperrors.NewValidationError("password too weak", map[string]any{"violations": violations})
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := s.users.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return apperrors.MapError(err)
	}

	if err := s.sessions.Delete(ctx, userID); err != nil {
		return apperrors.NewUnavailable("session store", err)
	}

	s.publish(ctx, events.EventPasswordChanged, userID, nil)
	s.publish(ctx, events.EventSessionRevoked, userID, events.SessionRevokedPayload{Reason: "password_changed"})
	return nil
}

// GetUser loads a sanitizable user record for the /me endpoint.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// establishSession issues a pair and records the refresh token as the user's
// only live session. The unconditional overwrite is the rotation mechanic.
func (s *AuthService) establishSession(ctx context.Context, user *domain.User) (auth.TokenPair, error) {
	tokens, err := s.tokenMgr.IssuePair(user.ID, user.Email, user.Role)
	if err != nil {
		return auth.TokenPair{}, apperrors.MapError(err)
	}
	if err := s.sessions.Put(ctx, user.ID, tokens.RefreshToken); err != nil {
		return auth.TokenPair{}, apperrors.NewUnavailable("session store", err)
	}
	return tokens, nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, userID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
