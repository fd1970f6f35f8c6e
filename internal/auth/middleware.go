package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/domain"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

const principalKey = "auth_principal"

// AccessTokenCookie is checked before the Authorization header. The ordered
// extraction strategy is configured here once, not per middleware variant.
const AccessTokenCookie = "accessToken"

// Principal represents the authenticated caller, resolved from verified
// access-token claims. Access tokens are stateless: the session store is not
// consulted here, only on refresh.
type Principal struct {
	UserID string
	Email  string
	Role   domain.Role
}

// Middleware resolves bearer credentials into request-scoped principals.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs the identity resolver.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

func (m *Middleware) extract(c *fiber.Ctx) string {
	if token := c.Cookies(AccessTokenCookie); token != "" {
		return token
	}
	return ExtractBearer(c.Get(fiber.HeaderAuthorization))
}

// Required rejects the request unless a valid access token is presented.
func (m *Middleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := m.extract(c)
		if token == "" {
			return apperrors.NewUnauthorized("authentication token not provided")
		}
		claims, err := m.tokens.VerifyAccess(token)
		if err != nil {
			return apperrors.NewUnauthorized("invalid or expired token")
		}
		c.Locals(principalKey, &Principal{UserID: claims.UserID, Email: claims.Email, Role: claims.Role})
		return c.Next()
	}
}

// Optional resolves a principal when a valid token is present and silently
// proceeds without one otherwise.
func (m *Middleware) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := m.extract(c); token != "" {
			if claims, err := m.tokens.VerifyAccess(token); err == nil {
				c.Locals(principalKey, &Principal{UserID: claims.UserID, Email: claims.Email, Role: claims.Role})
			}
		}
		return c.Next()
	}
}

// RequireRole gates a route behind an allow-set of roles. Runs after
// Required; a valid principal with an insufficient role gets 403, not 401.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAtLeast gates a route behind a minimum capability tier, so adding a
// tier above the threshold does not require touching the gate.
func RequireAtLeast(minimum domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.Role.AtLeast(minimum) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// PrincipalFromContext retrieves the authenticated caller, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
