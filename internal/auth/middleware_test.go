package auth_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

func newTestApp(t *testing.T) (*fiber.App, *auth.TokenManager) {
	t.Helper()

	tm := auth.NewTokenManager("access-secret", time.Minute, "refresh-secret", time.Hour)
	m := auth.NewMiddleware(tm)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": domainErr.Code}})
		}
		return nil
	})

	app.Get("/required", m.Required(), func(c *fiber.Ctx) error {
		principal, _ := auth.PrincipalFromContext(c)
		return c.SendString(principal.Email)
	})
	app.Get("/optional", m.Optional(), func(c *fiber.Ctx) error {
		if principal, ok := auth.PrincipalFromContext(c); ok {
			return c.SendString(principal.Email)
		}
		return c.SendString("anonymous")
	})
	app.Get("/admin", m.Required(), auth.RequireRole(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/vendor-up", m.Required(), auth.RequireAtLeast(domain.RoleVendor), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	return app, tm
}

func issueAccess(t *testing.T, tm *auth.TokenManager, role domain.Role) string {
	t.Helper()
	pair, err := tm.IssuePair("user-1", "a@b.com", role)
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	return pair.AccessToken
}

func doRequest(t *testing.T, app *fiber.App, path, bearer, cookie string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: cookie})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestRequiredRejectsMissingToken(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := doRequest(t, app, "/required", "", "")
	if status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
}

func TestRequiredRejectsInvalidToken(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := doRequest(t, app, "/required", "garbage", "")
	if status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
}

func TestRequiredAcceptsBearerHeader(t *testing.T) {
	app, tm := newTestApp(t)

	status, body := doRequest(t, app, "/required", issueAccess(t, tm, domain.RoleCustomer), "")
	if status != http.StatusOK || body != "a@b.com" {
		t.Errorf("got %d %q, want 200 a@b.com", status, body)
	}
}

func TestRequiredAcceptsCookie(t *testing.T) {
	app, tm := newTestApp(t)

	status, body := doRequest(t, app, "/required", "", issueAccess(t, tm, domain.RoleCustomer))
	if status != http.StatusOK || body != "a@b.com" {
		t.Errorf("got %d %q, want 200 a@b.com", status, body)
	}
}

func TestRequiredRejectsRefreshTokenAsAccess(t *testing.T) {
	app, tm := newTestApp(t)

	pair, err := tm.IssuePair("user-1", "a@b.com", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	status, _ := doRequest(t, app, "/required", pair.RefreshToken, "")
	if status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 (cross-secret rejection)", status)
	}
}

func TestOptionalProceedsWithoutToken(t *testing.T) {
	app, tm := newTestApp(t)

	status, body := doRequest(t, app, "/optional", "", "")
	if status != http.StatusOK || body != "anonymous" {
		t.Errorf("got %d %q, want 200 anonymous", status, body)
	}

	// An invalid token is swallowed too.
	status, body = doRequest(t, app, "/optional", "garbage", "")
	if status != http.StatusOK || body != "anonymous" {
		t.Errorf("got %d %q, want 200 anonymous", status, body)
	}

	status, body = doRequest(t, app, "/optional", issueAccess(t, tm, domain.RoleCustomer), "")
	if status != http.StatusOK || body != "a@b.com" {
		t.Errorf("got %d %q, want 200 a@b.com", status, body)
	}
}

func TestRoleGateDistinguishes401From403(t *testing.T) {
	app, tm := newTestApp(t)

	status, body := doRequest(t, app, "/admin", "", "")
	if status != http.StatusUnauthorized {
		t.Errorf("missing token: status = %d, want 401", status)
	}

	status, body = doRequest(t, app, "/admin", issueAccess(t, tm, domain.RoleCustomer), "")
	if status != http.StatusForbidden || !strings.Contains(body, "FORBIDDEN") {
		t.Errorf("customer on admin route: got %d %q, want 403 FORBIDDEN", status, body)
	}

	status, _ = doRequest(t, app, "/admin", issueAccess(t, tm, domain.RoleAdmin), "")
	if status != http.StatusOK {
		t.Errorf("admin on admin route: status = %d, want 200", status)
	}
}

func TestRequireAtLeastCapabilityOrdering(t *testing.T) {
	app, tm := newTestApp(t)

	status, _ := doRequest(t, app, "/vendor-up", issueAccess(t, tm, domain.RoleCustomer), "")
	if status != http.StatusForbidden {
		t.Errorf("customer: status = %d, want 403", status)
	}
	status, _ = doRequest(t, app, "/vendor-up", issueAccess(t, tm, domain.RoleVendor), "")
	if status != http.StatusOK {
		t.Errorf("vendor: status = %d, want 200", status)
	}
	// A tier above the threshold passes without the gate naming it.
	status, _ = doRequest(t, app, "/vendor-up", issueAccess(t, tm, domain.RoleAdmin), "")
	if status != http.StatusOK {
		t.Errorf("admin: status = %d, want 200", status)
	}
}
