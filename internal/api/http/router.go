package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/spec-kit/marketplace-service/internal/api/http/handlers"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Companies      *handlers.CompaniesHandler
	Products       *handlers.ProductsHandler
	AuthMiddleware *auth.Middleware
	RateLimit      config.RateLimitConfig
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", perIPLimiter(cfg.RateLimit.SignupMax, cfg.RateLimit.SignupWindowMinutes), cfg.Auth.Signup)
	authGroup.Post("/signin", perIPLimiter(cfg.RateLimit.SigninMax, cfg.RateLimit.SigninWindowMinutes), cfg.Auth.Signin)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.AuthMiddleware.Optional(), cfg.Auth.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Required(), cfg.Auth.Me)
	authGroup.Put("/change-password", cfg.AuthMiddleware.Required(), cfg.Auth.ChangePassword)

	companies := api.Group("/companies")
	companies.Post("/", cfg.AuthMiddleware.Optional(), perIPLimiter(cfg.RateLimit.CompanyMax, cfg.RateLimit.CompanyWindowMinutes), cfg.Companies.Create)
	companies.Get("/", cfg.Companies.List)
	companies.Get("/:id", cfg.Companies.Get)
	companies.Put("/:id", cfg.AuthMiddleware.Required(), auth.RequireAtLeast(domain.RoleVendor), cfg.Companies.Update)
	companies.Delete("/:id", cfg.AuthMiddleware.Required(), auth.RequireRole(domain.RoleAdmin), cfg.Companies.Delete)

	products := api.Group("/products")
	products.Get("/", cfg.Products.List)
	products.Get("/:id", cfg.Products.Get)
	products.Post("/", cfg.AuthMiddleware.Required(), auth.RequireRole(domain.RoleVendor, domain.RoleAdmin), cfg.Products.Create)
	products.Put("/:id", cfg.AuthMiddleware.Required(), auth.RequireAtLeast(domain.RoleVendor), cfg.Products.Update)
	products.Delete("/:id", cfg.AuthMiddleware.Required(), auth.RequireAtLeast(domain.RoleVendor), cfg.Products.Delete)
}

// perIPLimiter throttles abuse-prone endpoints on a fixed per-IP window.
func perIPLimiter(max, windowMinutes int) fiber.Handler {
	if max <= 0 || windowMinutes <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Duration(windowMinutes) * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": fiber.Map{
					"code":    "RATE_LIMITED",
					"message": "too many requests, try again later",
				},
			})
		},
	})
}
