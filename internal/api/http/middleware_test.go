package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/marketplace-service/internal/observability"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

func TestRequestLogObservesTranslatedStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	metrics := observability.NewMetrics()

	app := fiber.New()
	RegisterMiddlewares(app, zap.New(core), metrics, time.Second)
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("thing", nil)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}

	var logged int64 = -1
	for _, entry := range logs.All() {
		if entry.Message != "request" {
			continue
		}
		if status, ok := entry.ContextMap()["status"].(int64); ok {
			logged = status
		}
	}
	if logged != http.StatusNotFound {
		t.Errorf("logged status = %d, want 404", logged)
	}

	snapshot := metrics.Snapshot()
	if stats := snapshot["/missing|GET|404"]; stats.Requests != 1 {
		t.Errorf("request counter for 404 = %d, want 1", stats.Requests)
	}
	if stats := snapshot["/missing|GET|NOT_FOUND"]; stats.Errors != 1 {
		t.Errorf("error counter = %d, want 1", stats.Errors)
	}
}

func TestPanicRecoveredAsInternalError(t *testing.T) {
	core, _ := observer.New(zap.InfoLevel)

	app := fiber.New()
	RegisterMiddlewares(app, zap.New(core), observability.NewMetrics(), time.Second)
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}
