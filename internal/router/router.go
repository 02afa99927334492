package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/noah-isme/gema-feedback-api/internal/config"
	"github.com/noah-isme/gema-feedback-api/internal/handler"
	"github.com/noah-isme/gema-feedback-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	FeedbackHandler *handler.FeedbackHandler
	PracticeHandler *handler.PracticeHandler
	// ModelID is reported by the health endpoint.
	ModelID string
	// Metrics is served on /metrics; nil serves the default registry.
	Metrics prometheus.Gatherer
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler(deps.Metrics))

	// Common v1 group for health & headers
	v1 := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	v1.Get("/health", handler.HealthCheck(cfg, deps.ModelID))

	if deps.FeedbackHandler != nil {
		deps.FeedbackHandler.Register(app.Group("/api/feedback"))
		deps.FeedbackHandler.Register(app.Group("/feedback"))
	}

	if deps.PracticeHandler != nil {
		deps.PracticeHandler.Register(app.Group("/api/practice"))
		deps.PracticeHandler.Register(app.Group("/practice"))
		deps.PracticeHandler.RegisterTopics(v1.Group("/practice"))
	}
}
