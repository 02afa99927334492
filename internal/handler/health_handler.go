package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/gema-feedback-api/internal/config"
	"github.com/noah-isme/gema-feedback-api/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	AIProvider  string    `json:"ai_provider"`
	AIModel     string    `json:"ai_model"`
}

// HealthCheck returns a handler that reports application health information.
// It never calls the AI provider.
func HealthCheck(cfg config.Config, modelID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			AIProvider:  cfg.AIProvider,
			AIModel:     modelID,
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
