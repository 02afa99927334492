package utils

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/gema-feedback-api/internal/dto"
)

// APIResponse describes the envelope used by the operational endpoints.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

// SendSuccess sends a successful JSON response with a message.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	if message == "" {
		message = "success"
	}

	return c.Status(fiber.StatusOK).JSON(APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// SendError sends an enveloped error JSON response with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(APIResponse{
		Success: false,
		Message: message,
	})
}

// SendResult writes v as the bare response body.
func SendResult(c *fiber.Ctx, status int, v interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(v)
}

// SendFailure writes {"error": message}.
func SendFailure(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: message})
}
