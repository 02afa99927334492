package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-feedback-api/internal/middleware"
	"github.com/noah-isme/gema-feedback-api/internal/service"
	"github.com/noah-isme/gema-feedback-api/internal/utils"
)

const invalidBodyMessage = "invalid request body"

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := middleware.WithCorrelationLogger(requestContext(c), base)
	return &logger
}

// requestContext carries the correlation id into the service layer.
func requestContext(c *fiber.Ctx) context.Context {
	return middleware.ContextWithCorrelation(c.UserContext(), middleware.GetCorrelationID(c))
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// validationMessage renders the first failed field as "<field> is required".
func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err.Error()
	}

	fieldErr := validationErrors[0]
	field := lowerFirst(fieldErr.Field())
	if fieldErr.Tag() == "required" {
		return fmt.Sprintf("%s is required", field)
	}
	return fmt.Sprintf("%s is invalid", field)
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// writeOutcome maps a generation outcome to the HTTP contract: the bare
// result on success, {"error"} with 500 otherwise.
func writeOutcome[T any](c *fiber.Ctx, logger *zerolog.Logger, outcome service.Outcome[T]) error {
	if outcome.OK() {
		return utils.SendResult(c, fiber.StatusOK, outcome.Result)
	}

	logger.Warn().Str("outcome", outcome.Kind.String()).Str("message", outcome.Message).Msg("generation did not succeed")
	return utils.SendFailure(c, fiber.StatusInternalServerError, outcome.Message)
}

// decodeBody parses the request body as JSON whatever the Content-Type.
func decodeBody(c *fiber.Ctx, out interface{}) error {
	return json.Unmarshal(c.Body(), out)
}
