package middleware

import (
	"context"
	"strings"
	"unicode"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// HeaderCorrelationID is read from requests and echoed on every response.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is accepted when no correlation header is sent.
	HeaderRequestID = "X-Request-ID"
)

const (
	correlationLocal       = "correlation_id"
	maxCorrelationIDLength = 128
)

type correlationIDKey struct{}

// ContextWithCorrelation returns ctx carrying id. Blank ids leave ctx unchanged.
func ContextWithCorrelation(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationIDFromContext returns the id stored by ContextWithCorrelation.
// It survives context.WithoutCancel, so provider calls detached from the
// client connection still log and publish under the request's id.
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}

// WithCorrelationLogger tags logger with the correlation id found in ctx.
func WithCorrelationLogger(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	if id := CorrelationIDFromContext(ctx); id != "" {
		return logger.With().Str(correlationLocal, id).Logger()
	}
	return logger
}

// CorrelationID tags each feedback or practice request with an id that the
// handlers, the generation logs and the published events share. Incoming
// X-Correlation-ID wins over X-Request-ID; unusable values are replaced by a
// fresh UUID.
func CorrelationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := incomingCorrelationID(c)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(correlationLocal, id)
		c.Set(HeaderCorrelationID, id)
		c.SetUserContext(ContextWithCorrelation(c.UserContext(), id))

		return c.Next()
	}
}

// GetCorrelationID returns the id bound to the active request.
func GetCorrelationID(c *fiber.Ctx) string {
	if c == nil {
		return ""
	}
	if id, ok := c.Locals(correlationLocal).(string); ok && id != "" {
		return id
	}
	return CorrelationIDFromContext(c.UserContext())
}

func incomingCorrelationID(c *fiber.Ctx) string {
	for _, header := range []string{HeaderCorrelationID, HeaderRequestID} {
		if id := strings.TrimSpace(c.Get(header)); usableCorrelationID(id) {
			return id
		}
	}
	return ""
}

// usableCorrelationID rejects ids that would bloat or break log lines.
func usableCorrelationID(id string) bool {
	if id == "" || len(id) > maxCorrelationIDLength {
		return false
	}
	for _, r := range id {
		if !unicode.IsPrint(r) || unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
