package ai

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoStructuredOutput indicates the provider answered but the answer was
// empty or did not conform to the requested schema.
type ErrNoStructuredOutput struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrNoStructuredOutput) Error() string {
	if e.Err == nil {
		return "no structured output"
	}
	return fmt.Sprintf("no structured output: %v", e.Err)
}

func (e *ErrNoStructuredOutput) Unwrap() error { return e.Err }

// ErrRateLimit indicates the provider rejected the call with HTTP 429.
type ErrRateLimit struct {
	Err error
}

func (e *ErrRateLimit) Error() string { return providerMessage(e.Err, "rate limited") }

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers network, auth and provider-side failures.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	return providerMessage(e.Err, "ai provider unavailable")
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrTimeout indicates the call exceeded its deadline.
type ErrTimeout struct {
	Err error
}

func (e *ErrTimeout) Error() string { return "ai provider did not respond in time" }

func (e *ErrTimeout) Unwrap() error { return e.Err }

// providerMessage keeps the provider's own wording so callers can surface it
// verbatim.
func providerMessage(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}

// IsNoStructuredOutput reports whether err is (or wraps) ErrNoStructuredOutput.
func IsNoStructuredOutput(err error) bool {
	var target *ErrNoStructuredOutput
	return errors.As(err, &target)
}
