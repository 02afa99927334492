package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-feedback-api/internal/middleware"
	"github.com/noah-isme/gema-feedback-api/pkg/ai"
)

// GenerationConfig bounds a single provider call.
type GenerationConfig struct {
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
}

const defaultGenerationTimeout = 60 * time.Second

func (c GenerationConfig) withDefaults() GenerationConfig {
	if c.Timeout <= 0 {
		c.Timeout = defaultGenerationTimeout
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 4096
	}
	return c
}

// invoker performs exactly one structured generation call and maps its
// result to an Outcome.
type invoker struct {
	provider ai.Provider
	config   GenerationConfig
	logger   zerolog.Logger
}

// generate runs the call on a context that keeps the request values but not
// its cancellation: a disconnecting client does not abort the provider call,
// only the time budget does.
func generate[T any](ctx context.Context, inv invoker, req ai.Request, fallback string) Outcome[T] {
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), inv.config.Timeout)
	defer cancel()

	logger := middleware.WithCorrelationLogger(ctx, inv.logger)

	req.MaxTokens = inv.config.MaxTokens
	req.Temperature = inv.config.Temperature

	resp, err := inv.provider.Generate(callCtx, req)
	if err != nil {
		return failureOutcome[T](logger, inv.config.Timeout, callCtx, err, fallback)
	}
	if resp == nil {
		return NoStructure[T]()
	}

	if err := ai.ValidateContent(req.Schema, resp.Content); err != nil {
		if ai.IsNoStructuredOutput(err) {
			logger.Warn().Err(err).Msg("provider output rejected by schema")
			return NoStructure[T]()
		}
		logger.Error().Err(err).Msg("schema validation unavailable")
		return Failed[T](fallback)
	}

	var result T
	if err := json.Unmarshal(resp.Content, &result); err != nil {
		logger.Warn().Err(err).Msg("provider output could not be decoded")
		return NoStructure[T]()
	}

	return Succeeded(result)
}

func failureOutcome[T any](logger zerolog.Logger, budget time.Duration, callCtx context.Context, err error, fallback string) Outcome[T] {
	if ai.IsNoStructuredOutput(err) {
		logger.Warn().Err(err).Msg("provider returned no structured output")
		return NoStructure[T]()
	}

	var timeout *ai.ErrTimeout
	if errors.As(err, &timeout) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		logger.Error().Err(err).Dur("budget", budget).Msg("provider call timed out")
		return Failed[T](fmt.Sprintf("ai provider did not respond within %s", budget))
	}

	logger.Error().Err(err).Msg("provider call failed")
	message := err.Error()
	if message == "" {
		message = fallback
	}
	return Failed[T](message)
}
