package ai

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	generationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gema",
		Subsystem: "ai",
		Name:      "generation_duration_seconds",
		Help:      "Duration of structured generation requests",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 45, 60},
	}, []string{"model", "schema"})

	generationOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gema",
		Subsystem: "ai",
		Name:      "generation_outcomes_total",
		Help:      "Structured generation results by outcome",
	}, []string{"model", "schema", "outcome"})

	generationTokens = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gema",
		Subsystem: "ai",
		Name:      "generation_tokens_total",
		Help:      "Tokens consumed by structured generation",
	}, []string{"model", "direction"})
)

// Outcome labels reported by the instrumented provider.
const (
	OutcomeSucceeded   = "succeeded"
	OutcomeNoStructure = "no_structure"
	OutcomeRateLimited = "rate_limited"
	OutcomeTimeout     = "timeout"
	OutcomeError       = "error"
)

type instrumentedProvider struct {
	inner  Provider
	tracer trace.Tracer
	logger zerolog.Logger
}

// WithInstrumentation wraps p with tracing, Prometheus metrics and
// structured logging. It adds no retries.
func WithInstrumentation(p Provider, logger zerolog.Logger) Provider {
	return &instrumentedProvider{
		inner:  p,
		tracer: otel.Tracer("github.com/noah-isme/gema-feedback-api/pkg/ai"),
		logger: logger.With().Str("component", "ai_provider").Str("model", p.ModelID()).Logger(),
	}
}

func (p *instrumentedProvider) Generate(parent context.Context, req Request) (*Response, error) {
	schemaName := "none"
	if req.Schema != nil {
		schemaName = req.Schema.Name
	}
	model := p.inner.ModelID()

	ctx, span := p.tracer.Start(parent, "ai.generate", trace.WithAttributes(
		attribute.String("ai.model", model),
		attribute.String("ai.schema", schemaName),
	))
	defer span.End()

	start := time.Now()
	resp, err := p.inner.Generate(ctx, req)
	duration := time.Since(start)

	outcome := ClassifyError(err)
	generationDuration.WithLabelValues(model, schemaName).Observe(duration.Seconds())
	generationOutcomes.WithLabelValues(model, schemaName, outcome).Inc()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.logger.Warn().Err(err).
			Str("schema", schemaName).
			Str("outcome", outcome).
			Dur("duration", duration).
			Msg("structured generation failed")
		return nil, err
	}

	generationTokens.WithLabelValues(model, "input").Add(float64(resp.Usage.InputTokens))
	generationTokens.WithLabelValues(model, "output").Add(float64(resp.Usage.OutputTokens))
	span.SetAttributes(
		attribute.Int("ai.tokens.input", resp.Usage.InputTokens),
		attribute.Int("ai.tokens.output", resp.Usage.OutputTokens),
		attribute.String("ai.stop_reason", resp.StopReason),
	)
	p.logger.Debug().
		Str("schema", schemaName).
		Dur("duration", duration).
		Int("tokens", resp.Usage.TotalTokens).
		Msg("structured generation completed")

	return resp, nil
}

func (p *instrumentedProvider) ModelID() string {
	return p.inner.ModelID()
}

// ClassifyError maps a Generate error to one of the Outcome labels.
func ClassifyError(err error) string {
	var (
		noStructure *ErrNoStructuredOutput
		rateLimit   *ErrRateLimit
		timeout     *ErrTimeout
	)

	switch {
	case err == nil:
		return OutcomeSucceeded
	case errors.As(err, &noStructure):
		return OutcomeNoStructure
	case errors.As(err, &rateLimit):
		return OutcomeRateLimited
	case errors.As(err, &timeout), errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	default:
		return OutcomeError
	}
}
