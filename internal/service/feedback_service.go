package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-feedback-api/internal/dto"
	"github.com/noah-isme/gema-feedback-api/internal/middleware"
	"github.com/noah-isme/gema-feedback-api/pkg/ai"
)

// FeedbackService generates structured feedback for a submission.
type FeedbackService interface {
	Generate(ctx context.Context, payload dto.FeedbackRequest) (Outcome[dto.FeedbackResult], error)
}

type feedbackService struct {
	invoker   invoker
	events    EventPublisher
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewFeedbackService constructs the feedback generator. events may be nil.
func NewFeedbackService(provider ai.Provider, events EventPublisher, validate *validator.Validate, logger zerolog.Logger, cfg GenerationConfig) FeedbackService {
	if events == nil {
		events = NoopEventPublisher()
	}
	logger = logger.With().Str("component", "feedback_service").Logger()

	return &feedbackService{
		invoker: invoker{
			provider: provider,
			config:   cfg.withDefaults(),
			logger:   logger,
		},
		events:    events,
		validator: validate,
		logger:    logger,
	}
}

// Generate validates the payload, resolves the category and performs one
// generation call. A non-nil error means the payload itself was rejected.
func (s *feedbackService) Generate(ctx context.Context, payload dto.FeedbackRequest) (Outcome[dto.FeedbackResult], error) {
	if err := s.validator.Struct(payload); err != nil {
		return Outcome[dto.FeedbackResult]{}, err
	}

	category := ResolveCategory(payload.Type)
	started := time.Now()

	outcome := generate[dto.FeedbackResult](ctx, s.invoker, ai.Request{
		System: FeedbackInstruction(category),
		Prompt: FeedbackPrompt(category, payload.Content),
		Schema: FeedbackSchema,
	}, FeedbackFailureFallback)

	event := newGenerationEvent(EventKindFeedback, category, s.invoker.provider.ModelID(), middleware.CorrelationIDFromContext(ctx), started, outcome.Kind)
	if outcome.OK() {
		score := outcome.Result.OverallScore
		event.OverallScore = &score
		event.LetterGrade = outcome.Result.LetterGrade
		event.WeakTopics = outcome.Result.WeakTopics
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("event_id", event.ID).Msg("failed to publish feedback event")
	}

	return outcome, nil
}
