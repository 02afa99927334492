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

// PracticeService generates practice problems and lists suggested topics.
type PracticeService interface {
	Generate(ctx context.Context, payload dto.PracticeRequest) (Outcome[dto.PracticeResult], error)
	Topics(category string) dto.PracticeTopicsResponse
}

type practiceService struct {
	invoker   invoker
	events    EventPublisher
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewPracticeService constructs the practice generator. events may be nil.
func NewPracticeService(provider ai.Provider, events EventPublisher, validate *validator.Validate, logger zerolog.Logger, cfg GenerationConfig) PracticeService {
	if events == nil {
		events = NoopEventPublisher()
	}
	logger = logger.With().Str("component", "practice_service").Logger()

	return &practiceService{
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

func (s *practiceService) Generate(ctx context.Context, payload dto.PracticeRequest) (Outcome[dto.PracticeResult], error) {
	if err := s.validator.Struct(payload); err != nil {
		return Outcome[dto.PracticeResult]{}, err
	}

	// Topic is plain text for the model and is interpolated verbatim.
	topic := payload.Topic
	category := ResolveCategory(payload.Type)
	difficulty := normaliseDifficulty(payload.Difficulty)
	started := time.Now()

	outcome := generate[dto.PracticeResult](ctx, s.invoker, ai.Request{
		System: PracticeInstruction(category, difficulty, topic),
		Prompt: PracticePrompt(category, difficulty, topic),
		Schema: PracticeSchema,
	}, PracticeFailureFallback)

	event := newGenerationEvent(EventKindPractice, category, s.invoker.provider.ModelID(), middleware.CorrelationIDFromContext(ctx), started, outcome.Kind)
	event.Topic = topic
	event.Difficulty = difficulty
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("event_id", event.ID).Msg("failed to publish practice event")
	}

	return outcome, nil
}

func (s *practiceService) Topics(category string) dto.PracticeTopicsResponse {
	resolved := ResolveCategory(category)
	return dto.PracticeTopicsResponse{
		Type:   string(resolved),
		Topics: TopicSuggestions(resolved),
	}
}
