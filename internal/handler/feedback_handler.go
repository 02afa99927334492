package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-feedback-api/internal/dto"
	"github.com/noah-isme/gema-feedback-api/internal/service"
	"github.com/noah-isme/gema-feedback-api/internal/utils"
)

// FeedbackHandler serves structured feedback generation.
type FeedbackHandler struct {
	service service.FeedbackService
	logger  zerolog.Logger
}

// NewFeedbackHandler constructs a feedback handler.
func NewFeedbackHandler(service service.FeedbackService, logger zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
		logger:  logger.With().Str("component", "feedback_handler").Logger(),
	}
}

// Register wires feedback routes.
func (h *FeedbackHandler) Register(router fiber.Router) {
	router.Post("", h.generate)
}

func (h *FeedbackHandler) generate(c *fiber.Ctx) error {
	var payload dto.FeedbackRequest
	if err := decodeBody(c, &payload); err != nil {
		return utils.SendFailure(c, fiber.StatusBadRequest, invalidBodyMessage)
	}

	logger := requestLogger(h.logger, c)
	outcome, err := h.service.Generate(requestContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendFailure(c, fiber.StatusBadRequest, validationMessage(err))
		}
		logger.Error().Err(err).Msg("failed to generate feedback")
		return utils.SendFailure(c, fiber.StatusInternalServerError, service.FeedbackFailureFallback)
	}

	return writeOutcome(c, logger, outcome)
}
