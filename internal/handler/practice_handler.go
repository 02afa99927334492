package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-feedback-api/internal/dto"
	"github.com/noah-isme/gema-feedback-api/internal/service"
	"github.com/noah-isme/gema-feedback-api/internal/utils"
)

// PracticeHandler serves practice problem generation and topic suggestions.
type PracticeHandler struct {
	service service.PracticeService
	logger  zerolog.Logger
}

// NewPracticeHandler constructs a practice handler.
func NewPracticeHandler(service service.PracticeService, logger zerolog.Logger) *PracticeHandler {
	return &PracticeHandler{
		service: service,
		logger:  logger.With().Str("component", "practice_handler").Logger(),
	}
}

// Register wires the generation route.
func (h *PracticeHandler) Register(router fiber.Router) {
	router.Post("", h.generate)
}

// RegisterTopics wires the topic suggestion route.
func (h *PracticeHandler) RegisterTopics(router fiber.Router) {
	router.Get("/topics", h.topics)
}

func (h *PracticeHandler) generate(c *fiber.Ctx) error {
	var payload dto.PracticeRequest
	if err := decodeBody(c, &payload); err != nil {
		return utils.SendFailure(c, fiber.StatusBadRequest, invalidBodyMessage)
	}

	logger := requestLogger(h.logger, c)
	outcome, err := h.service.Generate(requestContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendFailure(c, fiber.StatusBadRequest, validationMessage(err))
		}
		logger.Error().Err(err).Msg("failed to generate practice problem")
		return utils.SendFailure(c, fiber.StatusInternalServerError, service.PracticeFailureFallback)
	}

	return writeOutcome(c, logger, outcome)
}

func (h *PracticeHandler) topics(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "practice topics", h.service.Topics(c.Query("type")))
}
