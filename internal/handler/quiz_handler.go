package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/projecta-dev/projecta-api/internal/dto"
	"github.com/projecta-dev/projecta-api/internal/observability"
	"github.com/projecta-dev/projecta-api/internal/service"
	"github.com/projecta-dev/projecta-api/internal/utils"
)

// QuizHandler manages quiz submission and result endpoints.
type QuizHandler struct {
	service service.GradingService
	logger  zerolog.Logger
}

// NewQuizHandler builds a quiz handler instance.
func NewQuizHandler(service service.GradingService, logger zerolog.Logger) *QuizHandler {
	return &QuizHandler{
		service: service,
		logger:  logger.With().Str("component", "quiz_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *QuizHandler) Register(router fiber.Router) {
	router.Post("/:id/submit-quiz", h.submit)
	router.Get("/:id/results/:studentId", h.result)
}

func (h *QuizHandler) submit(c *fiber.Ctx) error {
	assessmentID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.QuizSubmissionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.SubmitQuiz(c.Context(), assessmentID, payload)
	if err != nil {
		if errors.Is(err, service.ErrAlreadySubmitted) {
			observability.QuizSubmissions().WithLabelValues("duplicate").Inc()
		} else {
			observability.QuizSubmissions().WithLabelValues("rejected").Inc()
		}
		return h.handleError(c, err)
	}
	observability.QuizSubmissions().WithLabelValues("graded").Inc()

	return c.Status(fiber.StatusCreated).JSON(dto.QuizSubmissionEnvelope{
		Success: true,
		Result:  result,
	})
}

func (h *QuizHandler) result(c *fiber.Ctx) error {
	assessmentID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.service.Result(c.Context(), assessmentID, studentID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "quiz result retrieved", result)
}

func (h *QuizHandler) handleError(c *fiber.Ctx, err error) error {
	var malformed *service.MalformedAnswerError
	switch {
	case errors.Is(err, service.ErrAssessmentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "assessment not found")
	case errors.Is(err, service.ErrScoreNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "score not found")
	case errors.Is(err, service.ErrNotQuiz):
		return utils.SendError(c, fiber.StatusBadRequest, "assessment is not a quiz")
	case errors.Is(err, service.ErrAlreadySubmitted):
		return utils.SendError(c, fiber.StatusBadRequest, "quiz already submitted")
	case errors.As(err, &malformed):
		return utils.SendError(c, fiber.StatusBadRequest, malformed.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
