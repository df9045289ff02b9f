package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/projecta-dev/projecta-api/internal/dto"
	"github.com/projecta-dev/projecta-api/internal/service"
	"github.com/projecta-dev/projecta-api/internal/utils"
)

// ShowcaseHandler serves the public showcase feed.
type ShowcaseHandler struct {
	service service.ShowcaseService
	logger  zerolog.Logger
}

// NewShowcaseHandler builds a showcase handler instance.
func NewShowcaseHandler(service service.ShowcaseService, logger zerolog.Logger) *ShowcaseHandler {
	return &ShowcaseHandler{
		service: service,
		logger:  logger.With().Str("component", "showcase_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ShowcaseHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/submissions/:submissionId", h.getBySubmission)
}

func (h *ShowcaseHandler) list(c *fiber.Ctx) error {
	req := dto.ShowcaseListRequest{}
	if page, err := parseQueryInt(c, "page"); err == nil {
		req.Page = page
	}
	if pageSize, err := parseQueryInt(c, "page_size"); err == nil {
		req.PageSize = pageSize
	}

	feed, err := h.service.ListPublic(c.Context(), req)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "showcases retrieved", feed)
}

func (h *ShowcaseHandler) getBySubmission(c *fiber.Ctx) error {
	submissionID, err := parseUintParam(c, "submissionId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	showcase, err := h.service.GetBySubmission(c.Context(), submissionID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "showcase retrieved", showcase)
}

func (h *ShowcaseHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrShowcaseNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "showcase not found")
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
