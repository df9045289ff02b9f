package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/projecta-dev/projecta-api/internal/dto"
	"github.com/projecta-dev/projecta-api/internal/service"
	"github.com/projecta-dev/projecta-api/internal/utils"
)

// ActivityFeedHandler serves the activity feed.
type ActivityFeedHandler struct {
	service service.ActivityService
	logger  zerolog.Logger
}

// NewActivityFeedHandler builds an activity feed handler instance.
func NewActivityFeedHandler(service service.ActivityService, logger zerolog.Logger) *ActivityFeedHandler {
	return &ActivityFeedHandler{
		service: service,
		logger:  logger.With().Str("component", "activity_feed_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ActivityFeedHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *ActivityFeedHandler) list(c *fiber.Ctx) error {
	req := dto.ActivityListRequest{
		Action:     c.Query("action"),
		EntityType: c.Query("entity_type"),
	}
	if page, err := parseQueryInt(c, "page"); err == nil {
		req.Page = page
	}
	if pageSize, err := parseQueryInt(c, "page_size"); err == nil {
		req.PageSize = pageSize
	}
	if actorID, err := parseQueryUint(c, "actor_id"); err == nil && actorID != nil {
		req.ActorID = *actorID
	}

	feed, err := h.service.List(c.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "activity retrieved", feed)
}
