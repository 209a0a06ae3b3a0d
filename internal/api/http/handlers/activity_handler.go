package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sq-invest/crm-service/internal/service"
)

// ActivityHandler exposes the recent-activity feed.
type ActivityHandler struct {
	activity *service.ActivityService
}

// NewActivityHandler constructs handler.
func NewActivityHandler(activity *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// Recent handles GET /activity?limit=.
func (h *ActivityHandler) Recent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	return c.JSON(fiber.Map{"data": h.activity.Recent(limit)})
}
