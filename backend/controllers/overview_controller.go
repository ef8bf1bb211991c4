package controllers

import (
	"github.com/gofiber/fiber/v2"

	"linguaplatform/backend/services"
	"linguaplatform/backend/utils"
)

type OverviewController struct {
	Dashboard *services.Dashboard
}

func NewOverviewController(dashboard *services.Dashboard) *OverviewController {
	return &OverviewController{Dashboard: dashboard}
}

// GetUserOverview returns the learner dashboard: per-course progress,
// totals, streak, achievements and recent activity.
func (oc *OverviewController) GetUserOverview(c *fiber.Ctx) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	d, err := oc.Dashboard.Load(c.UserContext(), who)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, d)
}
