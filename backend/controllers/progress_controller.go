package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"linguaplatform/backend/models"
	"linguaplatform/backend/services"
	"linguaplatform/backend/utils"
)

type ProgressController struct {
	Ledger *services.Ledger
}

func NewProgressController(ledger *services.Ledger) *ProgressController {
	return &ProgressController{Ledger: ledger}
}

type lessonOp func(ctx context.Context, who services.Learner, courseID, lessonID string) (models.LessonUpdate, error)

func (pc *ProgressController) GetLessons(c *fiber.Ctx) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	view, err := pc.Ledger.CourseLessons(c.UserContext(), who, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, view)
}

func (pc *ProgressController) WatchLesson(c *fiber.Ctx) error {
	return pc.update(c, pc.Ledger.MarkLessonWatched)
}

func (pc *ProgressController) SkipLesson(c *fiber.Ctx) error {
	return pc.update(c, pc.Ledger.SkipLesson)
}

func (pc *ProgressController) SelectLesson(c *fiber.Ctx) error {
	return pc.update(c, pc.Ledger.SelectLesson)
}

func (pc *ProgressController) update(c *fiber.Ctx, op lessonOp) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	up, err := op(c.UserContext(), who, c.Params("id"), c.Params("lessonId"))
	if err != nil {
		return respondError(c, err)
	}
	message := "Progress updated"
	if up.CourseCompleted {
		message = "Course completed"
	}
	return utils.OK(c, message, up)
}
