package controllers

import (
	"github.com/gofiber/fiber/v2"

	"linguaplatform/backend/services"
	"linguaplatform/backend/utils"
)

type EnrollmentController struct {
	Enrollments *services.Enrollments
}

func NewEnrollmentController(enrollments *services.Enrollments) *EnrollmentController {
	return &EnrollmentController{Enrollments: enrollments}
}

func (ec *EnrollmentController) GetUserCourses(c *fiber.Ctx) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	list, err := ec.Enrollments.List(c.UserContext(), who)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, list)
}

func (ec *EnrollmentController) Enroll(c *fiber.Ctx) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	en, err := ec.Enrollments.Enroll(c.UserContext(), who, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, en)
}

// Unenroll deletes the enrollment together with all progress, notes,
// bookmarks and assessment results for the course.
func (ec *EnrollmentController) Unenroll(c *fiber.Ctx) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	if err := ec.Enrollments.Unenroll(c.UserContext(), who, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return utils.OK(c, "Unenrolled", nil)
}
