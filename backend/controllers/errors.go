package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"linguaplatform/backend/middleware"
	"linguaplatform/backend/services"
	"linguaplatform/backend/utils"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return utils.ValidationError(c, verr.Fields)
	}

	switch {
	case errors.Is(err, services.ErrCourseNotFound),
		errors.Is(err, services.ErrTopicNotFound),
		errors.Is(err, services.ErrLessonNotFound),
		errors.Is(err, services.ErrNoteNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrNoAssessment),
		errors.Is(err, services.ErrNoResult):
		return utils.NotFound(c, err.Error())
	case errors.Is(err, services.ErrCourseExists),
		errors.Is(err, services.ErrAlreadyEnrolled),
		errors.Is(err, services.ErrUserExists),
		errors.Is(err, services.ErrAssessmentSubmitted):
		return utils.Conflict(c, err.Error())
	case errors.Is(err, services.ErrForbiddenRole),
		errors.Is(err, services.ErrNotEnrolled),
		errors.Is(err, services.ErrLessonLocked),
		errors.Is(err, services.ErrCertificateLocked):
		return utils.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidAnswer):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return utils.Unauthorized(c, err.Error())
	}

	middleware.RecordError(c, err)
	return utils.InternalServerError(c, "Internal server error")
}

// learner converts the identity stored by the auth middleware.
func learner(c *fiber.Ctx) (services.Learner, bool) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return services.Learner{}, false
	}
	return services.Learner{UserID: id.UserID, Email: id.Email, Role: id.Role}, true
}
