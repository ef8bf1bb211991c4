package controllers

import (
	"github.com/gofiber/fiber/v2"

	"linguaplatform/backend/services"
	"linguaplatform/backend/utils"
)

type NotesController struct {
	Annotations *services.Annotations
}

func NewNotesController(annotations *services.Annotations) *NotesController {
	return &NotesController{Annotations: annotations}
}

// AddNoteRequest defines the request body for adding a note
type AddNoteRequest struct {
	LessonID string `json:"lessonId" example:"es-101-l1"`
	Text     string `json:"text" example:"ser is for permanent traits"`
}

// AddNote godoc
// @Summary Add a note to a lesson
// @Tags notes
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param input body AddNoteRequest true "Note data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id}/notes [post]
func (nc *NotesController) AddNote(c *fiber.Ctx) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input AddNoteRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	note, err := nc.Annotations.AddNote(c.UserContext(), who, c.Params("id"), input.LessonID, input.Text)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, note)
}

func (nc *NotesController) GetNotes(c *fiber.Ctx) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	notes, err := nc.Annotations.Notes(c.UserContext(), who, c.Params("id"), c.Query("lessonId"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, notes)
}

func (nc *NotesController) DeleteNote(c *fiber.Ctx) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	if err := nc.Annotations.DeleteNote(c.UserContext(), who, c.Params("id"), c.Params("noteId")); err != nil {
		return respondError(c, err)
	}
	return utils.NoContent(c)
}

func (nc *NotesController) GetBookmarks(c *fiber.Ctx) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	marks, err := nc.Annotations.Bookmarks(c.UserContext(), who, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, marks)
}

func (nc *NotesController) ToggleBookmark(c *fiber.Ctx) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	on, err := nc.Annotations.ToggleBookmark(c.UserContext(), who, c.Params("id"), c.Params("lessonId"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.OK(c, "Bookmarks updated", fiber.Map{"lessonId": c.Params("lessonId"), "bookmarked": on})
}
