package controllers

import (
	"github.com/gofiber/fiber/v2"

	"linguaplatform/backend/services"
	"linguaplatform/backend/utils"
)

// TestsController serves the end-of-course assessment.
type TestsController struct {
	Assessments *services.Assessments
}

func NewTestsController(assessments *services.Assessments) *TestsController {
	return &TestsController{Assessments: assessments}
}

func (tc *TestsController) StartTest(c *fiber.Ctx) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	view, err := tc.Assessments.Start(c.UserContext(), who, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, view)
}

func (tc *TestsController) AnswerQuestion(c *fiber.Ctx) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Question *int `json:"question"`
		Answer   *int `json:"answer"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Question == nil || input.Answer == nil {
		return utils.BadRequest(c, "question and answer are required")
	}

	view, err := tc.Assessments.Answer(c.UserContext(), who, c.Params("id"), *input.Question, *input.Answer)
	if err != nil {
		return respondError(c, err)
	}
	return utils.OK(c, "Answer saved", view)
}

// SubmitTest scores the attempt. Answers in the body are merged over the ones
// saved with AnswerQuestion; keys are canonical question indices.
func (tc *TestsController) SubmitTest(c *fiber.Ctx) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Answers map[int]int `json:"answers"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return utils.BadRequest(c, "Cannot parse JSON")
		}
	}

	res, err := tc.Assessments.Submit(c.UserContext(), who, c.Params("id"), input.Answers)
	if err != nil {
		return respondError(c, err)
	}
	return utils.OK(c, "Test submitted", res)
}

func (tc *TestsController) RetakeTest(c *fiber.Ctx) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	view, err := tc.Assessments.Retake(c.UserContext(), who, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.OK(c, "Test reset", view)
}

func (tc *TestsController) GetTestResult(c *fiber.Ctx) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	res, err := tc.Assessments.Result(c.UserContext(), who, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, res)
}

func (tc *TestsController) GetCertificate(c *fiber.Ctx) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	cert, err := tc.Assessments.Certificate(c.UserContext(), who, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, cert)
}
