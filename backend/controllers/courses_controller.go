package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"linguaplatform/backend/models"
	"linguaplatform/backend/services"
	"linguaplatform/backend/utils"
)

type CoursesController struct {
	Catalog     *services.Catalog
	Enrollments *services.Enrollments
	Analytics   *services.Analytics
}

func NewCoursesController(svc *services.Services) *CoursesController {
	return &CoursesController{Catalog: svc.Catalog, Enrollments: svc.Enrollments, Analytics: svc.Analytics}
}

// courseDetails hides correct answers from anyone but the author and admins.
type courseDetails struct {
	models.Course
	Assessment          []models.Question `json:"assessment,omitempty"`
	AssessmentQuestions int               `json:"assessmentQuestions"`
	TotalLessons        int               `json:"totalLessons"`
	Enrolled            bool              `json:"enrolled"`
}

const defaultPageSize = 10

// GetAvailableCourses godoc
// @Summary List catalog courses
// @Tags courses
// @Produce json
// @Param language query string false "Filter by language"
// @Param level query string false "Filter by level"
// @Param search query string false "Search term"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} utils.PaginatedResponse
// @Security ApiKeyAuth
// @Router /courses [get]
func (cc *CoursesController) GetAvailableCourses(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", strconv.Itoa(defaultPageSize)))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	courses, err := cc.Catalog.List(c.UserContext(), services.CourseFilter{
		Language: c.Query("language"),
		Level:    c.Query("level"),
		Search:   c.Query("search"),
	})
	if err != nil {
		return respondError(c, err)
	}

	total := len(courses)
	start := min((page-1)*pageSize, total)
	end := min(start+pageSize, total)

	result := make([]fiber.Map, 0, end-start)
	for _, course := range courses[start:end] {
		result = append(result, fiber.Map{
			"id":           course.ID,
			"title":        course.Title,
			"language":     course.Language,
			"flag":         course.Flag,
			"level":        course.Level,
			"rating":       course.Rating,
			"price":        course.Price,
			"description":  course.Description,
			"instructor":   course.Instructor,
			"totalLessons": len(course.Lessons()),
		})
	}
	return utils.Paginate(c, result, int64(total), page, pageSize)
}

func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	course, err := cc.Catalog.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	enrollments, err := cc.Enrollments.List(c.UserContext(), who)
	if err != nil {
		return respondError(c, err)
	}

	details := courseDetails{
		Course:              course,
		AssessmentQuestions: len(course.Assessment),
		TotalLessons:        len(course.Lessons()),
	}
	if course.AuthorID == who.UserID || who.Role.AtLeast(models.RoleAdmin) {
		details.Assessment = course.Assessment
	}
	for _, en := range enrollments {
		if en.ID == course.ID {
			details.Enrolled = true
			break
		}
	}
	return utils.Success(c, fiber.StatusOK, details)
}

func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input models.Course
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	course, err := cc.Catalog.Create(c.UserContext(), who, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Course created",
		"course":  course,
	})
}

func (cc *CoursesController) AddTopic(c *fiber.Ctx) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Title string `json:"title"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	topic, err := cc.Catalog.AddTopic(c.UserContext(), who, c.Params("id"), input.Title)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Topic added",
		"topic":   topic,
	})
}

// AddLesson appends a lesson to a topic; its order is assigned by the catalog.
func (cc *CoursesController) AddLesson(c *fiber.Ctx) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Duration int    `json:"duration"`
		VideoURL string `json:"videoUrl"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	lesson, err := cc.Catalog.AddLesson(c.UserContext(), who, c.Params("id"), c.Params("topicId"), models.Lesson{
		ID:       input.ID,
		Title:    input.Title,
		Duration: input.Duration,
		VideoURL: input.VideoURL,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Lesson added",
		"lesson":  lesson,
	})
}

func (cc *CoursesController) UpdateAssessment(c *fiber.Ctx) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Questions []models.Question `json:"questions"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if err := cc.Catalog.SetAssessment(c.UserContext(), who, c.Params("id"), input.Questions); err != nil {
		return respondError(c, err)
	}
	return utils.OK(c, "Assessment updated", fiber.Map{"questions": len(input.Questions)})
}

// GetCourseAnalytics is limited to the course author and admins.
func (cc *CoursesController) GetCourseAnalytics(c *fiber.Ctx) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	stats, err := cc.Analytics.Course(c.UserContext(), who, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, stats)
}
