package routes

import (
	"github.com/gofiber/fiber/v2"

	"linguaplatform/backend/config"
	"linguaplatform/backend/controllers"
	"linguaplatform/backend/middleware"
	"linguaplatform/backend/models"
	"linguaplatform/backend/services"
)

func SetupRoutes(app *fiber.App, svc *services.Services, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes
	authController := controllers.NewAuthController(svc.Users, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg, svc.Users)
	teacherOnly := middleware.RequireRole(models.RoleTeacher)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	// User routes
	userController := controllers.NewUserController(svc.Users)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Overview routes
	overviewController := controllers.NewOverviewController(svc.Dashboard)
	app.Get("/api/overview", authMiddleware, overviewController.GetUserOverview)

	// Enrollment routes
	enrollmentController := controllers.NewEnrollmentController(svc.Enrollments)
	app.Get("/api/enrollments", authMiddleware, enrollmentController.GetUserCourses)

	// Courses routes
	coursesController := controllers.NewCoursesController(svc)
	progressController := controllers.NewProgressController(svc.Ledger)
	testsController := controllers.NewTestsController(svc.Assessments)
	notesController := controllers.NewNotesController(svc.Annotations)

	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", coursesController.GetAvailableCourses)
	courses.Get("/:id", coursesController.GetCourseDetails)
	courses.Post("/:id/enroll", enrollmentController.Enroll)
	courses.Delete("/:id/enroll", enrollmentController.Unenroll)

	courses.Get("/:id/lessons", progressController.GetLessons)
	courses.Post("/:id/lessons/:lessonId/watch", progressController.WatchLesson)
	courses.Post("/:id/lessons/:lessonId/skip", progressController.SkipLesson)
	courses.Post("/:id/lessons/:lessonId/select", progressController.SelectLesson)

	courses.Get("/:id/test", testsController.StartTest)
	courses.Post("/:id/test/answer", testsController.AnswerQuestion)
	courses.Post("/:id/test/submit", testsController.SubmitTest)
	courses.Post("/:id/test/retake", testsController.RetakeTest)
	courses.Get("/:id/test/result", testsController.GetTestResult)
	courses.Get("/:id/certificate", testsController.GetCertificate)

	courses.Get("/:id/notes", notesController.GetNotes)
	courses.Post("/:id/notes", notesController.AddNote)
	courses.Delete("/:id/notes/:noteId", notesController.DeleteNote)
	courses.Get("/:id/bookmarks", notesController.GetBookmarks)
	courses.Post("/:id/bookmarks/:lessonId", notesController.ToggleBookmark)

	// Authoring routes
	adminCourses := app.Group("/api/admin/courses", authMiddleware, teacherOnly)
	adminCourses.Post("/", coursesController.CreateCourse)
	adminCourses.Post("/:id/topics", coursesController.AddTopic)
	adminCourses.Post("/:id/topics/:topicId/lessons", coursesController.AddLesson)
	adminCourses.Put("/:id/assessment", coursesController.UpdateAssessment)
	adminCourses.Get("/:id/analytics", coursesController.GetCourseAnalytics)

	// Admin routes for users
	adminUsers := app.Group("/api/admin/users", authMiddleware, adminOnly)
	adminUsers.Get("/", userController.ListUsers)
	adminUsers.Put("/:email/role", userController.UpdateRole)
}
