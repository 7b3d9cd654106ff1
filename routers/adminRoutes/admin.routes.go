package adminRoutes

import (
	adminControllers "inspecteur/controllers/admin"
	messageController "inspecteur/controllers/message"
	"inspecteur/middleware"
	emailService "inspecteur/services/email"
	adminValidator "inspecteur/validators/admin"
	messageValidator "inspecteur/validators/message"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up all admin panel routes, guarded by the role check
func SetupAdminRoutes(app *fiber.App, emailSvc *emailService.Service) {
	// Module CRUD
	moduleGroup := app.Group("/admin/modules", middleware.JWTMiddleware, middleware.AdminOnly)
	moduleGroup.Get("/", adminControllers.ListModules)
	moduleGroup.Post("/", adminValidator.CreateModule(), adminControllers.CreateModule)
	moduleGroup.Put("/:id", adminValidator.UpdateModule(), adminControllers.UpdateModule)
	moduleGroup.Delete("/:id", adminControllers.DeleteModule)
	moduleGroup.Post("/:id/media", adminControllers.UploadModuleMedia)

	// Quiz and question CRUD
	quizGroup := app.Group("/admin/quizzes", middleware.JWTMiddleware, middleware.AdminOnly)
	quizGroup.Post("/", adminValidator.CreateQuiz(), adminControllers.CreateQuiz)
	quizGroup.Get("/:id", adminControllers.GetQuiz)
	quizGroup.Put("/:id", adminValidator.UpdateQuiz(), adminControllers.UpdateQuiz)
	quizGroup.Delete("/:id", adminControllers.DeleteQuiz)
	quizGroup.Post("/:id/questions", adminValidator.Question(), adminControllers.AddQuestion)
	quizGroup.Get("/:id/attempts", adminControllers.GetQuizAttempts)

	questionGroup := app.Group("/admin/questions", middleware.JWTMiddleware, middleware.AdminOnly)
	questionGroup.Put("/:question_id", adminValidator.Question(), adminControllers.UpdateQuestion)
	questionGroup.Delete("/:question_id", adminControllers.DeleteQuestion)

	// Students
	studentGroup := app.Group("/admin/students", middleware.JWTMiddleware, middleware.AdminOnly)
	studentGroup.Get("/", adminControllers.ListStudents)
	studentGroup.Get("/:user_id/progress", adminControllers.GetStudentProgress)

	// Messaging inbox
	messageGroup := app.Group("/admin/messages", middleware.JWTMiddleware, middleware.AdminOnly)
	messageGroup.Get("/", messageController.AdminListThreads)
	messageGroup.Get("/:user_id", messageController.AdminGetThread)
	messageGroup.Post("/:user_id/reply", messageValidator.Message(), messageController.AdminReply(emailSvc))

	// Dashboard
	app.Get("/admin/stats", middleware.JWTMiddleware, middleware.AdminOnly, adminControllers.DashboardStats)
}
