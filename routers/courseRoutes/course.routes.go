package courseRoutes

import (
	controllers "inspecteur/controllers/course"
	"inspecteur/middleware"
	certificateService "inspecteur/services/certificate"
	emailService "inspecteur/services/email"
	courseValidator "inspecteur/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all student-facing course routes
func SetupCourseRoutes(app *fiber.App, certSvc *certificateService.Service, emailSvc *emailService.Service) {
	// Module listing and gated content
	moduleGroup := app.Group("/modules")
	moduleGroup.Get("/", middleware.JWTMiddleware, controllers.GetModules)
	moduleGroup.Get("/:id", middleware.JWTMiddleware, controllers.GetModuleDetails)

	// Quizzes
	quizGroup := app.Group("/quizzes")
	quizGroup.Get("/module/:id", middleware.JWTMiddleware, controllers.GetModuleQuiz)
	quizGroup.Post("/:id/submit", middleware.JWTMiddleware, courseValidator.SubmitQuiz(), controllers.SubmitQuiz)

	// Progress tracking and the certificate trigger
	progressGroup := app.Group("/progress")
	progressGroup.Get("/", middleware.JWTMiddleware, controllers.GetProgress)
	progressGroup.Get("/check-access/:module_id", middleware.JWTMiddleware, controllers.CheckAccess)
	progressGroup.Post("/complete/:module_id", middleware.JWTMiddleware, controllers.MarkModuleComplete(certSvc, emailSvc))

	// Certificates
	certGroup := app.Group("/certificates")
	certGroup.Get("/me", middleware.JWTMiddleware, controllers.GetMyCertificate)
}
