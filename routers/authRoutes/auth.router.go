package authRoutes

import (
	authController "inspecteur/controllers/auth"
	"inspecteur/middleware"
	emailService "inspecteur/services/email"
	authValidator "inspecteur/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up registration and login routes
func SetupAuthRoutes(app *fiber.App, emailSvc *emailService.Service) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", authValidator.Signup(), authController.Signup(emailSvc))
	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Get("/me", middleware.JWTMiddleware, authController.Me)
}
