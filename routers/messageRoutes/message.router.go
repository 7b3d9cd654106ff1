package messageRoutes

import (
	messageController "inspecteur/controllers/message"
	"inspecteur/middleware"
	messageValidator "inspecteur/validators/message"

	"github.com/gofiber/fiber/v2"
)

// SetupMessageRoutes sets up the student side of the messaging feature
func SetupMessageRoutes(app *fiber.App) {
	messageGroup := app.Group("/messages")

	messageGroup.Get("/", middleware.JWTMiddleware, messageController.GetMyThread)
	messageGroup.Post("/", middleware.JWTMiddleware, messageValidator.Message(), messageController.SendMessage)
}
