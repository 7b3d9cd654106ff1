package chatRoutes

import (
	chatController "inspecteur/controllers/chat"
	"inspecteur/middleware"
	chatService "inspecteur/services/chat"
	chatValidator "inspecteur/validators/chat"

	"github.com/gofiber/fiber/v2"
)

// SetupChatRoutes sets up the assistant chat routes
func SetupChatRoutes(app *fiber.App, chatSvc *chatService.Service) {
	chatGroup := app.Group("/chat")

	chatGroup.Post("/", middleware.JWTMiddleware, chatValidator.ChatMessage(), chatController.SendMessage(chatSvc))
	chatGroup.Get("/history", middleware.JWTMiddleware, chatController.GetHistory)
}
