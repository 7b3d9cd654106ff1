package chatController

import (
	"inspecteur/database"
	"inspecteur/middleware"
	"inspecteur/models"
	chatService "inspecteur/services/chat"
	"log"

	"github.com/gofiber/fiber/v2"
)

// historyWindow caps how many prior turns are replayed as context
const historyWindow = 10

// SendMessage forwards a student question to the assistant and stores both
// sides of the exchange. Provider outages degrade to a fallback reply, the
// request itself never fails on them.
func SendMessage(chatSvc *chatService.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		db := database.Database.Db

		var user models.User
		if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}

		reqData, ok := c.Locals("validatedChatMessage").(*struct {
			Message string `json:"message"`
		})
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		// Replay the most recent turns, oldest first
		var recent []models.ChatMessage
		db.Where("user_id = ? AND is_deleted = ?", userID, false).
			Order("created_at desc").Limit(historyWindow).Find(&recent)

		history := make([]chatService.Turn, 0, len(recent))
		for i := len(recent) - 1; i >= 0; i-- {
			history = append(history, chatService.Turn{Role: recent[i].Role, Content: recent[i].Content})
		}

		reply, err := chatSvc.Complete(history, reqData.Message)
		if err != nil {
			log.Printf("Chat provider error for user %d: %v", userID, err)
			reply = chatService.FallbackReply
		}

		db.Create(&models.ChatMessage{UserID: userID, Role: "user", Content: reqData.Message})
		db.Create(&models.ChatMessage{UserID: userID, Role: "assistant", Content: reply})

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Message sent!", fiber.Map{
			"reply": reply,
		})
	}
}

// GetHistory returns the caller's conversation with the assistant
func GetHistory(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var messages []models.ChatMessage
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at asc").
		Find(&messages).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch chat history!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chat history fetched successfully!", messages)
}
