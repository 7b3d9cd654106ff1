package messageController

import (
	"inspecteur/database"
	"inspecteur/middleware"
	"inspecteur/models"
	emailService "inspecteur/services/email"

	"github.com/gofiber/fiber/v2"
)

// SendMessage posts a student message into their thread with the admins
func SendMessage(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedMessage").(*struct {
		Body string `json:"body"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	message := models.Message{
		UserID: userID,
		Sender: models.SenderStudent,
		Body:   reqData.Body,
	}

	if err := db.Create(&message).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send message!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Message sent successfully!", message)
}

// GetMyThread returns the caller's conversation with the admins and marks
// admin replies as read
func GetMyThread(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var messages []models.Message
	if err := db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at asc").
		Find(&messages).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch messages!", nil)
	}

	db.Model(&models.Message{}).
		Where("user_id = ? AND sender = ? AND is_read = ?", userID, models.SenderAdmin, false).
		Update("is_read", true)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Messages fetched successfully!", messages)
}

// AdminListThreads lists student threads with their latest message,
// unread-first, for the admin inbox
func AdminListThreads(c *fiber.Ctx) error {
	db := database.Database.Db

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	offset := (page - 1) * limit

	var userIDs []uint
	if err := db.Model(&models.Message{}).
		Where("is_deleted = ?", false).
		Group("user_id").
		Order("MAX(created_at) DESC").
		Offset(offset).Limit(limit).
		Pluck("user_id", &userIDs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch threads!", nil)
	}

	type threadView struct {
		UserID      uint           `json:"user_id"`
		StudentName string         `json:"student_name"`
		Email       string         `json:"email"`
		LastMessage models.Message `json:"last_message"`
		UnreadCount int64          `json:"unread_count"`
	}

	threads := make([]threadView, 0, len(userIDs))
	for _, id := range userIDs {
		var student models.User
		if err := db.Where("id = ?", id).First(&student).Error; err != nil {
			continue
		}

		var last models.Message
		db.Where("user_id = ? AND is_deleted = ?", id, false).Order("created_at desc").First(&last)

		var unread int64
		db.Model(&models.Message{}).
			Where("user_id = ? AND sender = ? AND is_read = ? AND is_deleted = ?",
				id, models.SenderStudent, false, false).
			Count(&unread)

		threads = append(threads, threadView{
			UserID:      id,
			StudentName: student.Name,
			Email:       student.Email,
			LastMessage: last,
			UnreadCount: unread,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Threads fetched successfully!", fiber.Map{
		"threads": threads,
		"page":    page,
		"limit":   limit,
	})
}

// AdminGetThread returns one student's full thread and marks student
// messages as read
func AdminGetThread(c *fiber.Ctx) error {
	studentID, err := c.ParamsInt("user_id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	db := database.Database.Db

	var student models.User
	if err := db.Where("id = ? AND is_deleted = ?", studentID, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	var messages []models.Message
	db.Where("user_id = ? AND is_deleted = ?", student.ID, false).Order("created_at asc").Find(&messages)

	db.Model(&models.Message{}).
		Where("user_id = ? AND sender = ? AND is_read = ?", student.ID, models.SenderStudent, false).
		Update("is_read", true)

	student.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Thread fetched successfully!", fiber.Map{
		"student":  student,
		"messages": messages,
	})
}

// AdminReply posts an admin reply into a student thread and notifies the
// student by email
func AdminReply(emailSvc *emailService.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		studentID, err := c.ParamsInt("user_id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
		}

		db := database.Database.Db

		var student models.User
		if err := db.Where("id = ? AND is_deleted = ?", studentID, false).First(&student).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
		}

		reqData, ok := c.Locals("validatedMessage").(*struct {
			Body string `json:"body"`
		})
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		message := models.Message{
			UserID: student.ID,
			Sender: models.SenderAdmin,
			Body:   reqData.Body,
		}

		if err := db.Create(&message).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send reply!", nil)
		}

		preview := reqData.Body
		if len(preview) > 120 {
			preview = preview[:120] + "…"
		}
		emailSvc.SendAdminReplyEmail(student.Email, student.Name, preview)

		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Reply sent successfully!", message)
	}
}
