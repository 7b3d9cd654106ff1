package controllers

import (
	"inspecteur/database"
	"inspecteur/middleware"
	"inspecteur/models"
	courseModels "inspecteur/models/course"

	"github.com/gofiber/fiber/v2"
)

// ModuleListItem is a module as presented in the gated listing: content is
// stripped and the lock state is computed per user.
type ModuleListItem struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index"`
	IsFree      bool   `json:"is_free"`
	CanAccess   bool   `json:"can_access"`
	Reason      string `json:"reason,omitempty"`
	Completed   bool   `json:"completed"`
	HasQuiz     bool   `json:"has_quiz"`
}

// GetModules lists all published modules with the caller's lock state
func GetModules(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var modules []courseModels.Module
	if err := db.Where("is_published = ? AND is_deleted = ?", true, false).
		Order("order_index asc").
		Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	items := make([]ModuleListItem, len(modules))
	for i := range modules {
		mod := modules[i]
		allowed, reason := CheckModuleAccess(db, &user, &mod)

		var progress courseModels.ModuleProgress
		completed := db.Where("user_id = ? AND module_id = ? AND completed = ? AND is_deleted = ?",
			userID, mod.ID, true, false).First(&progress).Error == nil

		var quizCount int64
		db.Model(&courseModels.Quiz{}).Where("module_id = ? AND is_deleted = ?", mod.ID, false).Count(&quizCount)

		items[i] = ModuleListItem{
			ID:          mod.ID,
			Title:       mod.Title,
			Description: mod.Description,
			OrderIndex:  mod.OrderIndex,
			IsFree:      mod.IsFree,
			CanAccess:   allowed,
			Reason:      reason,
			Completed:   completed,
			HasQuiz:     quizCount > 0,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", fiber.Map{
		"modules":       items,
		"has_purchased": user.HasPurchased,
	})
}

// GetModuleDetails returns the full content of one module when the gate allows
func GetModuleDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	moduleID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
	}

	var module courseModels.Module
	if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", moduleID, true, false).
		First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	allowed, reason := CheckModuleAccess(db, &user, &module)
	if !allowed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access to this module is locked!", fiber.Map{
			"can_access": false,
			"reason":     reason,
		})
	}

	var progress courseModels.ModuleProgress
	completed := db.Where("user_id = ? AND module_id = ? AND completed = ? AND is_deleted = ?",
		userID, module.ID, true, false).First(&progress).Error == nil

	var quiz courseModels.Quiz
	hasQuiz := db.Where("module_id = ? AND is_deleted = ?", module.ID, false).First(&quiz).Error == nil

	resp := fiber.Map{
		"module":    module,
		"completed": completed,
		"has_quiz":  hasQuiz,
	}
	if hasQuiz {
		resp["quiz_id"] = quiz.ID
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module fetched successfully!", resp)
}
