package controllers

import (
	"inspecteur/database"
	"inspecteur/middleware"
	courseModels "inspecteur/models/course"
	"inspecteur/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateModule creates a new course module
func CreateModule(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedModule").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
		VideoURL    string `json:"video_url"`
		OrderIndex  int    `json:"order_index"`
		IsFree      bool   `json:"is_free"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Exactly one active module per order_index
	var clash courseModels.Module
	if err := db.Where("order_index = ? AND is_deleted = ?", reqData.OrderIndex, false).
		First(&clash).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A module already occupies this position!", nil)
	}

	module := courseModels.Module{
		Title:       reqData.Title,
		Description: reqData.Description,
		Content:     reqData.Content,
		VideoURL:    reqData.VideoURL,
		OrderIndex:  reqData.OrderIndex,
		IsFree:      reqData.IsFree,
	}

	if err := db.Create(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// UpdateModule updates an existing module
func UpdateModule(c *fiber.Ctx) error {
	moduleID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
	}

	reqData, ok := c.Locals("validatedModuleUpdate").(*struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Content     *string `json:"content"`
		VideoURL    *string `json:"video_url"`
		OrderIndex  *int    `json:"order_index"`
		IsFree      *bool   `json:"is_free"`
		IsPublished *bool   `json:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var module courseModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	if reqData.OrderIndex != nil && *reqData.OrderIndex != module.OrderIndex {
		var clash courseModels.Module
		if err := db.Where("order_index = ? AND id <> ? AND is_deleted = ?", *reqData.OrderIndex, module.ID, false).
			First(&clash).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "A module already occupies this position!", nil)
		}
		module.OrderIndex = *reqData.OrderIndex
	}

	if reqData.Title != nil {
		module.Title = *reqData.Title
	}
	if reqData.Description != nil {
		module.Description = *reqData.Description
	}
	if reqData.Content != nil {
		module.Content = *reqData.Content
	}
	if reqData.VideoURL != nil {
		module.VideoURL = *reqData.VideoURL
	}
	if reqData.IsFree != nil {
		module.IsFree = *reqData.IsFree
	}
	if reqData.IsPublished != nil {
		module.IsPublished = *reqData.IsPublished
	}

	if err := db.Save(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// DeleteModule soft-deletes a module and its quiz
func DeleteModule(c *fiber.Ctx) error {
	moduleID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
	}

	db := database.Database.Db

	var module courseModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	module.IsDeleted = true
	module.IsPublished = false
	if err := db.Save(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	// Retire the attached quiz as well
	db.Model(&courseModels.Quiz{}).Where("module_id = ?", module.ID).Update("is_deleted", true)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// ListModules returns all modules including drafts, for the admin panel
func ListModules(c *fiber.Ctx) error {
	db := database.Database.Db

	var modules []courseModels.Module
	if err := db.Where("is_deleted = ?", false).Order("order_index asc").Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", modules)
}

// UploadModuleMedia stores an uploaded media file for a module and records
// its serving URL on the record
func UploadModuleMedia(c *fiber.Ctx) error {
	moduleID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
	}

	db := database.Database.Db

	var module courseModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	file, err := c.FormFile("media")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Media file is required!", nil)
	}

	path, err := utils.SaveUploadedFile(file, "./public/uploads/modules")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save media file!", nil)
	}

	module.VideoURL = utils.GetFileURL(path)
	if err := db.Save(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Media uploaded successfully!", fiber.Map{
		"video_url": module.VideoURL,
	})
}
