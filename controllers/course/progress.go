package controllers

import (
	"inspecteur/database"
	"inspecteur/middleware"
	"inspecteur/models"
	courseModels "inspecteur/models/course"
	certificateService "inspecteur/services/certificate"
	emailService "inspecteur/services/email"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CheckAccess reports whether the caller may open the given module
func CheckAccess(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	moduleID, err := c.ParamsInt("module_id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
	}

	var module courseModels.Module
	if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", moduleID, true, false).
		First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	allowed, reason := CheckModuleAccess(db, &user, &module)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Access checked successfully!", fiber.Map{
		"can_access": allowed,
		"reason":     reason,
	})
}

// MarkModuleComplete upserts the caller's completion of a module and
// triggers certificate issuance when it was the last one
func MarkModuleComplete(certSvc *certificateService.Service, emailSvc *emailService.Service) fiber.Handler {
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

		moduleID, err := c.ParamsInt("module_id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
		}

		var module courseModels.Module
		if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", moduleID, true, false).
			First(&module).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
		}

		// Only an accessible module can be completed
		allowed, reason := CheckModuleAccess(db, &user, &module)
		if !allowed {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access to this module is locked!", fiber.Map{
				"can_access": false,
				"reason":     reason,
			})
		}

		// Upsert progress, completion is never revoked
		now := time.Now()
		var progress courseModels.ModuleProgress
		err = db.Where("user_id = ? AND module_id = ? AND is_deleted = ?", userID, module.ID, false).
			First(&progress).Error
		if err == gorm.ErrRecordNotFound {
			progress = courseModels.ModuleProgress{
				UserID:      userID,
				ModuleID:    module.ID,
				Completed:   true,
				CompletedAt: &now,
			}
			if err := db.Create(&progress).Error; err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
			}
		} else if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
		} else if !progress.Completed {
			progress.Completed = true
			progress.CompletedAt = &now
			if err := db.Save(&progress).Error; err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
			}
		}

		issued := maybeIssueCertificate(db, certSvc, emailSvc, &user)

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Module marked as completed!", fiber.Map{
			"progress":           progress,
			"certificate_issued": issued,
		})
	}
}

// GetProgress lists the caller's completion state over the whole sequence
func GetProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var totalModules int64
	db.Model(&courseModels.Module{}).Where("is_published = ? AND is_deleted = ?", true, false).Count(&totalModules)

	var completed []courseModels.ModuleProgress
	db.Where("user_id = ? AND completed = ? AND is_deleted = ?", userID, true, false).Find(&completed)

	percent := float64(0)
	if totalModules > 0 {
		percent = 100 * float64(len(completed)) / float64(totalModules)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"total_modules":     totalModules,
		"completed_modules": len(completed),
		"percent":           percent,
		"progress":          completed,
		"has_certificate":   user.CertificateURL != "",
	})
}

// maybeIssueCertificate issues the certificate once every published module
// is completed. Reports whether this call performed the issuance.
func maybeIssueCertificate(db *gorm.DB, certSvc *certificateService.Service, emailSvc *emailService.Service, user *models.User) bool {
	var totalModules int64
	db.Model(&courseModels.Module{}).Where("is_published = ? AND is_deleted = ?", true, false).Count(&totalModules)
	if totalModules == 0 {
		return false
	}

	var completedCount int64
	db.Model(&courseModels.ModuleProgress{}).
		Joins("JOIN modules ON modules.id = module_progresses.module_id").
		Where("module_progresses.user_id = ? AND module_progresses.completed = ? AND module_progresses.is_deleted = ?", user.ID, true, false).
		Where("modules.is_published = ? AND modules.is_deleted = ?", true, false).
		Count(&completedCount)

	if completedCount < totalModules {
		return false
	}

	issued, err := certSvc.Issue(db, user)
	if err != nil {
		log.Printf("Error issuing certificate for user %d: %v", user.ID, err)
		return false
	}
	if issued {
		emailSvc.SendCertificateEmail(user.Email, user.Name)
	}
	return issued
}
