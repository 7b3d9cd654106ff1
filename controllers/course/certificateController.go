package controllers

import (
	"inspecteur/database"
	"inspecteur/middleware"
	"inspecteur/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyCertificate returns the caller's certificate when one was issued
func GetMyCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.CertificateURL == "" {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No certificate issued yet. Complete all modules first!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully!", fiber.Map{
		"certificate_url":    user.CertificateURL,
		"certificate_number": user.CertificateNumber,
		"issued_at":          user.CertificateIssuedAt,
	})
}
