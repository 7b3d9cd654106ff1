package middleware

import (
	"inspecteur/database"
	"inspecteur/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminOnly checks that the authenticated user holds the ADMIN role.
// The role is re-read from the database so a demoted admin loses access
// before their token expires.
func AdminOnly(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
	}

	var user models.User
	err := database.Database.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking permissions!", nil)
	}

	if user.Role != "ADMIN" {
		return JsonResponse(c, fiber.StatusForbidden, false, "Admin access required!", nil)
	}

	return c.Next()
}
