package adminValidator

import (
	"inspecteur/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Content     string `json:"content"`
			VideoURL    string `json:"video_url"`
			OrderIndex  int    `json:"order_index"`
			IsFree      bool   `json:"is_free"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate Description
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		}

		// Validate OrderIndex
		if reqData.OrderIndex < 1 {
			errors["order_index"] = "Order index must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       *string `json:"title"`
			Description *string `json:"description"`
			Content     *string `json:"content"`
			VideoURL    *string `json:"video_url"`
			OrderIndex  *int    `json:"order_index"`
			IsFree      *bool   `json:"is_free"`
			IsPublished *bool   `json:"is_published"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && strings.TrimSpace(*reqData.Title) == "" {
			errors["title"] = "Title must not be empty!"
		}
		if reqData.OrderIndex != nil && *reqData.OrderIndex < 1 {
			errors["order_index"] = "Order index must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}
