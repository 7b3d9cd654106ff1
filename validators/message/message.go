package messageValidator

import (
	"inspecteur/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func Message() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Body string `json:"body"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Body) == "" {
			errors["body"] = "Message body is required!"
		} else if len(reqData.Body) > 5000 {
			errors["body"] = "Message body must not exceed 5000 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMessage", reqData)
		return c.Next()
	}
}
