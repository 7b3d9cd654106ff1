package courseValidator

import (
	"inspecteur/middleware"

	"github.com/gofiber/fiber/v2"
)

func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Answers map[uint]int `json:"answers"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Missing answers score as incorrect, but the map itself must exist
		if reqData.Answers == nil {
			errors["answers"] = "Answers are required!"
		}
		for _, selected := range reqData.Answers {
			if selected < 0 {
				errors["answers"] = "Selected option indexes must not be negative!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuizSubmission", reqData)
		return c.Next()
	}
}
