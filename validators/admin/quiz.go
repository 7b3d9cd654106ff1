package adminValidator

import (
	"inspecteur/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func validateQuestion(errors map[string]string, key, text string, options []string, correctIndex int) {
	if strings.TrimSpace(text) == "" {
		errors[key] = "Question text is required!"
		return
	}
	if len(options) < 2 {
		errors[key] = "A question needs at least 2 options!"
		return
	}
	if correctIndex < 0 || correctIndex >= len(options) {
		errors[key] = "Correct index must reference one of the options!"
	}
}

func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ModuleID     uint   `json:"module_id"`
			Title        string `json:"title"`
			PassingScore int    `json:"passing_score"`
			Questions    []struct {
				Text         string   `json:"text"`
				Options      []string `json:"options"`
				CorrectIndex int      `json:"correct_index"`
			} `json:"questions"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ModuleID == 0 {
			errors["module_id"] = "Module id is required!"
		}
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.PassingScore < 0 || reqData.PassingScore > 100 {
			errors["passing_score"] = "Passing score must be between 0 and 100!"
		}

		// A quiz with zero questions would make every score undefined
		if len(reqData.Questions) == 0 {
			errors["questions"] = "A quiz needs at least one question!"
		}
		for i, q := range reqData.Questions {
			validateQuestion(errors, "questions["+strconv.Itoa(i)+"]", q.Text, q.Options, q.CorrectIndex)
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

func UpdateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        *string `json:"title"`
			PassingScore *int    `json:"passing_score"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && strings.TrimSpace(*reqData.Title) == "" {
			errors["title"] = "Title must not be empty!"
		}
		if reqData.PassingScore != nil && (*reqData.PassingScore < 0 || *reqData.PassingScore > 100) {
			errors["passing_score"] = "Passing score must be between 0 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuizUpdate", reqData)
		return c.Next()
	}
}

func Question() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Text         string   `json:"text"`
			Options      []string `json:"options"`
			CorrectIndex int      `json:"correct_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		validateQuestion(errors, "question", reqData.Text, reqData.Options, reqData.CorrectIndex)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}
