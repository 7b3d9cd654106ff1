package controllers

import (
	"encoding/json"
	"inspecteur/database"
	"inspecteur/middleware"
	courseModels "inspecteur/models/course"

	"github.com/gofiber/fiber/v2"
)

// CreateQuiz creates a quiz with its questions for a module. A module holds
// at most one quiz and a quiz must carry at least one question.
func CreateQuiz(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedQuiz").(*struct {
		ModuleID     uint   `json:"module_id"`
		Title        string `json:"title"`
		PassingScore int    `json:"passing_score"`
		Questions    []struct {
			Text         string   `json:"text"`
			Options      []string `json:"options"`
			CorrectIndex int      `json:"correct_index"`
		} `json:"questions"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var module courseModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", reqData.ModuleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	// 1:1 with the module
	var existing courseModels.Quiz
	if err := db.Where("module_id = ? AND is_deleted = ?", reqData.ModuleID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "This module already has a quiz!", nil)
	}

	quiz := courseModels.Quiz{
		ModuleID:     reqData.ModuleID,
		Title:        reqData.Title,
		PassingScore: reqData.PassingScore,
	}

	if err := db.Create(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	for i, q := range reqData.Questions {
		optionsJSON, _ := json.Marshal(q.Options)
		question := courseModels.Question{
			QuizID:       quiz.ID,
			Text:         q.Text,
			Options:      optionsJSON,
			CorrectIndex: q.CorrectIndex,
			OrderIndex:   i,
		}
		if err := db.Create(&question).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz questions!", nil)
		}
	}

	db.Preload("Questions", "is_deleted = ?", false).First(&quiz, quiz.ID)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}

// UpdateQuiz updates a quiz's title and pass threshold
func UpdateQuiz(c *fiber.Ctx) error {
	quizID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	reqData, ok := c.Locals("validatedQuizUpdate").(*struct {
		Title        *string `json:"title"`
		PassingScore *int    `json:"passing_score"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	if reqData.Title != nil {
		quiz.Title = *reqData.Title
	}
	if reqData.PassingScore != nil {
		quiz.PassingScore = *reqData.PassingScore
	}

	if err := db.Save(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz updated successfully!", quiz)
}

// DeleteQuiz soft-deletes a quiz and its questions
func DeleteQuiz(c *fiber.Ctx) error {
	quizID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	quiz.IsDeleted = true
	if err := db.Save(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete quiz!", nil)
	}

	db.Model(&courseModels.Question{}).Where("quiz_id = ?", quiz.ID).Update("is_deleted", true)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz deleted successfully!", nil)
}

// GetQuiz returns a quiz with its questions, correct indexes included
func GetQuiz(c *fiber.Ctx) error {
	quizID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.Preload("Questions", "is_deleted = ?", false).
		Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", quiz)
}

// AddQuestion appends a question to an existing quiz
func AddQuestion(c *fiber.Ctx) error {
	quizID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*struct {
		Text         string   `json:"text"`
		Options      []string `json:"options"`
		CorrectIndex int      `json:"correct_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var questionCount int64
	db.Model(&courseModels.Question{}).Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).Count(&questionCount)

	optionsJSON, _ := json.Marshal(reqData.Options)
	question := courseModels.Question{
		QuizID:       quiz.ID,
		Text:         reqData.Text,
		Options:      optionsJSON,
		CorrectIndex: reqData.CorrectIndex,
		OrderIndex:   int(questionCount),
	}

	if err := db.Create(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question added successfully!", question)
}

// UpdateQuestion updates one question
func UpdateQuestion(c *fiber.Ctx) error {
	questionID, err := c.ParamsInt("question_id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*struct {
		Text         string   `json:"text"`
		Options      []string `json:"options"`
		CorrectIndex int      `json:"correct_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var question courseModels.Question
	if err := db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	optionsJSON, _ := json.Marshal(reqData.Options)
	question.Text = reqData.Text
	question.Options = optionsJSON
	question.CorrectIndex = reqData.CorrectIndex

	if err := db.Save(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question updated successfully!", question)
}

// DeleteQuestion soft-deletes a question, refusing to empty the quiz
func DeleteQuestion(c *fiber.Ctx) error {
	questionID, err := c.ParamsInt("question_id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
	}

	db := database.Database.Db

	var question courseModels.Question
	if err := db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	// A quiz must keep at least one question
	var remaining int64
	db.Model(&courseModels.Question{}).
		Where("quiz_id = ? AND id <> ? AND is_deleted = ?", question.QuizID, question.ID, false).
		Count(&remaining)
	if remaining == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "A quiz must keep at least one question. Delete the quiz instead!", nil)
	}

	question.IsDeleted = true
	if err := db.Save(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}

// GetQuizAttempts lists all attempts on a quiz for admin analytics
func GetQuizAttempts(c *fiber.Ctx) error {
	quizID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	offset := (page - 1) * limit

	query := db.Model(&courseModels.QuizAttempt{}).Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false)

	var total int64
	query.Count(&total)

	var attempts []courseModels.QuizAttempt
	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	var passedCount int64
	db.Model(&courseModels.QuizAttempt{}).
		Where("quiz_id = ? AND passed = ? AND is_deleted = ?", quiz.ID, true, false).
		Count(&passedCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts":     attempts,
		"total":        total,
		"passed_count": passedCount,
		"page":         page,
		"limit":        limit,
	})
}
