package controllers

import (
	"encoding/json"
	"inspecteur/database"
	"inspecteur/middleware"
	"inspecteur/models"
	courseModels "inspecteur/models/course"

	"github.com/gofiber/fiber/v2"
)

// QuizQuestionView is a question as shown to students: no correct index
type QuizQuestionView struct {
	ID         uint            `json:"id"`
	Text       string          `json:"text"`
	Options    json.RawMessage `json:"options"`
	OrderIndex int             `json:"order_index"`
}

// GetModuleQuiz returns the quiz of a module, stripped of correct answers.
// The same gate as the module content applies.
func GetModuleQuiz(c *fiber.Ctx) error {
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

	var quiz courseModels.Quiz
	if err := db.Where("module_id = ? AND is_deleted = ?", module.ID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "This module has no quiz!", nil)
	}

	var questions []courseModels.Question
	db.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).Order("order_index asc").Find(&questions)

	views := make([]QuizQuestionView, len(questions))
	for i, q := range questions {
		views[i] = QuizQuestionView{
			ID:         q.ID,
			Text:       q.Text,
			Options:    json.RawMessage(q.Options),
			OrderIndex: q.OrderIndex,
		}
	}

	// Surface whether the user already passed, so the client can skip retakes
	var passing courseModels.QuizAttempt
	alreadyPassed := db.Where("user_id = ? AND quiz_id = ? AND passed = ? AND is_deleted = ?",
		userID, quiz.ID, true, false).First(&passing).Error == nil

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"quiz": fiber.Map{
			"id":            quiz.ID,
			"module_id":     quiz.ModuleID,
			"title":         quiz.Title,
			"passing_score": quiz.PassingScore,
			"questions":     views,
		},
		"already_passed": alreadyPassed,
	})
}

// SubmitQuiz scores a submission and records it as a new attempt. Retaking
// is allowed; every submission appends a row.
func SubmitQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	quizID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	reqData, ok := c.Locals("validatedQuizSubmission").(*struct {
		Answers map[uint]int `json:"answers"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var quiz courseModels.Quiz
	if err := db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var module courseModels.Module
	if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", quiz.ModuleID, true, false).
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

	var questions []courseModels.Question
	db.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).Order("order_index asc").Find(&questions)

	result := ScoreQuiz(questions, reqData.Answers, quiz.PassingScore)

	// Get attempt number
	var attemptCount int64
	db.Model(&courseModels.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ? AND is_deleted = ?", userID, quiz.ID, false).
		Count(&attemptCount)

	answersJSON, _ := json.Marshal(reqData.Answers)

	attempt := courseModels.QuizAttempt{
		UserID:         userID,
		QuizID:         quiz.ID,
		Answers:        answersJSON,
		CorrectCount:   result.CorrectCount,
		TotalQuestions: result.Total,
		ScorePercent:   result.ScorePercent,
		Passed:         result.Passed,
		AttemptNumber:  int(attemptCount) + 1,
	}

	if err := db.Create(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted!", fiber.Map{
		"attempt":       attempt,
		"score_percent": result.ScorePercent,
		"passed":        result.Passed,
		"correct_count": result.CorrectCount,
		"total":         result.Total,
		"details":       result.Details,
	})
}
