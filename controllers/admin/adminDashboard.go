package controllers

import (
	"inspecteur/database"
	"inspecteur/middleware"
	"inspecteur/models"
	courseModels "inspecteur/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// DashboardStats returns the headline numbers for the admin dashboard
func DashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalStudents int64
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", "USER", false).Count(&totalStudents)

	var purchasedStudents int64
	db.Model(&models.User{}).Where("role = ? AND has_purchased = ? AND is_deleted = ?", "USER", true, false).Count(&purchasedStudents)

	var signupsToday int64
	db.Model(&models.User{}).
		Where("created_at >= ? AND is_deleted = ?", now.BeginningOfDay(), false).
		Count(&signupsToday)

	var totalModules int64
	db.Model(&courseModels.Module{}).Where("is_published = ? AND is_deleted = ?", true, false).Count(&totalModules)

	var totalAttempts int64
	db.Model(&courseModels.QuizAttempt{}).Where("is_deleted = ?", false).Count(&totalAttempts)

	var passedAttempts int64
	db.Model(&courseModels.QuizAttempt{}).Where("passed = ? AND is_deleted = ?", true, false).Count(&passedAttempts)

	var certified int64
	db.Model(&models.User{}).Where("certificate_url <> '' AND is_deleted = ?", false).Count(&certified)

	var paidSessions int64
	db.Model(&models.PaymentSession{}).Where("status = ? AND is_deleted = ?", models.PaymentPaid, false).Count(&paidSessions)

	var revenueCents int64
	db.Model(&models.PaymentSession{}).
		Where("status = ? AND is_deleted = ?", models.PaymentPaid, false).
		Select("COALESCE(SUM(amount_total), 0)").
		Scan(&revenueCents)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"total_students":     totalStudents,
		"purchased_students": purchasedStudents,
		"signups_today":      signupsToday,
		"total_modules":      totalModules,
		"total_attempts":     totalAttempts,
		"passed_attempts":    passedAttempts,
		"certified_students": certified,
		"paid_sessions":      paidSessions,
		"revenue_cents":      revenueCents,
	})
}

// GetStudentProgress returns one student's full progression for the admin panel
func GetStudentProgress(c *fiber.Ctx) error {
	studentID, err := c.ParamsInt("user_id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	db := database.Database.Db

	var student models.User
	if err := db.Where("id = ? AND is_deleted = ?", studentID, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}
	student.Password = ""

	var modules []courseModels.Module
	db.Where("is_published = ? AND is_deleted = ?", true, false).Order("order_index asc").Find(&modules)

	type moduleState struct {
		ModuleID   uint   `json:"module_id"`
		Title      string `json:"title"`
		OrderIndex int    `json:"order_index"`
		Completed  bool   `json:"completed"`
		HasQuiz    bool   `json:"has_quiz"`
		QuizPassed bool   `json:"quiz_passed"`
		Attempts   int64  `json:"attempts"`
	}

	states := make([]moduleState, len(modules))
	for i, mod := range modules {
		state := moduleState{
			ModuleID:   mod.ID,
			Title:      mod.Title,
			OrderIndex: mod.OrderIndex,
		}

		var progress courseModels.ModuleProgress
		state.Completed = db.Where("user_id = ? AND module_id = ? AND completed = ? AND is_deleted = ?",
			student.ID, mod.ID, true, false).First(&progress).Error == nil

		var quiz courseModels.Quiz
		if err := db.Where("module_id = ? AND is_deleted = ?", mod.ID, false).First(&quiz).Error; err == nil {
			state.HasQuiz = true

			db.Model(&courseModels.QuizAttempt{}).
				Where("user_id = ? AND quiz_id = ? AND is_deleted = ?", student.ID, quiz.ID, false).
				Count(&state.Attempts)

			var passing courseModels.QuizAttempt
			state.QuizPassed = db.Where("user_id = ? AND quiz_id = ? AND passed = ? AND is_deleted = ?",
				student.ID, quiz.ID, true, false).First(&passing).Error == nil
		}

		states[i] = state
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student progress fetched successfully!", fiber.Map{
		"student": student,
		"modules": states,
	})
}

// ListStudents returns a paginated student list for the admin panel
func ListStudents(c *fiber.Ctx) error {
	db := database.Database.Db

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	offset := (page - 1) * limit

	query := db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", "USER", false)

	var total int64
	query.Count(&total)

	var students []models.User
	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&students).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	for i := range students {
		students[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Students fetched successfully!", fiber.Map{
		"students": students,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}
