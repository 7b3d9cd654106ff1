package controllers

import (
	"inspecteur/models"
	courseModels "inspecteur/models/course"

	"gorm.io/gorm"
)

// Blocking reasons returned by the progression gate
const (
	ReasonPurchaseRequired           = "purchase_required"
	ReasonPreviousModuleNotCompleted = "previous_module_not_completed"
	ReasonPreviousQuizNotPassed      = "previous_quiz_not_passed"
)

// CheckModuleAccess decides whether a user may open the target module.
// Rules, in order: the free/first module is always open; everything else
// requires purchase, completion of the predecessor module, and a passing
// attempt on the predecessor's quiz when one exists.
func CheckModuleAccess(db *gorm.DB, user *models.User, target *courseModels.Module) (bool, string) {
	if target.IsFree {
		return true, ""
	}

	// Predecessor = published module with the highest order_index strictly
	// below the target's. No gapless numbering assumed.
	var previous courseModels.Module
	err := db.Where("order_index < ? AND is_published = ? AND is_deleted = ?", target.OrderIndex, true, false).
		Order("order_index desc").
		First(&previous).Error
	if err == gorm.ErrRecordNotFound {
		// First module of the sequence stays open regardless of purchase
		return true, ""
	}

	if !user.HasPurchased {
		return false, ReasonPurchaseRequired
	}

	var progress courseModels.ModuleProgress
	if err := db.Where("user_id = ? AND module_id = ? AND completed = ? AND is_deleted = ?",
		user.ID, previous.ID, true, false).First(&progress).Error; err != nil {
		return false, ReasonPreviousModuleNotCompleted
	}

	// A quiz on the predecessor must have a passing attempt
	var quiz courseModels.Quiz
	if err := db.Where("module_id = ? AND is_deleted = ?", previous.ID, false).First(&quiz).Error; err == nil {
		var passing courseModels.QuizAttempt
		if err := db.Where("user_id = ? AND quiz_id = ? AND passed = ? AND is_deleted = ?",
			user.ID, quiz.ID, true, false).First(&passing).Error; err != nil {
			return false, ReasonPreviousQuizNotPassed
		}
	}

	return true, ""
}
