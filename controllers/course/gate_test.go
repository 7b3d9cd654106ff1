package controllers

import (
	"fmt"
	"testing"
	"time"

	"inspecteur/models"
	courseModels "inspecteur/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDb(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.PaymentSession{},
		&courseModels.Module{},
		&courseModels.Quiz{},
		&courseModels.Question{},
		&courseModels.QuizAttempt{},
		&courseModels.ModuleProgress{},
	))

	return db
}

func createStudent(t *testing.T, db *gorm.DB, purchased bool) *models.User {
	t.Helper()

	user := &models.User{
		Name:         "Jean Dupont",
		Email:        fmt.Sprintf("%s@test.fr", t.Name()),
		Password:     "hashed",
		HasPurchased: purchased,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createModule(t *testing.T, db *gorm.DB, orderIndex int, isFree bool) *courseModels.Module {
	t.Helper()

	module := &courseModels.Module{
		Title:       fmt.Sprintf("Module %d", orderIndex),
		Description: "desc",
		OrderIndex:  orderIndex,
		IsFree:      isFree,
		IsPublished: true,
	}
	require.NoError(t, db.Create(module).Error)
	return module
}

func createQuiz(t *testing.T, db *gorm.DB, moduleID uint) *courseModels.Quiz {
	t.Helper()

	quiz := &courseModels.Quiz{ModuleID: moduleID, Title: "Quiz", PassingScore: 80}
	require.NoError(t, db.Create(quiz).Error)
	return quiz
}

func completeModule(t *testing.T, db *gorm.DB, userID, moduleID uint) {
	t.Helper()

	now := time.Now()
	require.NoError(t, db.Create(&courseModels.ModuleProgress{
		UserID:      userID,
		ModuleID:    moduleID,
		Completed:   true,
		CompletedAt: &now,
	}).Error)
}

func recordAttempt(t *testing.T, db *gorm.DB, userID, quizID uint, passed bool) {
	t.Helper()

	score := 50.0
	if passed {
		score = 100.0
	}
	require.NoError(t, db.Create(&courseModels.QuizAttempt{
		UserID:       userID,
		QuizID:       quizID,
		ScorePercent: score,
		Passed:       passed,
	}).Error)
}

func TestGateFirstModuleAlwaysAccessible(t *testing.T) {
	db := setupTestDb(t)
	user := createStudent(t, db, false)
	first := createModule(t, db, 1, true)
	createModule(t, db, 2, false)

	allowed, reason := CheckModuleAccess(db, user, first)

	assert.True(t, allowed)
	assert.Empty(t, reason)
}

func TestGateFirstModuleAccessibleEvenWithoutFreeFlag(t *testing.T) {
	db := setupTestDb(t)
	user := createStudent(t, db, false)
	first := createModule(t, db, 1, false)

	allowed, _ := CheckModuleAccess(db, user, first)

	assert.True(t, allowed)
}

func TestGateUnpurchasedBlockedFromNonFirstModule(t *testing.T) {
	db := setupTestDb(t)
	user := createStudent(t, db, false)
	first := createModule(t, db, 1, true)
	second := createModule(t, db, 2, false)

	// Even a fully completed first module does not bypass purchase
	completeModule(t, db, user.ID, first.ID)

	allowed, reason := CheckModuleAccess(db, user, second)

	assert.False(t, allowed)
	assert.Equal(t, ReasonPurchaseRequired, reason)
}

func TestGateBlockedWhenPreviousModuleNotCompleted(t *testing.T) {
	db := setupTestDb(t)
	user := createStudent(t, db, true)
	createModule(t, db, 1, true)
	second := createModule(t, db, 2, false)

	allowed, reason := CheckModuleAccess(db, user, second)

	assert.False(t, allowed)
	assert.Equal(t, ReasonPreviousModuleNotCompleted, reason)
}

func TestGateBlockedWhenPreviousQuizNotPassed(t *testing.T) {
	db := setupTestDb(t)
	user := createStudent(t, db, true)
	first := createModule(t, db, 1, true)
	second := createModule(t, db, 2, false)
	quiz := createQuiz(t, db, first.ID)

	completeModule(t, db, user.ID, first.ID)
	recordAttempt(t, db, user.ID, quiz.ID, false)

	allowed, reason := CheckModuleAccess(db, user, second)

	assert.False(t, allowed)
	assert.Equal(t, ReasonPreviousQuizNotPassed, reason)
}

func TestGateAllowedAfterCompletionAndPassingAttempt(t *testing.T) {
	db := setupTestDb(t)
	user := createStudent(t, db, true)
	first := createModule(t, db, 1, true)
	second := createModule(t, db, 2, false)
	quiz := createQuiz(t, db, first.ID)

	completeModule(t, db, user.ID, first.ID)
	// A later passing attempt counts even after earlier failures
	recordAttempt(t, db, user.ID, quiz.ID, false)
	recordAttempt(t, db, user.ID, quiz.ID, true)

	allowed, reason := CheckModuleAccess(db, user, second)

	assert.True(t, allowed)
	assert.Empty(t, reason)
}

func TestGatePredecessorWithoutQuizOnlyNeedsCompletion(t *testing.T) {
	db := setupTestDb(t)
	user := createStudent(t, db, true)
	first := createModule(t, db, 1, true)
	second := createModule(t, db, 2, false)

	completeModule(t, db, user.ID, first.ID)

	allowed, reason := CheckModuleAccess(db, user, second)

	assert.True(t, allowed)
	assert.Empty(t, reason)
}

func TestGatePredecessorLookupToleratesGaps(t *testing.T) {
	db := setupTestDb(t)
	user := createStudent(t, db, true)
	createModule(t, db, 1, true)
	second := createModule(t, db, 2, false)
	// Gap in the sequence: no modules 3 and 4
	fifth := createModule(t, db, 5, false)

	// The predecessor of module 5 is module 2, not a missing module 4
	allowed, reason := CheckModuleAccess(db, user, fifth)
	assert.False(t, allowed)
	assert.Equal(t, ReasonPreviousModuleNotCompleted, reason)

	completeModule(t, db, user.ID, second.ID)

	allowed, reason = CheckModuleAccess(db, user, fifth)
	assert.True(t, allowed)
	assert.Empty(t, reason)
}
