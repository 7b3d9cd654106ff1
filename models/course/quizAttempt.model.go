package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizAttempt records one scored submission. Attempts are append-only:
// retaking a quiz creates a new row and the full history is kept for
// admin analytics. The gate consults any passing attempt.
type QuizAttempt struct {
	gorm.Model
	UserID         uint           `json:"user_id" gorm:"index;not null"`
	QuizID         uint           `json:"quiz_id" gorm:"index;not null"`
	Answers        datatypes.JSON `json:"answers"` // JSON object question_id -> selected index
	CorrectCount   int            `json:"correct_count"`
	TotalQuestions int            `json:"total_questions"`
	ScorePercent   float64        `json:"score_percent"`
	Passed         bool           `json:"passed" gorm:"default:false"`
	AttemptNumber  int            `json:"attempt_number" gorm:"default:1"`
	IsDeleted      bool           `gorm:"default:false"`
}
