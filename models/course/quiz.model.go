package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quiz is the assessment tied 1:1 to a module, with a pass threshold
type Quiz struct {
	gorm.Model
	ModuleID     uint       `json:"module_id" gorm:"uniqueIndex;not null"`
	Title        string     `json:"title"`
	PassingScore int        `json:"passing_score" gorm:"default:70"` // percentage required to pass
	Questions    []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
	IsDeleted    bool       `gorm:"default:false"`
}

// Question holds one multiple choice question of a quiz
type Question struct {
	gorm.Model
	QuizID       uint           `json:"quiz_id" gorm:"index;not null"`
	Text         string         `json:"text"`
	Options      datatypes.JSON `json:"options"` // JSON array of option strings
	CorrectIndex int            `json:"correct_index" gorm:"default:0"`
	OrderIndex   int            `json:"order_index" gorm:"default:0"`
	IsDeleted    bool           `gorm:"default:false"`
}
