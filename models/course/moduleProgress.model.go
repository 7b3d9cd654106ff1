package course

import (
	"time"

	"gorm.io/gorm"
)

// ModuleProgress marks a user's completion of one module. One row per
// (user, module), upserted when the user completes the content.
type ModuleProgress struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_user_module"`
	ModuleID    uint       `json:"module_id" gorm:"not null;uniqueIndex:idx_user_module"`
	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `gorm:"default:false"`
}
