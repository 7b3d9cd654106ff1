package models

import "gorm.io/gorm"

// ChatMessage stores one turn of a user's conversation with the assistant.
// Recent history is replayed as context on the next completion call.
type ChatMessage struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	Role      string `json:"role"` // user, assistant
	Content   string `json:"content"`
	IsDeleted bool   `gorm:"default:false"`
}
