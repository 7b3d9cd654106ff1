package models

import "gorm.io/gorm"

// Message senders
const (
	SenderStudent = "STUDENT"
	SenderAdmin   = "ADMIN"
)

// Message is one entry in the thread between a student and the admins.
// UserID always references the student owning the thread, including for
// admin replies.
type Message struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	Sender    string `json:"sender" gorm:"default:'STUDENT'"` // STUDENT, ADMIN
	Body      string `json:"body"`
	IsRead    bool   `json:"is_read" gorm:"default:false"`
	IsDeleted bool   `gorm:"default:false"`
}
