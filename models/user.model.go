package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name         string `gorm:"default:''"`
	Email        string `gorm:"unique;not null"`
	Role         string `gorm:"default:'USER'"` // USER, ADMIN
	Password     string `gorm:"not null"`
	HasPurchased bool   `gorm:"default:false"`

	// Certificate reference, set at most once when every module is completed
	CertificateURL      string     `gorm:"default:''"` // data URI of the generated document
	CertificateNumber   string     `gorm:"default:''"`
	CertificateIssuedAt *time.Time `json:"certificate_issued_at"`

	LastLogin           time.Time  `gorm:"default:NULL"`
	FailedLoginAttempts int        `gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"last_failed_login"`
	IsBlocked           bool       `gorm:"default:false"`
	BlockedUntil        *time.Time `json:"blocked_until"`
	IsDeleted           bool       `gorm:"default:false"`
}
