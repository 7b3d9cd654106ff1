package models

import "gorm.io/gorm"

// Payment session statuses
const (
	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
	PaymentExpired = "EXPIRED"
)

// PaymentSession tracks a Stripe Checkout session created for a user.
// The webhook and the reconciliation poller both resolve sessions through
// this record, so status transitions must stay idempotent.
type PaymentSession struct {
	gorm.Model
	SessionID   string `json:"session_id" gorm:"uniqueIndex;not null"`
	UserID      uint   `json:"user_id" gorm:"index;not null"`
	Status      string `json:"status" gorm:"default:'PENDING'"`
	AmountTotal int64  `json:"amount_total" gorm:"default:0"` // in cents
	Currency    string `json:"currency"`
	CheckoutURL string `json:"checkout_url"`
	IsDeleted   bool   `gorm:"default:false"`
}
