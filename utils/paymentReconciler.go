package utils

import (
	"inspecteur/database"
	"inspecteur/models"
	emailService "inspecteur/services/email"
	paymentService "inspecteur/services/payment"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializePaymentReconciler sets up the checkout reconciliation scheduler.
// Sessions whose webhook never arrived are re-checked against Stripe, so a
// missed delivery only delays the purchase flag instead of losing it.
func InitializePaymentReconciler(paymentSvc *paymentService.Service, emailSvc *emailService.Service) *cron.Cron {
	if !paymentSvc.Enabled() {
		log.Println("[PAYMENT-RECONCILER] Payments disabled, reconciler not started.")
		return nil
	}

	c := cron.New()

	c.AddFunc("@every 5m", func() {
		ReconcilePendingSessions(paymentSvc, emailSvc)
	})

	c.Start()
	log.Println("[PAYMENT-RECONCILER] Reconciler started - runs every 5 minutes")
	return c
}

// ReconcilePendingSessions polls Stripe for every pending session older
// than a minute and resolves it with the same idempotent write the webhook
// uses
func ReconcilePendingSessions(paymentSvc *paymentService.Service, emailSvc *emailService.Service) {
	db := database.Database.Db
	cutoff := time.Now().Add(-1 * time.Minute)

	var pending []models.PaymentSession
	if err := db.
		Where("status = ? AND is_deleted = false AND created_at < ?", models.PaymentPending, cutoff).
		Find(&pending).Error; err != nil {
		log.Printf("[PAYMENT-RECONCILER] Error fetching pending sessions: %v", err)
		return
	}

	if len(pending) == 0 {
		return
	}
	log.Printf("[PAYMENT-RECONCILER] Checking %d pending sessions", len(pending))

	for _, record := range pending {
		session, err := paymentSvc.RetrieveSession(record.SessionID)
		if err != nil {
			log.Printf("[PAYMENT-RECONCILER] Error retrieving session %s: %v", record.SessionID, err)
			continue
		}

		switch {
		case session.PaymentStatus == "paid":
			user, first, err := paymentService.MarkSessionPaid(db, record.SessionID)
			if err != nil {
				log.Printf("[PAYMENT-RECONCILER] Error marking session %s paid: %v", record.SessionID, err)
				continue
			}
			if first {
				log.Printf("[PAYMENT-RECONCILER] Session %s resolved as paid for user %d", record.SessionID, user.ID)
				emailSvc.SendPurchaseEmail(user.Email, user.Name)
			}
		case session.Status == "expired":
			db.Model(&models.PaymentSession{}).
				Where("id = ? AND status = ?", record.ID, models.PaymentPending).
				Update("status", models.PaymentExpired)
		}
	}
}
