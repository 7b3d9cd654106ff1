package paymentController

import (
	"inspecteur/database"
	"inspecteur/middleware"
	"inspecteur/models"
	emailService "inspecteur/services/email"
	paymentService "inspecteur/services/payment"
	"log"

	"github.com/gofiber/fiber/v2"
)

// CreateCheckoutSession opens a Stripe Checkout session for the caller
func CreateCheckoutSession(paymentSvc *paymentService.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		db := database.Database.Db

		var user models.User
		if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}

		if user.HasPurchased {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You already own the full course!", nil)
		}

		if !paymentSvc.Enabled() {
			return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Payments are not available at the moment!", nil)
		}

		session, err := paymentSvc.CreateCheckoutSession(user.ID, user.Email)
		if err != nil {
			log.Printf("Error creating checkout session for user %d: %v", user.ID, err)
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to start checkout. Please try again!", nil)
		}

		record := models.PaymentSession{
			SessionID:   session.ID,
			UserID:      user.ID,
			Status:      models.PaymentPending,
			AmountTotal: session.AmountTotal,
			Currency:    session.Currency,
			CheckoutURL: session.URL,
		}
		if err := db.Create(&record).Error; err != nil {
			log.Printf("Error saving payment session %s: %v", session.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save checkout session!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Checkout session created!", fiber.Map{
			"session_id":   session.ID,
			"checkout_url": session.URL,
		})
	}
}

// GetSessionStatus returns the state of a checkout session, reconciling
// against Stripe when it is still pending
func GetSessionStatus(paymentSvc *paymentService.Service, emailSvc *emailService.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		sessionID := c.Params("session_id")
		if sessionID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Session id is required!", nil)
		}

		db := database.Database.Db

		var record models.PaymentSession
		if err := db.Where("session_id = ? AND user_id = ? AND is_deleted = ?", sessionID, userID, false).
			First(&record).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment session not found!", nil)
		}

		// Polling reconciliation path, same idempotent write as the webhook
		if record.Status == models.PaymentPending && paymentSvc.Enabled() {
			session, err := paymentSvc.RetrieveSession(sessionID)
			if err != nil {
				log.Printf("Error reconciling session %s: %v", sessionID, err)
			} else if session.PaymentStatus == "paid" {
				if user, first, err := paymentService.MarkSessionPaid(db, sessionID); err != nil {
					log.Printf("Error marking session %s paid: %v", sessionID, err)
				} else {
					record.Status = models.PaymentPaid
					if first {
						emailSvc.SendPurchaseEmail(user.Email, user.Name)
					}
				}
			} else if session.Status == "expired" {
				db.Model(&record).Update("status", models.PaymentExpired)
				record.Status = models.PaymentExpired
			}
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Session status fetched!", fiber.Map{
			"session_id": record.SessionID,
			"status":     record.Status,
		})
	}
}

// HandleWebhook processes Stripe webhook events. Duplicate deliveries of
// the same session must not error and leave has_purchased exactly true.
func HandleWebhook(emailSvc *emailService.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		event, err := paymentService.ParseWebhookEvent(c.Body())
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid webhook payload!", nil)
		}

		switch event.Type {
		case "checkout.session.completed":
			db := database.Database.Db
			user, first, err := paymentService.MarkSessionPaid(db, event.Data.Object.ID)
			if err != nil {
				log.Printf("Error resolving webhook for session %s: %v", event.Data.Object.ID, err)
				return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unknown checkout session!", nil)
			}
			if first {
				emailSvc.SendPurchaseEmail(user.Email, user.Name)
			}
		case "checkout.session.expired":
			database.Database.Db.Model(&models.PaymentSession{}).
				Where("session_id = ? AND status = ?", event.Data.Object.ID, models.PaymentPending).
				Update("status", models.PaymentExpired)
		default:
			// Unhandled event types are acknowledged so Stripe stops retrying
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Webhook processed.", nil)
	}
}
