package paymentRoutes

import (
	paymentController "inspecteur/controllers/payment"
	"inspecteur/middleware"
	emailService "inspecteur/services/email"
	paymentService "inspecteur/services/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up checkout and webhook routes
func SetupPaymentRoutes(app *fiber.App, paymentSvc *paymentService.Service, emailSvc *emailService.Service) {
	paymentGroup := app.Group("/payments")

	paymentGroup.Post("/checkout-session", middleware.JWTMiddleware, paymentController.CreateCheckoutSession(paymentSvc))
	paymentGroup.Get("/status/:session_id", middleware.JWTMiddleware, paymentController.GetSessionStatus(paymentSvc, emailSvc))

	// Called by Stripe, not by authenticated users
	paymentGroup.Post("/webhook", paymentController.HandleWebhook(emailSvc))
}
