package payment

import (
	"encoding/json"
	"errors"
	"fmt"
	"inspecteur/models"
	"strconv"

	"github.com/go-resty/resty/v2"
	"gorm.io/gorm"
)

// ErrDisabled is returned when no Stripe key is configured
var ErrDisabled = errors.New("payment service is disabled")

// CheckoutSession mirrors the fields of a Stripe Checkout session we consume
type CheckoutSession struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	Status        string `json:"status"`         // open, complete, expired
	PaymentStatus string `json:"payment_status"` // paid, unpaid, no_payment_required
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
}

// WebhookEvent is the subset of a Stripe event payload we consume
type WebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object CheckoutSession `json:"object"`
	} `json:"data"`
}

// Service talks to the Stripe Checkout REST API. A Service built without a
// secret key is disabled and rejects session creation instead of crashing.
type Service struct {
	client      *resty.Client
	secretKey   string
	apiURL      string
	successURL  string
	cancelURL   string
	productName string
	amountCents int64
	currency    string
	enabled     bool
}

// NewService builds the payment bridge. An empty secret key yields a
// disabled service.
func NewService(secretKey, apiURL, frontendURL string, amountCents int64, currency string) *Service {
	return &Service{
		client:      resty.New(),
		secretKey:   secretKey,
		apiURL:      apiURL,
		successURL:  frontendURL + "/paiement/succes?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:   frontendURL + "/paiement/annule",
		productName: "Formation Inspecteur Auto",
		amountCents: amountCents,
		currency:    currency,
		enabled:     secretKey != "",
	}
}

// Enabled reports whether checkout is configured
func (s *Service) Enabled() bool {
	return s.enabled
}

// CreateCheckoutSession opens a Stripe Checkout session for the full course
func (s *Service) CreateCheckoutSession(userID uint, userEmail string) (*CheckoutSession, error) {
	if !s.enabled {
		return nil, ErrDisabled
	}

	resp, err := s.client.R().
		SetBasicAuth(s.secretKey, "").
		SetFormData(map[string]string{
			"mode":                                       "payment",
			"success_url":                                s.successURL,
			"cancel_url":                                 s.cancelURL,
			"customer_email":                             userEmail,
			"client_reference_id":                        strconv.FormatUint(uint64(userID), 10),
			"line_items[0][quantity]":                    "1",
			"line_items[0][price_data][currency]":        s.currency,
			"line_items[0][price_data][unit_amount]":     strconv.FormatInt(s.amountCents, 10),
			"line_items[0][price_data][product_data][name]": s.productName,
		}).
		Post(s.apiURL + "/checkout/sessions")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("stripe returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var session CheckoutSession
	if err := json.Unmarshal(resp.Body(), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// RetrieveSession fetches the current state of a checkout session
func (s *Service) RetrieveSession(sessionID string) (*CheckoutSession, error) {
	if !s.enabled {
		return nil, ErrDisabled
	}

	resp, err := s.client.R().
		SetBasicAuth(s.secretKey, "").
		Get(s.apiURL + "/checkout/sessions/" + sessionID)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("stripe returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var session CheckoutSession
	if err := json.Unmarshal(resp.Body(), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ParseWebhookEvent decodes a webhook payload
func ParseWebhookEvent(body []byte) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, err
	}
	if event.Type == "" {
		return nil, errors.New("webhook payload has no event type")
	}
	return &event, nil
}

// MarkSessionPaid resolves a paid checkout session. The purchase flag is an
// unconditional set so the webhook and the poller can both deliver the same
// session without error; the session status transition is conditional so the
// confirmation email fires only on the first delivery. Returns the user and
// whether this call performed the PENDING -> PAID transition.
func MarkSessionPaid(db *gorm.DB, sessionID string) (*models.User, bool, error) {
	var session models.PaymentSession
	if err := db.Where("session_id = ? AND is_deleted = false", sessionID).First(&session).Error; err != nil {
		return nil, false, err
	}

	res := db.Model(&models.PaymentSession{}).
		Where("id = ? AND status <> ?", session.ID, models.PaymentPaid).
		Update("status", models.PaymentPaid)
	if res.Error != nil {
		return nil, false, res.Error
	}

	// Idempotent set: never toggled back, duplicate deliveries are no-ops
	if err := db.Model(&models.User{}).
		Where("id = ?", session.UserID).
		Update("has_purchased", true).Error; err != nil {
		return nil, false, err
	}

	var user models.User
	if err := db.Where("id = ?", session.UserID).First(&user).Error; err != nil {
		return nil, false, err
	}

	return &user, res.RowsAffected > 0, nil
}
