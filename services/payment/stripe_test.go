package payment

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"inspecteur/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDb(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.PaymentSession{}))
	return db
}

func TestCreateCheckoutSessionDisabledWithoutKey(t *testing.T) {
	svc := NewService("", "https://api.stripe.test/v1", "https://front.test", 19900, "eur")

	assert.False(t, svc.Enabled())

	_, err := svc.CreateCheckoutSession(1, "jean@test.fr")
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = svc.RetrieveSession("cs_test_123")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestCreateCheckoutSessionPostsLineItems(t *testing.T) {
	var form url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/checkout/sessions", r.URL.Path)

		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "sk_test_abc", user)

		require.NoError(t, r.ParseForm())
		form = r.PostForm

		json.NewEncoder(w).Encode(CheckoutSession{
			ID:            "cs_test_123",
			URL:           "https://checkout.stripe.test/pay/cs_test_123",
			Status:        "open",
			PaymentStatus: "unpaid",
			AmountTotal:   19900,
			Currency:      "eur",
		})
	}))
	defer server.Close()

	svc := NewService("sk_test_abc", server.URL+"/v1", "https://front.test", 19900, "eur")

	session, err := svc.CreateCheckoutSession(42, "jean@test.fr")
	require.NoError(t, err)

	assert.Equal(t, "cs_test_123", session.ID)
	assert.Equal(t, "https://checkout.stripe.test/pay/cs_test_123", session.URL)
	assert.Equal(t, int64(19900), session.AmountTotal)

	assert.Equal(t, "payment", form.Get("mode"))
	assert.Equal(t, "42", form.Get("client_reference_id"))
	assert.Equal(t, "jean@test.fr", form.Get("customer_email"))
	assert.Equal(t, "eur", form.Get("line_items[0][price_data][currency]"))
	assert.Equal(t, "19900", form.Get("line_items[0][price_data][unit_amount]"))
	assert.Contains(t, form.Get("success_url"), "{CHECKOUT_SESSION_ID}")
}

func TestCreateCheckoutSessionSurfacesApiError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"card declined"}}`))
	}))
	defer server.Close()

	svc := NewService("sk_test_abc", server.URL+"/v1", "https://front.test", 19900, "eur")

	_, err := svc.CreateCheckoutSession(1, "jean@test.fr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "402")
}

func TestRetrieveSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/checkout/sessions/cs_test_123", r.URL.Path)

		json.NewEncoder(w).Encode(CheckoutSession{
			ID:            "cs_test_123",
			Status:        "complete",
			PaymentStatus: "paid",
		})
	}))
	defer server.Close()

	svc := NewService("sk_test_abc", server.URL+"/v1", "https://front.test", 19900, "eur")

	session, err := svc.RetrieveSession("cs_test_123")
	require.NoError(t, err)
	assert.Equal(t, "complete", session.Status)
	assert.Equal(t, "paid", session.PaymentStatus)
}

func TestParseWebhookEvent(t *testing.T) {
	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_test_123", "payment_status": "paid"}}
	}`)

	event, err := ParseWebhookEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, "checkout.session.completed", event.Type)
	assert.Equal(t, "cs_test_123", event.Data.Object.ID)
	assert.Equal(t, "paid", event.Data.Object.PaymentStatus)
}

func TestParseWebhookEventRejectsBadPayloads(t *testing.T) {
	_, err := ParseWebhookEvent([]byte(`not json`))
	assert.Error(t, err)

	_, err = ParseWebhookEvent([]byte(`{"id": "evt_1"}`))
	assert.Error(t, err)
}

func TestMarkSessionPaidIsIdempotent(t *testing.T) {
	db := setupTestDb(t)

	user := models.User{Name: "Jean Dupont", Email: "jean@test.fr", Password: "hashed"}
	require.NoError(t, db.Create(&user).Error)

	session := models.PaymentSession{
		SessionID:   "cs_test_123",
		UserID:      user.ID,
		Status:      models.PaymentPending,
		AmountTotal: 19900,
		Currency:    "eur",
	}
	require.NoError(t, db.Create(&session).Error)

	paidUser, first, err := MarkSessionPaid(db, "cs_test_123")
	require.NoError(t, err)
	assert.True(t, first, "first delivery performs the transition")
	assert.True(t, paidUser.HasPurchased)

	// Duplicate delivery: no transition reported, flag stays set
	paidUser, first, err = MarkSessionPaid(db, "cs_test_123")
	require.NoError(t, err)
	assert.False(t, first)
	assert.True(t, paidUser.HasPurchased)

	var stored models.PaymentSession
	require.NoError(t, db.Where("session_id = ?", "cs_test_123").First(&stored).Error)
	assert.Equal(t, models.PaymentPaid, stored.Status)
}

func TestMarkSessionPaidUnknownSession(t *testing.T) {
	db := setupTestDb(t)

	_, _, err := MarkSessionPaid(db, "cs_missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
