package controllers

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d2cx/foundations-backend/gateway"
	"github.com/d2cx/foundations-backend/models"
	"github.com/d2cx/foundations-backend/repository"
	"github.com/d2cx/foundations-backend/services"
)

const testWebhookSecret = "whsec_test_123"

type memoryPaymentStore struct {
	mu      sync.Mutex
	records map[string]*models.Payment
}

func newMemoryPaymentStore() *memoryPaymentStore {
	return &memoryPaymentStore{records: map[string]*models.Payment{}}
}

func (s *memoryPaymentStore) Create(_ context.Context, payment *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *payment
	s.records[payment.OrderID] = &copied
	return nil
}

func (s *memoryPaymentStore) FindByOrderID(_ context.Context, orderID string) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[orderID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (s *memoryPaymentStore) UpdateWhereStatus(_ context.Context, orderID string, expected models.PaymentStatus, patch map[string]interface{}) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[orderID]
	if !ok || record.Status != expected {
		return 0, nil
	}
	if status, ok := patch["status"].(models.PaymentStatus); ok {
		record.Status = status
	}
	if paymentID, ok := patch["payment_id"].(string); ok {
		record.PaymentID = paymentID
	}
	if updatedAt, ok := patch["updated_at"].(time.Time); ok {
		record.UpdatedAt = updatedAt
	}
	return 1, nil
}

type stubGateway struct {
	err error
}

func (g *stubGateway) CreateOrder(_ context.Context, amountPaise int64, currency, _ string, _ map[string]interface{}) (*gateway.Order, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &gateway.Order{ID: "order_abc", Amount: amountPaise, Currency: currency}, nil
}

func newTestRouter(store *memoryPaymentStore, gw *stubGateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewPaymentService(store, gw, "rzp_test_key", testWebhookSecret, "INR")
	pc := NewPaymentController(svc)

	router := gin.New()
	router.POST("/api/payments/create-order", pc.CreateOrder)
	router.POST("/api/payments/webhook", pc.Webhook)
	return router
}

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func postJSON(router *gin.Engine, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postWebhook(router *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set(SignatureHeader, signature)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateOrderEndpoint(t *testing.T) {
	store := newMemoryPaymentStore()
	router := newTestRouter(store, &stubGateway{})

	w := postJSON(router, "/api/payments/create-order", `{"email":"buyer@example.com","amount":499.99}`)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			OrderID  string  `json:"orderId"`
			Currency string  `json:"currency"`
			Amount   float64 `json:"amount"`
			KeyID    string  `json:"keyId"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "order_abc", resp.Data.OrderID)
	assert.Equal(t, "INR", resp.Data.Currency)
	assert.Equal(t, float64(49999), resp.Data.Amount)
	assert.Equal(t, "rzp_test_key", resp.Data.KeyID)

	record := store.records["order_abc"]
	require.NotNil(t, record)
	assert.Equal(t, models.PaymentStatusCreated, record.Status)
}

func TestCreateOrderEndpointRejectsBadInput(t *testing.T) {
	router := newTestRouter(newMemoryPaymentStore(), &stubGateway{})

	for _, body := range []string{
		`{"email":"buyer@example.com","amount":0}`,
		`{"email":"buyer@example.com","amount":-5}`,
		`{"email":"buyer@example.com","amount":"ten"}`,
		`not json`,
	} {
		w := postJSON(router, "/api/payments/create-order", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
}

func TestCreateOrderEndpointGatewayFailure(t *testing.T) {
	store := newMemoryPaymentStore()
	router := newTestRouter(store, &stubGateway{err: errors.New("gateway down")})

	w := postJSON(router, "/api/payments/create-order", `{"email":"buyer@example.com","amount":100}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, store.records)
}

func TestWebhookEndpointMissingSignature(t *testing.T) {
	router := newTestRouter(newMemoryPaymentStore(), &stubGateway{})

	w := postWebhook(router, []byte(`{"event":"payment.captured"}`), "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookEndpointInvalidSignature(t *testing.T) {
	router := newTestRouter(newMemoryPaymentStore(), &stubGateway{})
	body := []byte(`{"event":"payment.captured"}`)

	w := postWebhook(router, body, signBody(body, "whsec_wrong"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookEndpointCaptured(t *testing.T) {
	store := newMemoryPaymentStore()
	seededAt := time.Now().Add(-time.Hour)
	store.records["order_abc"] = &models.Payment{
		OrderID:   "order_abc",
		Status:    models.PaymentStatusCreated,
		Amount:    499.99,
		UpdatedAt: seededAt,
	}
	router := newTestRouter(store, &stubGateway{})
	body := []byte(fmt.Sprintf(
		`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_123","order_id":%q,"status":"captured"}}}}`,
		"order_abc",
	))

	w := postWebhook(router, body, signBody(body, testWebhookSecret))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.Equal(t, models.PaymentStatusSuccess, store.records["order_abc"].Status)
	assert.Equal(t, "pay_123", store.records["order_abc"].PaymentID)
	assert.True(t, store.records["order_abc"].UpdatedAt.After(seededAt), "transition must refresh updated_at")
}

func TestWebhookEndpointIgnoredEvent(t *testing.T) {
	router := newTestRouter(newMemoryPaymentStore(), &stubGateway{})
	body := []byte(`{"event":"refund.created","payload":{}}`)

	w := postWebhook(router, body, signBody(body, testWebhookSecret))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ignored"}`, w.Body.String())
}

func TestWebhookEndpointMalformedButAuthenticated(t *testing.T) {
	router := newTestRouter(newMemoryPaymentStore(), &stubGateway{})
	body := []byte(`{"event":`)

	w := postWebhook(router, body, signBody(body, testWebhookSecret))

	// A valid signature means the sender is the gateway; retries are useless
	// for a payload that will never parse, so it is acknowledged.
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"error"}`, w.Body.String())
}
