package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/d2cx/foundations-backend/gateway"
	"github.com/d2cx/foundations-backend/models"
	"github.com/d2cx/foundations-backend/repository"
	"github.com/d2cx/foundations-backend/utils"
)

// Webhook outcome statuses. Rejected maps to a 4xx; everything else is
// acknowledged 200 so Razorpay does not retry an already-authenticated event.
const (
	WebhookOK       = "ok"
	WebhookIgnored  = "ignored"
	WebhookRejected = "rejected"
	WebhookError    = "error"
)

// WebhookOutcome is the result of processing one webhook delivery.
type WebhookOutcome struct {
	Status string
	Reason string
	Record *models.Payment
}

// CreateOrderInput is the validated client request for a new payment order.
type CreateOrderInput struct {
	Email       string  `json:"email"`
	Amount      float64 `json:"amount"`
	PhoneNumber string  `json:"phone_number"`
	Notes       string  `json:"notes"`
}

// OrderOutput carries the fields a client needs to launch the payment popup.
// The key id is the public half of the gateway credentials; the secret never
// leaves the server.
type OrderOutput struct {
	OrderID     string `json:"orderId"`
	Currency    string `json:"currency"`
	AmountPaise int64  `json:"amount"`
	KeyID       string `json:"keyId"`
}

// PaymentService owns the payment lifecycle: order creation against the
// gateway and webhook reconciliation of the stored records.
type PaymentService struct {
	store         repository.PaymentStore
	gateway       gateway.OrderGateway
	keyID         string
	webhookSecret string
	currency      string
}

// NewPaymentService wires a PaymentService. An empty webhookSecret is
// tolerated at construction; verification then fails closed on every event.
func NewPaymentService(store repository.PaymentStore, gw gateway.OrderGateway, keyID, webhookSecret, currency string) *PaymentService {
	return &PaymentService{
		store:         store,
		gateway:       gw,
		keyID:         keyID,
		webhookSecret: webhookSecret,
		currency:      currency,
	}
}

// CreateOrder creates a Razorpay order and persists the pending payment
// record. The record is written only after the gateway call succeeds; on any
// failure nothing is persisted and the caller sees the error.
func (s *PaymentService) CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderOutput, error) {
	if errs := validateCreateOrder(input); len(errs) > 0 {
		return nil, utils.ValidationFailed("Invalid input data", errs)
	}

	// Razorpay wants paise; the stored record keeps rupees.
	amountPaise := int64(math.Round(input.Amount * 100))

	notes := map[string]interface{}{"email": input.Email}
	if input.PhoneNumber != "" {
		notes["phoneNumber"] = input.PhoneNumber
	}
	if input.Notes != "" {
		notes["notes"] = input.Notes
	}

	// Every call makes a fresh gateway order; receipts are unique per call
	// and client retries are not deduplicated.
	receipt := "receipt_" + uuid.New().String()

	order, err := s.gateway.CreateOrder(ctx, amountPaise, s.currency, receipt, notes)
	if err != nil {
		utils.LogError("Failed to create Razorpay order for %s: %v", input.Email, err)
		return nil, utils.UpstreamFailure("Failed to create payment order", err)
	}
	utils.LogInfo("Created Razorpay order %s for %s (%d paise)", order.ID, input.Email, amountPaise)

	payment := &models.Payment{
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Gateway:     "Razorpay",
		OrderID:     order.ID,
		Status:      models.PaymentStatusCreated,
		Amount:      input.Amount,
		Currency:    s.currency,
		Notes:       input.Notes,
	}
	if err := s.store.Create(ctx, payment); err != nil {
		utils.LogError("Failed to persist payment record for order %s: %v", order.ID, err)
		return nil, utils.StoreFailure("Failed to create payment order", err)
	}

	return &OrderOutput{
		OrderID:     order.ID,
		Currency:    s.currency,
		AmountPaise: amountPaise,
		KeyID:       s.keyID,
	}, nil
}

func validateCreateOrder(input CreateOrderInput) utils.FieldValidationErrors {
	var errs utils.FieldValidationErrors
	if input.Email == "" {
		errs = append(errs, utils.FieldValidationError{Field: "email", Message: "is required"})
	} else if !utils.ValidateEmail(input.Email) {
		errs = append(errs, utils.FieldValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if input.Amount <= 0 {
		errs = append(errs, utils.FieldValidationError{Field: "amount", Message: "must be a positive number"})
	}
	if input.PhoneNumber != "" && !utils.ValidatePhone(input.PhoneNumber) {
		errs = append(errs, utils.FieldValidationError{Field: "phone_number", Message: "must be a valid phone number"})
	}
	return errs
}

// webhookEvent is the slice of the Razorpay event envelope this service
// dispatches on.
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity *paymentEntity `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

type paymentEntity struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// HandleWebhook authenticates and applies one webhook delivery. The body is
// parsed only after the signature checks out, so untrusted structure is never
// processed on an unauthenticated request.
func (s *PaymentService) HandleWebhook(ctx context.Context, rawBody []byte, signature string) WebhookOutcome {
	if signature == "" {
		utils.LogError("Webhook delivery with no signature header")
		return WebhookOutcome{Status: WebhookRejected, Reason: "Missing signature"}
	}

	if !utils.VerifyWebhookSignature(rawBody, signature, s.webhookSecret) {
		utils.LogError("Webhook signature mismatch")
		return WebhookOutcome{Status: WebhookRejected, Reason: "Invalid signature"}
	}

	var event webhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		// Authenticated but unparseable. Acknowledge so the gateway does not
		// retry a payload that will never parse.
		utils.LogError("Failed to parse webhook payload: %v", err)
		return WebhookOutcome{Status: WebhookError, Reason: "Malformed payload"}
	}

	switch event.Event {
	case "payment.captured":
		return s.applyTransition(ctx, event.Payload.Payment.Entity, models.PaymentStatusSuccess)
	case "payment.failed":
		return s.applyTransition(ctx, event.Payload.Payment.Entity, models.PaymentStatusFailed)
	default:
		utils.LogInfo("Ignoring webhook event %q", event.Event)
		return WebhookOutcome{Status: WebhookIgnored}
	}
}

// applyTransition moves a record out of created into the given terminal
// status. The update is conditioned on the current status so concurrent or
// repeated deliveries collapse to exactly one effective transition.
func (s *PaymentService) applyTransition(ctx context.Context, entity *paymentEntity, status models.PaymentStatus) WebhookOutcome {
	if entity == nil || entity.OrderID == "" {
		utils.LogError("Webhook event without a payment entity")
		return WebhookOutcome{Status: WebhookIgnored}
	}

	rows, err := s.store.UpdateWhereStatus(ctx, entity.OrderID, models.PaymentStatusCreated, map[string]interface{}{
		"status":     status,
		"payment_id": entity.ID,
		"updated_at": time.Now(),
	})
	if err != nil {
		utils.LogError("Failed to update payment for order %s: %v", entity.OrderID, err)
		return WebhookOutcome{Status: WebhookError, Reason: "Store update failed"}
	}

	if rows == 0 {
		record, err := s.store.FindByOrderID(ctx, entity.OrderID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Order was never created locally. Do not invent a record.
				utils.LogInfo("Webhook for unknown order %s, ignoring", entity.OrderID)
				return WebhookOutcome{Status: WebhookIgnored}
			}
			utils.LogError("Failed to look up payment for order %s: %v", entity.OrderID, err)
			return WebhookOutcome{Status: WebhookError, Reason: "Store lookup failed"}
		}
		if record.Status == status {
			// Duplicate delivery of an already-applied transition.
			utils.LogInfo("Duplicate %s webhook for order %s, already %s", entity.ID, entity.OrderID, status)
			return WebhookOutcome{Status: WebhookOK, Record: record}
		}
		// Record already settled into a different terminal state; a capture
		// arriving after a recorded failure does not resurrect it.
		utils.LogInfo("Webhook for order %s ignored, record already %s", entity.OrderID, record.Status)
		return WebhookOutcome{Status: WebhookIgnored, Record: record}
	}

	record, err := s.store.FindByOrderID(ctx, entity.OrderID)
	if err != nil {
		// The transition applied; the read-back is only for the response.
		utils.LogError("Updated order %s but failed to re-read record: %v", entity.OrderID, err)
		return WebhookOutcome{Status: WebhookOK}
	}
	utils.LogInfo("Payment %s for order %s: %s", entity.ID, entity.OrderID, status)
	return WebhookOutcome{Status: WebhookOK, Record: record}
}
