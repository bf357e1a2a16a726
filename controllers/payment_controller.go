package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/d2cx/foundations-backend/services"
	"github.com/d2cx/foundations-backend/utils"
)

// SignatureHeader is the header Razorpay signs webhook deliveries with.
const SignatureHeader = "x-razorpay-signature"

// orderTimeout bounds the gateway round trip for order creation. On timeout
// nothing is persisted and the client retries.
const orderTimeout = 10 * time.Second

// PaymentController exposes the payment HTTP surface.
type PaymentController struct {
	service *services.PaymentService
}

// NewPaymentController wires a PaymentController.
func NewPaymentController(service *services.PaymentService) *PaymentController {
	return &PaymentController{service: service}
}

// CreateOrder handles POST /api/payments/create-order
func (pc *PaymentController) CreateOrder(c *gin.Context) {
	utils.LogInfo("CreateOrder called")

	var input services.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.LogError("Invalid create-order request: %v", err)
		utils.BadRequest(c, "Invalid input data", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), orderTimeout)
	defer cancel()

	order, err := pc.service.CreateOrder(ctx, input)
	if err != nil {
		if appErr := utils.GetAppError(err); appErr != nil && utils.IsValidationError(err) {
			utils.BadRequest(c, appErr.Message, appErr.Err)
			return
		}
		utils.InternalServerError(c, "Failed to create payment order", nil)
		return
	}

	utils.Created(c, "Razorpay order created successfully", gin.H{
		"orderId":  order.OrderID,
		"currency": order.Currency,
		"amount":   order.AmountPaise,
		"keyId":    order.KeyID,
	})
}

// Webhook handles POST /api/payments/webhook. The body is read raw off the
// wire; parsing or re-encoding it before signature verification would break
// the signature.
func (pc *PaymentController) Webhook(c *gin.Context) {
	signature := c.GetHeader(SignatureHeader)

	rawBody, err := c.GetRawData()
	if err != nil {
		utils.LogError("Failed to read webhook body: %v", err)
		utils.BadRequest(c, "Unable to read request body", nil)
		return
	}

	outcome := pc.service.HandleWebhook(c.Request.Context(), rawBody, signature)

	switch outcome.Status {
	case services.WebhookRejected:
		appErr := utils.AuthenticationFailed(outcome.Reason)
		utils.Error(c, appErr.Code, appErr.Message, nil)
	case services.WebhookOK:
		if outcome.Record != nil {
			utils.LogInfo("Webhook processed for order %s", outcome.Record.OrderID)
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	case services.WebhookIgnored:
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	default:
		// Authenticated but failed internally. A 200 keeps Razorpay from
		// retrying; the failure is already logged for alerting.
		c.JSON(http.StatusOK, gin.H{"status": "error"})
	}
}
