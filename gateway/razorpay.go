package gateway

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// Order is the subset of a gateway order the rest of the system needs.
type Order struct {
	ID       string
	Amount   int64
	Currency string
}

// OrderGateway creates payment orders at the external gateway. Amount is in
// minor units (paise); the caller owns the major-to-minor conversion.
type OrderGateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string, notes map[string]interface{}) (*Order, error)
}

type razorpayGateway struct {
	client *razorpay.Client
}

// NewRazorpayGateway creates an OrderGateway backed by the Razorpay API.
func NewRazorpayGateway(keyID, keySecret string) OrderGateway {
	return &razorpayGateway{client: razorpay.NewClient(keyID, keySecret)}
}

func (g *razorpayGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string, notes map[string]interface{}) (*Order, error) {
	data := map[string]interface{}{
		"amount":          amountPaise,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	// The SDK call has no context support, so it runs on a goroutine and the
	// caller's deadline wins the select. A late result is dropped; no local
	// record exists yet at that point, the client simply retries.
	type result struct {
		order map[string]interface{}
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		order, err := g.client.Order.Create(data, nil)
		ch <- result{order: order, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.err != nil {
			return nil, res.err
		}
		return parseOrder(res.order)
	}
}

func parseOrder(raw map[string]interface{}) (*Order, error) {
	id, ok := raw["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("gateway order response missing id: %v", raw)
	}

	order := &Order{ID: id}
	if currency, ok := raw["currency"].(string); ok {
		order.Currency = currency
	}
	switch amount := raw["amount"].(type) {
	case float64:
		order.Amount = int64(amount)
	case int64:
		order.Amount = amount
	case int:
		order.Amount = int64(amount)
	}
	return order, nil
}
