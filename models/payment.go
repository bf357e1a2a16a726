package models

import (
	"time"
)

// PaymentStatus tracks where a payment sits in its lifecycle.
type PaymentStatus string

const (
	// PaymentStatusPending is the schema default; this service never writes
	// it, records are created directly in PaymentStatusCreated.
	PaymentStatusPending PaymentStatus = "pending"
	// PaymentStatusCreated means the Razorpay order exists but no payment
	// has completed against it yet.
	PaymentStatusCreated PaymentStatus = "created"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Payment represents one payment lifecycle instance, keyed by the Razorpay
// order id. Amount is always stored in rupees; Razorpay payloads carry paise
// and are converted at the boundary.
type Payment struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	Email       string        `json:"email" gorm:"size:150;not null"`
	PhoneNumber string        `json:"phone_number" gorm:"size:20"`
	Gateway     string        `json:"gateway" gorm:"size:50;not null;default:Razorpay"`
	OrderID     string        `json:"order_id" gorm:"size:100;not null;uniqueIndex"`
	PaymentID   string        `json:"payment_id" gorm:"size:100"`
	Status      PaymentStatus `json:"status" gorm:"size:50;not null;default:pending"`
	Amount      float64       `json:"amount" gorm:"not null"`
	Currency    string        `json:"currency" gorm:"size:10;not null;default:INR"`
	Notes       string        `json:"notes" gorm:"type:text"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
