package models

import (
	"time"
)

// Email delivery states for the admin notification tied to a contact query.
const (
	EmailStatusPending = "pending"
	EmailStatusSent    = "sent"
	EmailStatusFailed  = "failed"
)

// Contact is one submitted contact-form query. The email* fields track the
// admin notification so the resend script can pick up failed deliveries.
type Contact struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	FirstName     string    `json:"first_name" gorm:"size:100;not null"`
	LastName      string    `json:"last_name" gorm:"size:100;not null"`
	Email         string    `json:"email" gorm:"size:150;not null"`
	PhoneCountry  string    `json:"phone_country" gorm:"size:100;not null"`
	PhoneNumber   string    `json:"phone_number" gorm:"size:20;not null"`
	Designation   string    `json:"designation" gorm:"size:100;not null"`
	CompanyName   string    `json:"company_name" gorm:"size:150;not null"`
	QueryType     string    `json:"query_type" gorm:"size:100;not null"`
	Message       string    `json:"message" gorm:"type:text;not null"`
	EmailStatus   string    `json:"email_status" gorm:"size:20;not null;default:pending"`
	RetryCount    int       `json:"retry_count" gorm:"default:0"`
	LastAttemptAt time.Time `json:"last_attempt_at"`
	CreatedAt     time.Time `json:"created_at"`
}
