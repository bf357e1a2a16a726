package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d2cx/foundations-backend/models"
)

// ErrNotFound is returned when no record matches a lookup.
var ErrNotFound = errors.New("record not found")

// PaymentStore is the persistence boundary for payment records. Updates go
// through UpdateWhereStatus so a duplicate webhook delivery racing another
// cannot overwrite a terminal status: the write carries the expected prior
// status as a precondition and loses cleanly (zero rows) when it no longer
// holds.
type PaymentStore interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByOrderID(ctx context.Context, orderID string) (*models.Payment, error)
	UpdateWhereStatus(ctx context.Context, orderID string, expected models.PaymentStatus, patch map[string]interface{}) (int64, error)
}

type gormPaymentStore struct {
	db *gorm.DB
}

// NewPaymentStore creates a gorm-backed PaymentStore.
func NewPaymentStore(db *gorm.DB) PaymentStore {
	return &gormPaymentStore{db: db}
}

func (s *gormPaymentStore) Create(ctx context.Context, payment *models.Payment) error {
	return s.db.WithContext(ctx).Create(payment).Error
}

func (s *gormPaymentStore) FindByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.WithContext(ctx).Where("order_id = ?", orderID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (s *gormPaymentStore) UpdateWhereStatus(ctx context.Context, orderID string, expected models.PaymentStatus, patch map[string]interface{}) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("order_id = ? AND status = ?", orderID, expected).
		Updates(patch)
	return result.RowsAffected, result.Error
}
