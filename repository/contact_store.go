package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/d2cx/foundations-backend/models"
)

// ContactStore is the persistence boundary for contact queries, including
// the bookkeeping the resend-emails script relies on.
type ContactStore interface {
	Create(ctx context.Context, contact *models.Contact) error
	UpdateEmailStatus(ctx context.Context, id uint, status string, retryCount int) error
	ListUnsent(ctx context.Context, limit int) ([]models.Contact, error)
}

type gormContactStore struct {
	db *gorm.DB
}

// NewContactStore creates a gorm-backed ContactStore.
func NewContactStore(db *gorm.DB) ContactStore {
	return &gormContactStore{db: db}
}

func (s *gormContactStore) Create(ctx context.Context, contact *models.Contact) error {
	return s.db.WithContext(ctx).Create(contact).Error
}

func (s *gormContactStore) UpdateEmailStatus(ctx context.Context, id uint, status string, retryCount int) error {
	return s.db.WithContext(ctx).
		Model(&models.Contact{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"email_status":    status,
			"retry_count":     retryCount,
			"last_attempt_at": time.Now(),
		}).Error
}

func (s *gormContactStore) ListUnsent(ctx context.Context, limit int) ([]models.Contact, error) {
	var contacts []models.Contact
	err := s.db.WithContext(ctx).
		Where("email_status IN ?", []string{models.EmailStatusPending, models.EmailStatusFailed}).
		Order("id").
		Limit(limit).
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}
