package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d2cx/foundations-backend/models"
	"github.com/d2cx/foundations-backend/utils"
)

type fakeContactStore struct {
	createErr error
	updateErr error
	created   []*models.Contact
	statuses  []string
}

func (s *fakeContactStore) Create(_ context.Context, contact *models.Contact) error {
	if s.createErr != nil {
		return s.createErr
	}
	contact.ID = uint(len(s.created) + 1)
	s.created = append(s.created, contact)
	return nil
}

func (s *fakeContactStore) UpdateEmailStatus(_ context.Context, _ uint, status string, _ int) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.statuses = append(s.statuses, status)
	return nil
}

func (s *fakeContactStore) ListUnsent(_ context.Context, _ int) ([]models.Contact, error) {
	return nil, nil
}

type fakeNotifier struct {
	result   utils.NotifyResult
	subjects []string
}

func (n *fakeNotifier) Notify(subject string, _ *models.Contact) utils.NotifyResult {
	n.subjects = append(n.subjects, subject)
	return n.result
}

func validContactInput() ContactInput {
	return ContactInput{
		FirstName:    "Asha",
		LastName:     "Menon",
		Email:        "asha@example.com",
		PhoneCountry: "+91",
		PhoneNumber:  "9876543210",
		Designation:  "Founder",
		CompanyName:  "Acme Traders",
		QueryType:    "Onboarding",
		Message:      "Please call back",
	}
}

func TestContactSubmitSavesThenNotifies(t *testing.T) {
	store := &fakeContactStore{}
	notifier := &fakeNotifier{result: utils.NotifyResult{OK: true}}
	svc := NewContactService(store, notifier)

	err := svc.Submit(context.Background(), validContactInput())
	require.NoError(t, err)

	require.Len(t, store.created, 1)
	assert.Equal(t, models.EmailStatusPending, store.created[0].EmailStatus)
	require.Len(t, notifier.subjects, 1)
	assert.Equal(t, "New Contact Query from Asha", notifier.subjects[0])
	assert.Equal(t, []string{models.EmailStatusSent}, store.statuses)
}

func TestContactSubmitSurvivesNotifyFailure(t *testing.T) {
	store := &fakeContactStore{}
	notifier := &fakeNotifier{result: utils.NotifyResult{OK: false, Reason: "smtp timeout"}}
	svc := NewContactService(store, notifier)

	err := svc.Submit(context.Background(), validContactInput())

	assert.NoError(t, err, "email failure must not fail the submission")
	assert.Equal(t, []string{models.EmailStatusFailed}, store.statuses)
}

func TestContactSubmitStoreFailure(t *testing.T) {
	store := &fakeContactStore{createErr: errors.New("connection refused")}
	notifier := &fakeNotifier{result: utils.NotifyResult{OK: true}}
	svc := NewContactService(store, notifier)

	err := svc.Submit(context.Background(), validContactInput())

	require.Error(t, err)
	assert.True(t, utils.IsStoreError(err))
	assert.Empty(t, notifier.subjects, "no notification without a saved record")
}

func TestContactSubmitValidation(t *testing.T) {
	svc := NewContactService(&fakeContactStore{}, &fakeNotifier{})

	input := validContactInput()
	input.FirstName = ""
	input.Email = "bogus"

	err := svc.Submit(context.Background(), input)
	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))
}

func TestContactSubmitSanitizesMessage(t *testing.T) {
	store := &fakeContactStore{}
	svc := NewContactService(store, &fakeNotifier{result: utils.NotifyResult{OK: true}})

	input := validContactInput()
	input.Message = `<script>alert(1)</script>hello`

	require.NoError(t, svc.Submit(context.Background(), input))
	assert.NotContains(t, store.created[0].Message, "<script>")
}
