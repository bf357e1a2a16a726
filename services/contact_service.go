package services

import (
	"context"

	"github.com/d2cx/foundations-backend/models"
	"github.com/d2cx/foundations-backend/repository"
	"github.com/d2cx/foundations-backend/utils"
)

// ContactInput is the client request for a contact-form submission.
type ContactInput struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	PhoneCountry string `json:"phone_country"`
	PhoneNumber  string `json:"phone_number"`
	Designation  string `json:"designation"`
	CompanyName  string `json:"company_name"`
	QueryType    string `json:"query_type"`
	Message      string `json:"message"`
}

// ContactService persists contact queries and notifies the admin mailbox.
type ContactService struct {
	store    repository.ContactStore
	notifier utils.EmailNotifier
}

// NewContactService wires a ContactService.
func NewContactService(store repository.ContactStore, notifier utils.EmailNotifier) *ContactService {
	return &ContactService{store: store, notifier: notifier}
}

// Submit stores the query and then attempts the admin notification. The
// insert must succeed for the submission to succeed; the email is
// fire-and-forget and only updates the delivery bookkeeping on the record.
func (s *ContactService) Submit(ctx context.Context, input ContactInput) error {
	if errs := validateContact(input); len(errs) > 0 {
		return utils.ValidationFailed("Invalid input data", errs)
	}

	contact := &models.Contact{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PhoneCountry: input.PhoneCountry,
		PhoneNumber:  input.PhoneNumber,
		Designation:  input.Designation,
		CompanyName:  input.CompanyName,
		QueryType:    input.QueryType,
		Message:      utils.SanitizeString(input.Message),
		EmailStatus:  models.EmailStatusPending,
	}

	if err := s.store.Create(ctx, contact); err != nil {
		utils.LogError("Failed to save contact query from %s: %v", input.Email, err)
		return utils.StoreFailure("Failed to submit your request. Please try again later.", err)
	}
	utils.LogInfo("Contact query saved for %s", contact.Email)

	result := s.notifier.Notify("New Contact Query from "+contact.FirstName, contact)
	status := models.EmailStatusSent
	if !result.OK {
		status = models.EmailStatusFailed
		utils.LogError("Notification email failed for contact %d: %s", contact.ID, result.Reason)
	}
	if err := s.store.UpdateEmailStatus(ctx, contact.ID, status, contact.RetryCount); err != nil {
		// The query itself is saved; the resend script will see the record
		// still pending and pick it up.
		utils.LogError("Failed to record email status for contact %d: %v", contact.ID, err)
	}

	return nil
}

func validateContact(input ContactInput) utils.FieldValidationErrors {
	var errs utils.FieldValidationErrors
	errs = utils.RequireField(errs, "first_name", input.FirstName)
	errs = utils.RequireField(errs, "last_name", input.LastName)
	errs = utils.RequireField(errs, "phone_country", input.PhoneCountry)
	errs = utils.RequireField(errs, "designation", input.Designation)
	errs = utils.RequireField(errs, "company_name", input.CompanyName)
	errs = utils.RequireField(errs, "query_type", input.QueryType)
	errs = utils.RequireField(errs, "message", input.Message)
	if input.Email == "" {
		errs = append(errs, utils.FieldValidationError{Field: "email", Message: "is required"})
	} else if !utils.ValidateEmail(input.Email) {
		errs = append(errs, utils.FieldValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if input.PhoneNumber == "" {
		errs = append(errs, utils.FieldValidationError{Field: "phone_number", Message: "is required"})
	} else if !utils.ValidatePhone(input.PhoneNumber) {
		errs = append(errs, utils.FieldValidationError{Field: "phone_number", Message: "must be a valid phone number"})
	}
	return errs
}
