package utils

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/d2cx/foundations-backend/models"
)

// NotifyResult reports the outcome of a notification attempt. Delivery is
// fire-and-forget for the primary flow: callers log a failure but never
// propagate it.
type NotifyResult struct {
	OK     bool
	Reason string
}

// EmailNotifier delivers admin notifications for contact queries.
type EmailNotifier interface {
	Notify(subject string, contact *models.Contact) NotifyResult
}

// SMTPNotifier sends notifications through an SMTP relay using gomail.
type SMTPNotifier struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// NewSMTPNotifier creates a notifier for the given SMTP relay.
func NewSMTPNotifier(host string, port int, username, password, from, to string) *SMTPNotifier {
	return &SMTPNotifier{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
		To:       to,
	}
}

// Notify sends the contact query to the admin mailbox. Both a plaintext and
// an HTML body are attached for clients that do not render HTML.
func (n *SMTPNotifier) Notify(subject string, contact *models.Contact) NotifyResult {
	m := gomail.NewMessage()
	m.SetHeader("From", n.From)
	m.SetHeader("To", n.To)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", contactPlainText(contact))
	m.AddAlternative("text/html", contactHTML(contact))

	d := gomail.NewDialer(n.Host, n.Port, n.Username, n.Password)

	if err := d.DialAndSend(m); err != nil {
		return NotifyResult{OK: false, Reason: fmt.Sprintf("failed to send email: %v", err)}
	}

	return NotifyResult{OK: true}
}

func contactPlainText(contact *models.Contact) string {
	return fmt.Sprintf(`New Contact Query Received
----------------------------
Name: %s %s
Email: %s
Phone: %s %s
Designation: %s
Company: %s
Query Type: %s
Message:
%s
----------------------------
`,
		contact.FirstName, contact.LastName,
		contact.Email,
		contact.PhoneCountry, contact.PhoneNumber,
		contact.Designation,
		contact.CompanyName,
		contact.QueryType,
		contact.Message,
	)
}

func contactHTML(contact *models.Contact) string {
	row := func(label, value string) string {
		return fmt.Sprintf(`<tr><td style="padding: 8px; font-weight: bold;">%s</td><td>%s</td></tr>`, label, value)
	}

	return fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; background-color: #f7f8fa; padding: 20px;">
	  <div style="max-width: 600px; margin: 0 auto; background: white; border-radius: 10px; padding: 25px;">
		<h2 style="color: #6b46c1; text-align: center;">New Contact Form Submission</h2>
		<p style="font-size: 16px; color: #333;">You have received a new inquiry from the contact form.</p>
		<table style="width: 100%%; border-collapse: collapse; margin-top: 15px;">
		  %s%s%s%s%s%s%s
		</table>
		<hr style="margin-top: 20px; border: none; border-top: 1px solid #eee;">
		<p style="text-align: center; font-size: 13px; color: #888;">&copy; %d D2CX Foundations. All rights reserved.</p>
	  </div>
	</div>
	`,
		row("Full Name:", contact.FirstName+" "+contact.LastName),
		row("Email:", contact.Email),
		row("Phone:", contact.PhoneCountry+" "+contact.PhoneNumber),
		row("Designation:", contact.Designation),
		row("Company:", contact.CompanyName),
		row("Query Type:", contact.QueryType),
		row("Message:", contact.Message),
		time.Now().Year(),
	)
}
