// Command resend_emails retries the admin notification for contact queries
// whose email is still pending or failed. Run it manually or from cron:
//
//	go run ./scripts
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/d2cx/foundations-backend/config"
	"github.com/d2cx/foundations-backend/models"
	"github.com/d2cx/foundations-backend/repository"
	"github.com/d2cx/foundations-backend/utils"
)

const retryBatchSize = 20

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	store := repository.NewContactStore(db)
	notifier := utils.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom, cfg.AdminEmail)

	ctx := context.Background()

	contacts, err := store.ListUnsent(ctx, retryBatchSize)
	if err != nil {
		log.Fatal("Failed to list contacts:", err)
	}
	if len(contacts) == 0 {
		fmt.Println("No failed or pending emails found.")
		return
	}
	fmt.Printf("Found %d contact(s) to retry.\n", len(contacts))

	failures := 0
	for _, contact := range contacts {
		result := notifier.Notify("New Contact Query from "+contact.FirstName, &contact)

		status := models.EmailStatusSent
		retryCount := contact.RetryCount
		if result.OK {
			fmt.Printf("Email resent successfully for contact %d\n", contact.ID)
		} else {
			status = models.EmailStatusFailed
			retryCount++
			failures++
			fmt.Printf("Email failed again for contact %d: %s\n", contact.ID, result.Reason)
		}

		if err := store.UpdateEmailStatus(ctx, contact.ID, status, retryCount); err != nil {
			log.Printf("Failed to update contact %d: %v", contact.ID, err)
			failures++
		}
	}

	fmt.Println("Retry process completed.")
	if failures > 0 {
		os.Exit(1)
	}
}
