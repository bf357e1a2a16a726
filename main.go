package main

import (
	"log"

	"github.com/d2cx/foundations-backend/config"
	"github.com/d2cx/foundations-backend/controllers"
	"github.com/d2cx/foundations-backend/gateway"
	"github.com/d2cx/foundations-backend/repository"
	"github.com/d2cx/foundations-backend/routes"
	"github.com/d2cx/foundations-backend/services"
	"github.com/d2cx/foundations-backend/utils"
)

func main() {
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	if err := cfg.ValidatePayments(); err != nil {
		utils.LogError("Invalid config: %v", err)
		log.Fatal("Invalid config:", err)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		utils.LogError("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database:", err)
	}

	paymentStore := repository.NewPaymentStore(db)
	contactStore := repository.NewContactStore(db)

	rzpGateway := gateway.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	notifier := utils.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom, cfg.AdminEmail)

	paymentService := services.NewPaymentService(paymentStore, rzpGateway, cfg.RazorpayKeyID, cfg.RazorpayWebhookSecret, cfg.Currency)
	contactService := services.NewContactService(contactStore, notifier)

	router := routes.SetupRouter(cfg,
		controllers.NewPaymentController(paymentService),
		controllers.NewContactController(contactService),
	)

	utils.LogInfo("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
