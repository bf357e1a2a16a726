package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d2cx/foundations-backend/config"
	"github.com/d2cx/foundations-backend/controllers"
	"github.com/d2cx/foundations-backend/utils"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(cfg *config.Config, paymentController *controllers.PaymentController, contactController *controllers.ContactController) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())
	router.Use(utils.CORSMiddleware(cfg.CORSOrigins))
	router.Use(utils.RateLimitMiddleware(cfg.RateLimitWindow, cfg.RateLimitMax))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "up"})
	})

	api := router.Group("/api")
	{
		api.POST("/contact", contactController.Submit)

		payments := api.Group("/payments")
		{
			payments.POST("/create-order", paymentController.CreateOrder)
			payments.POST("/webhook", paymentController.Webhook)
		}
	}

	return router
}
