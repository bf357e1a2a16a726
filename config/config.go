package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayWebhookSecret string
	Currency              string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string
	AdminEmail   string

	CORSOrigins     []string
	RateLimitWindow time.Duration
	RateLimitMax    int

	Port string
	Env  string
}

// LoadConfig loads configuration from environment variables. A .env file is
// read when present; in deployed environments the variables come from the
// process environment directly.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		RazorpayKeyID:         os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret:     os.Getenv("RAZORPAY_KEY_SECRET"),
		RazorpayWebhookSecret: os.Getenv("RAZORPAY_WEBHOOK_SECRET"),
		Currency:              getEnv("CURRENCY", "INR"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASS"),
		EmailFrom:    os.Getenv("EMAIL_FROM"),
		AdminEmail:   os.Getenv("ADMIN_EMAIL"),

		RateLimitWindow: time.Duration(getEnvInt("RATE_LIMIT_WINDOW", 60000)) * time.Millisecond,
		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 20),

		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				config.CORSOrigins = append(config.CORSOrigins, origin)
			}
		}
	}

	return config, nil
}

// ValidatePayments checks the configuration the payment surface cannot run
// without. The webhook secret is deliberately not checked here: when it is
// missing, signature verification fails closed instead of the server
// refusing to boot.
func (c *Config) ValidatePayments() error {
	if c.RazorpayKeyID == "" || c.RazorpayKeySecret == "" {
		return fmt.Errorf("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET must be set")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
