package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the process needs up front. The session
// secret and database DSN are required; everything else has a default
// or degrades to a disabled integration.
type Config struct {
	HTTPAddr    string
	BaseURL     string
	DatabaseURL string
	RedisAddr   string

	SessionSecret string
	SessionTTL    time.Duration

	UploadDir string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	MailFrom string
	OpsEmail string

	PayPalBaseURL  string
	PayPalClientID string
	PayPalSecret   string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string
}

var (
	ErrMissingSecret      = errors.New("config: SESSION_SECRET is empty")
	ErrMissingDatabaseURL = errors.New("config: DATABASE_URL is empty")
)

// Load reads .env (if present) and the environment. Missing critical
// secrets are a startup failure, never a request-time condition.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		BaseURL:     getenv("APP_URL", "http://localhost:8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),

		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    24 * time.Hour,

		UploadDir: getenv("UPLOAD_DIR", "uploads"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: getenv("SMTP_PORT", "587"),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		MailFrom: getenv("MAIL_FROM", "support@tutorhub.local"),
		OpsEmail: getenv("OPS_EMAIL", "ops@tutorhub.local"),

		PayPalBaseURL:  getenv("PAYPAL_BASE_URL", "https://api.sandbox.paypal.com"),
		PayPalClientID: os.Getenv("PAYPAL_CLIENT_ID"),
		PayPalSecret:   os.Getenv("PAYPAL_SECRET"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleCallbackURL:  os.Getenv("GOOGLE_CALLBACK_URL"),
	}

	if cfg.SessionSecret == "" {
		return nil, ErrMissingSecret
	}
	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
