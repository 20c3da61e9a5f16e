package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds everything the service reads from the environment.
// Secrets (database password, Stripe key, SMTP credentials) are never
// defaulted; missing required values fail startup.
type Config struct {
	ServiceName string
	Port        string

	DBUser string
	DBPass string
	DBHost string
	DBPort string
	DBName string
	DBSSL  string

	RedisAddr string
	RedisPass string

	StripeKey        string
	CheckoutEnabled  bool
	SuccessURL       string
	CancelURL        string
	AllowedCountries []string

	KafkaBrokers []string

	ConsulAddress string

	SMTPHost         string
	SMTPPort         string
	SMTPUser         string
	SMTPPass         string
	EmailFrom        string
	ContactRecipient string
}

// Load reads the service configuration from environment variables.
func Load() (Config, error) {
	cfg := Config{
		ServiceName: getEnv("SERVICE_NAME", "store-service"),
		Port:        getEnv("APP_PORT", "8080"),

		DBUser: os.Getenv("POSTGRES_USER"),
		DBPass: os.Getenv("POSTGRES_PASSWORD"),
		DBHost: getEnv("POSTGRES_HOST", "localhost"),
		DBPort: getEnv("POSTGRES_PORT", "5432"),
		DBName: getEnv("POSTGRES_DB", "store"),
		DBSSL:  getEnv("POSTGRES_SSLMODE", "disable"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		StripeKey:        os.Getenv("STRIPE_TEST_KEY"),
		SuccessURL:       getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:3000/store/success"),
		CancelURL:        getEnv("CHECKOUT_CANCEL_URL", "http://localhost:3000/store/cart"),
		AllowedCountries: splitList(getEnv("CHECKOUT_SHIPPING_COUNTRIES", "US,CA")),

		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),

		ConsulAddress: os.Getenv("CONSUL_ADDRESS"),

		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         getEnv("SMTP_PORT", "587"),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPass:         os.Getenv("SMTP_PASSWORD"),
		EmailFrom:        getEnv("EMAIL_FROM", "no-reply@example.com"),
		ContactRecipient: os.Getenv("CONTACT_RECIPIENT"),
	}

	enabled, err := strconv.ParseBool(getEnv("CHECKOUT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid CHECKOUT_ENABLED value: %w", err)
	}
	cfg.CheckoutEnabled = enabled

	if cfg.DBUser == "" || cfg.DBPass == "" {
		return Config{}, fmt.Errorf("POSTGRES_USER and POSTGRES_PASSWORD must be set")
	}

	return cfg, nil
}

// ConnString builds the postgres connection string for the configured database.
func (c Config) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName, c.DBSSL)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
