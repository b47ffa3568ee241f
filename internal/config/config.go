package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"skylane/concourse/internal/logging"
)

// Config holds all runtime configuration. Every field maps to one
// environment variable; a .env file is honored when present.
type Config struct {
	AppEnv string
	Port   string

	DatabaseURL string

	RedisHost     string
	RedisPort     string
	RedisPassword string

	JWTSecret string

	HoldTTL             time.Duration // hold_ttl_seconds, default 900
	SimulatorPeriod     time.Duration // simulator_period_seconds, default 300
	ReaperPeriod        time.Duration // reaper_period_seconds, default 60
	PriceDriftTolerance float64       // price_drift_tolerance, default 0.01
	PaymentSuccessProb  float64       // payment_success_probability, default 1.0

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
}

// Load reads configuration from the environment. Only DATABASE_URL and
// JWT_SECRET are required; everything else has a default.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		logging.Info("Loaded configuration overrides from .env")
	}

	cfg := &Config{
		AppEnv:              envOr("APP_ENV", "development"),
		Port:                envOr("PORT", "8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		RedisHost:           envOr("REDIS_HOST", "localhost"),
		RedisPort:           envOr("REDIS_PORT", "6379"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		HoldTTL:             time.Duration(envIntOr("HOLD_TTL_SECONDS", 900)) * time.Second,
		SimulatorPeriod:     time.Duration(envIntOr("SIMULATOR_PERIOD_SECONDS", 300)) * time.Second,
		ReaperPeriod:        time.Duration(envIntOr("REAPER_PERIOD_SECONDS", 60)) * time.Second,
		PriceDriftTolerance: envFloatOr("PRICE_DRIFT_TOLERANCE", 0.01),
		PaymentSuccessProb:  envFloatOr("PAYMENT_SUCCESS_PROBABILITY", 1.0),
		SMTPHost:            os.Getenv("SMTP_HOST"),
		SMTPPort:            envIntOr("SMTP_PORT", 587),
		SMTPUser:            os.Getenv("SMTP_USER"),
		SMTPPass:            os.Getenv("SMTP_PASS"),
		MailFrom:            envOr("MAIL_FROM", "noreply@skylane.example"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("missing required env var: DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required env var: JWT_SECRET")
	}
	if cfg.PriceDriftTolerance < 0 {
		return nil, fmt.Errorf("PRICE_DRIFT_TOLERANCE must be >= 0")
	}
	if cfg.PaymentSuccessProb < 0 || cfg.PaymentSuccessProb > 1 {
		return nil, fmt.Errorf("PAYMENT_SUCCESS_PROBABILITY must be in [0,1]")
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logging.Warn("Invalid integer env var, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envFloatOr(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logging.Warn("Invalid float env var, using default", "key", key, "value", v, "default", def)
		return def
	}
	return f
}
