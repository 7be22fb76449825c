package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppEnv          = "dev"
	defaultHTTPAddr        = ":8080"
	defaultLogLevel        = "info"
	defaultIDMaxAttempts   = "5"
	defaultSlotLockTTL     = "10s"
	defaultAMQPExchange    = "bookings"
	defaultShutdownTimeout = "10s"
)

type Config struct {
	AppEnv   string
	HTTPAddr string
	LogLevel string

	DatabaseURL string

	// IDMaxAttempts bounds booking id generation, first attempt included.
	IDMaxAttempts int

	// Redis slot guard; disabled when RedisAddr is empty.
	RedisAddr     string
	RedisPassword string
	SlotLockTTL   time.Duration

	// Booking events; disabled when AMQPURL is empty.
	AMQPURL      string
	AMQPExchange string

	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = defaultAppEnv
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel)))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.AMQPURL = strings.TrimSpace(os.Getenv("AMQP_URL"))
	cfg.AMQPExchange = strings.TrimSpace(getEnv("AMQP_EXCHANGE", defaultAMQPExchange))
	cfg.CORSAllowedOrigins = parseListEnv("CORS_ALLOWED_ORIGINS")

	var err error
	cfg.IDMaxAttempts, err = parseIntEnv("BOOKING_ID_MAX_ATTEMPTS", defaultIDMaxAttempts)
	if err != nil {
		return nil, err
	}

	cfg.SlotLockTTL, err = parseDurationEnv("SLOT_LOCK_TTL", defaultSlotLockTTL)
	if err != nil {
		return nil, err
	}

	cfg.ShutdownTimeout, err = parseDurationEnv("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProdLike() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.IDMaxAttempts <= 0 {
		return fmt.Errorf("BOOKING_ID_MAX_ATTEMPTS must be > 0")
	}
	if cfg.SlotLockTTL <= 0 {
		return fmt.Errorf("SLOT_LOCK_TTL must be > 0")
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0")
	}
	if cfg.AMQPURL != "" && cfg.AMQPExchange == "" {
		return fmt.Errorf("AMQP_EXCHANGE must not be empty when AMQP_URL is set")
	}

	if isProdLike(cfg.AppEnv) {
		lower := strings.ToLower(cfg.DatabaseURL)
		if !strings.HasPrefix(lower, "postgres://") && !strings.HasPrefix(lower, "postgresql://") {
			return fmt.Errorf("in prod/release DATABASE_URL must point to postgres")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

// parseListEnv splits a comma separated variable, e.g.
// CORS_ALLOWED_ORIGINS=https://app.com,https://admin.app.com
func parseListEnv(name string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(name), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
