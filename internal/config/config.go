package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// minSigningKeyBytes is the minimum key material for the HS256 signing key:
// 256 bits. Enforced once at startup, never per request.
const minSigningKeyBytes = 32

type Config struct {
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	RequestTimeout     time.Duration
	DatabaseURL        string
	DBMaxConns         int32
	DBMinConns         int32
	JWTSecret          string
	JWTSigningKey      []byte
	JWTTTL             time.Duration
	CORSOrigins        []string
	RateLimitRPM       int
	AuthRateLimitRPM   int
	ReminderCron       string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		ServerReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		ServerWriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerIdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:     getDuration("REQUEST_TIMEOUT", 30*time.Second),
		DatabaseURL:        getEnv("DATABASE_URL", "postgres://localhost:5432/house_admin"),
		DBMaxConns:         int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:         int32(getInt("DB_MIN_CONNS", 2)),
		JWTSecret:          strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTTTL:             time.Duration(getInt("JWT_TTL_SECONDS", 3600)) * time.Second,
		CORSOrigins:        splitCSV(getEnv("CORS_ORIGINS", "*")),
		RateLimitRPM:       getInt("RATE_LIMIT_RPM", 100),
		AuthRateLimitRPM:   getInt("AUTH_RATE_LIMIT_RPM", 10),
		ReminderCron:       getEnv("REMINDER_CRON", "0 8 * * *"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	key, err := deriveSigningKey(c.JWTSecret)
	if err != nil {
		return err
	}
	c.JWTSigningKey = key

	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL cannot be empty")
	}

	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL_SECONDS must be positive")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	if strings.TrimSpace(c.ReminderCron) == "" {
		return fmt.Errorf("REMINDER_CRON cannot be empty")
	}

	return nil
}

// deriveSigningKey turns the configured secret into HS256 key material.
// Base64-encoded secrets are decoded first; anything else is used as raw
// bytes. Less than 256 bits of material refuses startup.
func deriveSigningKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	key := []byte(secret)
	if decoded, err := base64.StdEncoding.DecodeString(secret); err == nil {
		key = decoded
	}

	if len(key) < minSigningKeyBytes {
		return nil, fmt.Errorf("JWT_SECRET must provide at least %d bytes of key material, got %d", minSigningKeyBytes, len(key))
	}

	return key, nil
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}
