package config

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSigningKey(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty secret", func(t *testing.T) {
		_, err := deriveSigningKey("")
		require.Error(t, err)
	})

	t.Run("rejects short raw secret", func(t *testing.T) {
		_, err := deriveSigningKey("too-short")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "key material")
	})

	t.Run("accepts raw secret with 32+ bytes", func(t *testing.T) {
		// Not valid base64 (contains '-'), so it is taken as raw bytes.
		secret := strings.Repeat("a-", 20)
		key, err := deriveSigningKey(secret)
		require.NoError(t, err)
		assert.Equal(t, []byte(secret), key)
	})

	t.Run("decodes base64 secrets before measuring", func(t *testing.T) {
		material := []byte(strings.Repeat("k", 48))
		key, err := deriveSigningKey(base64.StdEncoding.EncodeToString(material))
		require.NoError(t, err)
		assert.Equal(t, material, key)
	})

	t.Run("rejects base64 secret with short decoded material", func(t *testing.T) {
		// 32 base64 characters decode to 24 bytes, below the 256-bit floor.
		_, err := deriveSigningKey(base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", 24))))
		require.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		return &Config{
			ServerPort:     "8080",
			DatabaseURL:    "postgres://localhost/house_admin",
			JWTSecret:      strings.Repeat("a-", 20),
			JWTTTL:         time.Hour,
			RequestTimeout: 30 * time.Second,
			ReminderCron:   "0 8 * * *",
		}
	}

	t.Run("valid config passes and derives key", func(t *testing.T) {
		cfg := valid()
		require.NoError(t, cfg.Validate())
		assert.Len(t, cfg.JWTSigningKey, 40)
	})

	t.Run("missing secret is fatal", func(t *testing.T) {
		cfg := valid()
		cfg.JWTSecret = ""
		require.Error(t, cfg.Validate())
	})

	t.Run("non positive ttl is fatal", func(t *testing.T) {
		cfg := valid()
		cfg.JWTTTL = 0
		require.Error(t, cfg.Validate())
	})
}
