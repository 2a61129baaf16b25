package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"ENV", "PORT", "JWT_SECRET", "REDIS_URL", "IDEMPOTENCY_TTL", "KAFKA_BROKERS", "CORS_ALLOWED_ORIGINS", "PUBLIC_BASE_URL"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.WhatsAppEnabled())
	require.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("IDEMPOTENCY_TTL", "90m")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example.com")
	t.Setenv("PUBLIC_BASE_URL", "https://order.example.com/")
	t.Setenv("WHATSAPP_ACCESS_TOKEN", "token")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "12345")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 90*time.Minute, cfg.IdempotencyTTL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []string{"https://shop.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "https://order.example.com", cfg.PublicBaseURL)
	assert.True(t, cfg.WhatsAppEnabled())
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("IDEMPOTENCY_TTL", "forever")

	assert.Equal(t, 24*time.Hour, Load().IdempotencyTTL)
}

func TestValidate(t *testing.T) {
	base := Config{Env: "production", DatabaseURL: "postgres://x", JWTSecret: "s3cret", IdempotencyTTL: time.Hour}

	t.Run("ok", func(t *testing.T) {
		cfg := base
		assert.NoError(t, cfg.Validate())
	})
	t.Run("dev secret in production", func(t *testing.T) {
		cfg := base
		cfg.JWTSecret = devJWTSecret
		assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")
	})
	t.Run("dev secret in development", func(t *testing.T) {
		cfg := base
		cfg.Env = "development"
		cfg.JWTSecret = devJWTSecret
		assert.NoError(t, cfg.Validate())
	})
	t.Run("half configured whatsapp", func(t *testing.T) {
		cfg := base
		cfg.WhatsAppAccessToken = "token"
		assert.ErrorContains(t, cfg.Validate(), "WHATSAPP")
	})
}
