package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/furnico")
	t.Setenv("JWT_SECRET", "s3cret")
	for _, k := range []string{"HTTP_ADDR", "ACCESS_TTL", "REFRESH_TTL", "OTP_TTL", "REFRESH_SECRET", "ELASTIC_INDEX", "PAYMENT_CURRENCY", "COOKIE_SECURE", "KAFKA_BROKERS"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, 10*time.Minute, cfg.OTPTTL)
	assert.Equal(t, []byte("s3cret"), cfg.RefreshSecret)
	assert.Equal(t, "products", cfg.ElasticIndex)
	assert.Equal(t, "INR", cfg.PaymentCurrency)
	assert.True(t, cfg.CookieSecure)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/furnico")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("REFRESH_SECRET", "other")
	t.Setenv("ACCESS_TTL", "5m")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("ALLOWED_ORIGINS", "https://furnico.dev")
	t.Setenv("COOKIE_SECURE", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.AccessTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []string{"https://furnico.dev"}, cfg.AllowedOrigins)
	assert.Equal(t, []byte("other"), cfg.RefreshSecret)
	assert.False(t, cfg.CookieSecure)
}
