package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 48*time.Hour, cfg.OfferTTL)
	assert.False(t, cfg.CPFAllowSandbox, "sandbox CPF fixtures must be off by default")
	assert.True(t, cfg.RedisEnabled)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("OFFER_TTL", "24h")
	t.Setenv("CPF_ALLOW_SANDBOX", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("OFFER_EXPIRY_ENABLED", "false")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 24*time.Hour, cfg.OfferTTL)
	assert.True(t, cfg.CPFAllowSandbox)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.False(t, cfg.ExpiryEnabled)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("OFFER_TTL", "not-a-duration")
	t.Setenv("REDIS_ENABLED", "not-a-bool")

	cfg := Load()

	assert.Equal(t, 48*time.Hour, cfg.OfferTTL)
	assert.True(t, cfg.RedisEnabled)
}
