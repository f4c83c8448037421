package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.NotEmpty(t, cfg.MySQLDSN)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Contains(t, cfg.AllowedOrigins, "http://localhost:5173")
	assert.Contains(t, cfg.AllowedOrigins, "http://localhost:3000")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "override")
	t.Setenv("ALLOWED_ORIGINS", "https://verity.example, https://staging.verity.example")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "override", cfg.JWTSecret)
	assert.Contains(t, cfg.AllowedOrigins, "https://verity.example")
	assert.Contains(t, cfg.AllowedOrigins, "https://staging.verity.example")
}
