package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", strings.Repeat("s", 32))
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg := Load()

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, defaultDSN, cfg.DatabaseDSN)
	assert.Equal(t, "http://localhost:5173", cfg.CORSOrigins)
	assert.Len(t, cfg.JWTSecret, 32)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("BOTECO_TEST_KEY", "valor")

	assert.Equal(t, "valor", getEnv("BOTECO_TEST_KEY", "padrao"))
	assert.Equal(t, "padrao", getEnv("BOTECO_TEST_KEY_AUSENTE", "padrao"))
}
