package configs

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("NJANGI_TEST_SET", "value")
	t.Setenv("NJANGI_TEST_BLANK", "  ")

	assert.Equal(t, "value", GetEnv("NJANGI_TEST_SET", "def"))
	assert.Equal(t, "def", GetEnv("NJANGI_TEST_BLANK", "def"))
	assert.Equal(t, "def", GetEnv("NJANGI_TEST_UNSET", "def"))
	assert.Equal(t, "", GetEnv("NJANGI_TEST_UNSET"))
}

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "njangi")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_STATEMENT_TIMEOUT_MS", "1500")
	t.Setenv("REQUEST_TIMEOUT", "2s")
	t.Setenv("AUTH_DISABLED", "true")
	t.Setenv("RULES_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.AuthDisabled)
	assert.Equal(t, 1500*time.Millisecond, cfg.DBStatementTimeout)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "XAF", cfg.Rules.Currency)

	dsn := cfg.DSN()
	assert.True(t, strings.HasPrefix(dsn, "postgresql://app:secret@db:5432/njangi?"))
	assert.Contains(t, dsn, "statement_timeout=1500")
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)
}
