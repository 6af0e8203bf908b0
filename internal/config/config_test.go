package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_HOST", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("ALLOWED_ROLES", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 0.4, cfg.MatchThreshold)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTTL)
	assert.False(t, cfg.JournalEnabled)
	assert.Len(t, cfg.CORSAllowedOrigins, 2)
	assert.Empty(t, cfg.AllowedRoles)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("RETAIL_API_TIMEOUT", "3s")
	t.Setenv("SESSION_IDLE_TTL", "not-a-duration")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("ALLOWED_ROLES", "retailer,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.JournalEnabled)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 3*time.Second, cfg.RetailAPITimeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, []string{"retailer"}, cfg.AllowedRoles)
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}
