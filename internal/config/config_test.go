package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := FromViper(New())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10, cfg.OrdersPageSize)
	assert.Equal(t, "sqlite", cfg.Backend.DBDriver)
	assert.True(t, cfg.InsecureSecret())
	assert.Empty(t, cfg.ServiceAdmin())
}

func TestServiceModeIsExplicit(t *testing.T) {
	t.Setenv("API_TOKEN", "svc-token")

	cfg, err := FromViper(New())
	require.NoError(t, err)
	assert.Empty(t, cfg.ServiceAdmin(), "a token alone must not open the admin pages")

	t.Setenv("ADMIN_SERVICE_MODE", "true")
	cfg, err = FromViper(New())
	require.NoError(t, err)
	assert.Equal(t, "service", cfg.ServiceAdmin())
}

func TestServiceModeNeedsToken(t *testing.T) {
	t.Setenv("ADMIN_SERVICE_MODE", "true")

	_, err := FromViper(New())
	assert.ErrorContains(t, err, "ADMIN_SERVICE_MODE needs API_TOKEN")
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com/v1/")
	t.Setenv("ORDERS_PAGE_SIZE", "25")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123")
	t.Setenv("BACKEND_SEED", "5")

	cfg, err := FromViper(New())
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/v1", cfg.APIBaseURL)
	assert.Equal(t, 25, cfg.OrdersPageSize)
	assert.True(t, cfg.CookieSecure)
	assert.False(t, cfg.InsecureSecret())
	assert.Equal(t, 5, cfg.Backend.Seed)
}

func TestValidate(t *testing.T) {
	t.Setenv("API_BASE_URL", "/relative")
	t.Setenv("ORDERS_PAGE_SIZE", "0")
	t.Setenv("SESSION_SECRET", "short")

	_, err := FromViper(New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_BASE_URL")
	assert.Contains(t, err.Error(), "ORDERS_PAGE_SIZE")
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}
