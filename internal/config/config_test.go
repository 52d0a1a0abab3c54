package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-itinerary/internal/config"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "LOG_LEVEL", "CORS_ORIGINS", "API_BASE_URL", "DATABASE_URL",
		"UNSPLASH_ACCESS_KEY", "UNSPLASH_URL", "OPENWEATHER_API_KEY", "OPENWEATHER_URL",
		"SESSION_TTL", "HTTP_TIMEOUT", "MAX_BODY_BYTES", "COOKIE_SECURE",
	} {
		t.Setenv(k, "")
	}
}

// TestLoad_defaults verifies that optional env vars fall back to their defaults
// when only the required API_BASE_URL is provided.
func TestLoad_defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_BASE_URL", "http://127.0.0.1:8000")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "http://127.0.0.1:8000", cfg.APIBaseURL)
	require.Empty(t, cfg.DatabaseURL)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	require.Equal(t, "https://api.unsplash.com", cfg.UnsplashURL)
	require.Equal(t, "https://api.openweathermap.org", cfg.OpenWeatherURL)
	require.Equal(t, 168*time.Hour, cfg.SessionTTL)
	require.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	require.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	require.False(t, cfg.SecureCookies)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_BASE_URL", "https://trips.example.com")
	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/web")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("UNSPLASH_ACCESS_KEY", "u-key")
	t.Setenv("OPENWEATHER_API_KEY", "w-key")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("MAX_BODY_BYTES", "2048")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "postgres://user:pass@db:5432/web", cfg.DatabaseURL)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, "u-key", cfg.UnsplashAccessKey)
	require.Equal(t, "w-key", cfg.OpenWeatherAPIKey)
	require.Equal(t, 2*time.Hour, cfg.SessionTTL)
	require.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	require.Equal(t, int64(2048), cfg.MaxBodyBytes)
	require.True(t, cfg.SecureCookies)
}

// TestLoad_missingRequired verifies that the error names API_BASE_URL when unset.
func TestLoad_missingRequired(t *testing.T) {
	clearEnv(t)

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "API_BASE_URL")
}

func TestLoad_invalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_BASE_URL", "http://127.0.0.1:8000")
	t.Setenv("SESSION_TTL", "forever")
	t.Setenv("MAX_BODY_BYTES", "-1")
	t.Setenv("COOKIE_SECURE", "sometimes")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "SESSION_TTL")
	require.ErrorContains(t, err, "MAX_BODY_BYTES")
	require.ErrorContains(t, err, "COOKIE_SECURE")
}
