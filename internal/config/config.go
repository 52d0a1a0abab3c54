// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the web server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of origins allowed to call the JSON endpoints.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// APIBaseURL is the root of the trips API, e.g. "http://127.0.0.1:8000". Required.
	APIBaseURL string

	// DatabaseURL is the Postgres connection string for the sessions store.
	// Optional: sessions are kept in memory when it is empty.
	DatabaseURL string

	// UnsplashAccessKey enables destination photos. Optional.
	UnsplashAccessKey string
	// UnsplashURL overrides the Unsplash API root. Defaults to the public API.
	UnsplashURL string

	// OpenWeatherAPIKey enables current weather. Optional.
	OpenWeatherAPIKey string
	// OpenWeatherURL overrides the OpenWeather API root. Defaults to the public API.
	OpenWeatherURL string

	// SessionTTL is how long a login stays valid. Defaults to 168h.
	SessionTTL time.Duration

	// HTTPTimeout bounds every outbound call to the trips API and the
	// enrichment services. Defaults to 10s.
	HTTPTimeout time.Duration

	// MaxBodyBytes caps incoming request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// SecureCookies marks the session cookie Secure. Enable behind HTTPS.
	SecureCookies bool
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set and any
// values that fail to parse.
func Load() (Config, error) {
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CORSOrigins:       splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		UnsplashAccessKey: os.Getenv("UNSPLASH_ACCESS_KEY"),
		UnsplashURL:       getEnv("UNSPLASH_URL", "https://api.unsplash.com"),
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		OpenWeatherURL:    getEnv("OPENWEATHER_URL", "https://api.openweathermap.org"),
	}

	var missing, invalid []string

	cfg.APIBaseURL = os.Getenv("API_BASE_URL")
	if cfg.APIBaseURL == "" {
		missing = append(missing, "API_BASE_URL")
	}

	var err error
	if cfg.SessionTTL, err = time.ParseDuration(getEnv("SESSION_TTL", "168h")); err != nil || cfg.SessionTTL <= 0 {
		invalid = append(invalid, "SESSION_TTL")
	}
	if cfg.HTTPTimeout, err = time.ParseDuration(getEnv("HTTP_TIMEOUT", "10s")); err != nil || cfg.HTTPTimeout <= 0 {
		invalid = append(invalid, "HTTP_TIMEOUT")
	}
	if cfg.MaxBodyBytes, err = strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64); err != nil || cfg.MaxBodyBytes <= 0 {
		invalid = append(invalid, "MAX_BODY_BYTES")
	}
	if cfg.SecureCookies, err = strconv.ParseBool(getEnv("COOKIE_SECURE", "false")); err != nil {
		invalid = append(invalid, "COOKIE_SECURE")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
