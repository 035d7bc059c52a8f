package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"squareinvoice/internal/domain"
)

const (
	defaultHTTPAddr      = ":8080"
	defaultEnvironment   = "sandbox"
	defaultSquareTimeout = "15s"
	defaultJWTTTL        = "12h"
	defaultSquareVersion = "2025-01-23"
	sandboxBaseURL       = "https://connect.squareupsandbox.com"
	productionBaseURL    = "https://connect.squareup.com"
)

// Square holds the gateway settings read from the environment. The handlers
// receive them through this struct instead of reading ambient state.
type Square struct {
	AccessToken string
	LocationID  string
	Environment domain.Environment
	Version     string
	Timeout     time.Duration

	// BaseURLOverride points the client at a non-Square host, used by tests.
	BaseURLOverride string
}

// BaseURL selects the API host for the configured environment.
func (s Square) BaseURL() string {
	if s.BaseURLOverride != "" {
		return s.BaseURLOverride
	}
	if s.Environment == domain.EnvProduction {
		return productionBaseURL
	}
	return sandboxBaseURL
}

type Config struct {
	HTTPAddr    string
	DatabaseURL string
	Square      Square

	AdminPasswordHash string
	JWTSecret         string
	JWTTTL            time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:    getEnv("HTTP_ADDR", defaultHTTPAddr),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Square: Square{
			AccessToken:     strings.TrimSpace(os.Getenv("SQUARE_ACCESS_TOKEN")),
			LocationID:      strings.TrimSpace(os.Getenv("SQUARE_LOCATION_ID")),
			Environment:     domain.Environment(strings.ToLower(getEnv("SQUARE_ENVIRONMENT", defaultEnvironment))),
			Version:         getEnv("SQUARE_VERSION", defaultSquareVersion),
			BaseURLOverride: strings.TrimSpace(os.Getenv("SQUARE_BASE_URL")),
		},
		AdminPasswordHash: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH")),
		JWTSecret:         strings.TrimSpace(os.Getenv("JWT_SECRET")),
	}

	var err error
	cfg.Square.Timeout, err = parseDurationEnv("SQUARE_HTTP_TIMEOUT", defaultSquareTimeout)
	if err != nil {
		return nil, err
	}
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.Square.Environment != domain.EnvSandbox && cfg.Square.Environment != domain.EnvProduction {
		return fmt.Errorf("SQUARE_ENVIRONMENT must be one of: sandbox, production")
	}
	if cfg.Square.Timeout <= 0 {
		return fmt.Errorf("SQUARE_HTTP_TIMEOUT must be > 0")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	return nil
}

func getEnv(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(name, def string) (time.Duration, error) {
	raw := getEnv(name, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", name, raw, err)
	}
	return d, nil
}
