// Package config provides the environment-driven configuration for the
// Digital Identity Hub client: the backend base URL and the relying-party
// values presented during passkey ceremonies.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Environment variable names read at startup.
const (
	EnvAPIBaseURL = "API_BASE_URL"
	EnvRPID       = "RP_ID"
	EnvRPName     = "RP_NAME"
)

// DefaultRPName is the relying-party display name used when RP_NAME is unset.
const DefaultRPName = "Digital Identity Hub"

// Config holds the configuration values for the application. It is populated
// once at startup and never mutated afterwards.
type Config struct {
	apiBaseURL string
	rpID       string
	rpName     string
}

// Load reads configuration from the environment, loading a .env file first
// if one is present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		apiBaseURL: os.Getenv(EnvAPIBaseURL),
		rpID:       os.Getenv(EnvRPID),
		rpName:     os.Getenv(EnvRPName),
	}
}

// Validate checks the required API base URL and warns about missing
// optional relying-party values. Missing optional values are never an error.
func (c *Config) Validate(log *zap.Logger) error {
	if c.rpID == "" {
		log.Warn("RP_ID is not set; relying party id will be empty")
	}
	if c.rpName == "" {
		log.Warn("RP_NAME is not set; using default",
			zap.String("default", DefaultRPName))
	}
	if c.apiBaseURL == "" {
		log.Error("API_BASE_URL is not set")
		return fmt.Errorf("configuration: required %s is not set", EnvAPIBaseURL)
	}
	return nil
}

// APIBaseURL returns the backend base URL. The presence check is repeated
// here so a caller that skips Validate still gets a descriptive error
// instead of an empty URL leaking into a request.
func (c *Config) APIBaseURL() (string, error) {
	if c.apiBaseURL == "" {
		return "", fmt.Errorf("configuration: required %s is not set", EnvAPIBaseURL)
	}
	return c.apiBaseURL, nil
}

// RPID returns the relying-party id, or an empty string when unset.
func (c *Config) RPID() string { return c.rpID }

// RPName returns the relying-party display name, or DefaultRPName when unset.
func (c *Config) RPName() string {
	if c.rpName == "" {
		return DefaultRPName
	}
	return c.rpName
}

// Initialize validates the configuration and logs the effective values.
// It returns whether validation succeeded; callers decide whether a failure
// halts startup.
func (c *Config) Initialize(log *zap.Logger) bool {
	if err := c.Validate(log); err != nil {
		log.Error("configuration validation failed", zap.Error(err))
		return false
	}

	baseURL, _ := c.APIBaseURL()
	log.Info("configuration loaded",
		zap.String("api_base_url", baseURL),
		zap.String("rp_id", c.RPID()),
		zap.String("rp_name", c.RPName()),
	)
	return true
}
