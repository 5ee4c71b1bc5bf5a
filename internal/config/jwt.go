package config

import (
	"fmt"
	"os"
	"strconv"
)

// DefaultTokenHours is the lifetime of development tokens when none is configured.
const DefaultTokenHours = 24

// JWTConfig holds settings for verifying bearer tokens issued by the identity
// provider, and for minting development tokens. The secret is read only from
// JWT_SECRET and never from a config file.
type JWTConfig struct {
	Secret          string `json:"-"`
	Issuer          string `json:"issuer,omitempty"` // expected "iss" claim; empty accepts any issuer
	ExpirationHours int    `json:"expiration_hours,omitempty"`
}

// authFromEnv reads JWT_SECRET, JWT_ISSUER, and JWT_EXPIRATION_HOURS.
func authFromEnv() (JWTConfig, error) {
	auth := JWTConfig{
		Secret: os.Getenv("JWT_SECRET"),
		Issuer: os.Getenv("JWT_ISSUER"),
	}
	if raw := os.Getenv("JWT_EXPIRATION_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			return JWTConfig{}, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %w", err)
		}
		if hours < 1 {
			return JWTConfig{}, fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", hours)
		}
		auth.ExpirationHours = hours
	}
	return auth, nil
}

func (a JWTConfig) merge(defaults JWTConfig) JWTConfig {
	if a.Secret == "" {
		a.Secret = defaults.Secret
	}
	if a.Issuer == "" {
		a.Issuer = defaults.Issuer
	}
	if a.ExpirationHours == 0 {
		a.ExpirationHours = defaults.ExpirationHours
	}
	return a
}

// Tokens returns the settings needed to verify and mint bearer tokens.
// Commands that never touch tokens do not need a secret, so it is only
// required here.
func (c *Config) Tokens() (*JWTConfig, error) {
	auth := c.Auth
	if auth.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}
	if auth.ExpirationHours == 0 {
		auth.ExpirationHours = DefaultTokenHours
	}
	return &auth, nil
}
