// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
)

// DefaultPort is the HTTP port used when none is configured.
const DefaultPort = 8080

// Config represents configuration that can be loaded from a JSON file.
// All fields are optional; missing values come from the environment or defaults.
type Config struct {
	// Server
	Port int `json:"port,omitempty"`

	// Collaborators
	DatabaseURL  string `json:"database_url,omitempty"`  // PostgreSQL connection URL
	RedisURL     string `json:"redis_url,omitempty"`     // Redis URL for the render cache and shared rate limits
	BackendURL   string `json:"backend_url,omitempty"`   // Base URL of the generation/upload backend
	BackendToken string `json:"backend_token,omitempty"` // Bearer token for the backend
	ChromePath   string `json:"chrome_path,omitempty"`   // Chrome binary used to print PDFs

	// Rendering
	Location          string `json:"location,omitempty"`            // Location appended to the contact line
	OmitObjective     bool   `json:"omit_objective,omitempty"`      // Drop the objective section
	PDFTimeoutSeconds int    `json:"pdf_timeout_seconds,omitempty"` // Upper bound on one PDF print
	CacheTTLMinutes   int    `json:"cache_ttl_minutes,omitempty"`   // Lifetime of cached renders

	// Bearer tokens
	Auth JWTConfig `json:"auth,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads the collaborator and token settings from environment variables.
func FromEnv() (Config, error) {
	cfg := Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		BackendURL:   os.Getenv("BACKEND_URL"),
		BackendToken: os.Getenv("BACKEND_TOKEN"),
		ChromePath:   os.Getenv("CHROME_PATH"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	auth, err := authFromEnv()
	if err != nil {
		return Config{}, err
	}
	cfg.Auth = auth
	return cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those depend on the
// command being run.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}
	if c.PDFTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'pdf_timeout_seconds' must be non-negative")
	}
	if c.CacheTTLMinutes < 0 {
		return fmt.Errorf("config error: 'cache_ttl_minutes' must be non-negative")
	}
	if c.Auth.ExpirationHours < 0 {
		return fmt.Errorf("config error: 'auth.expiration_hours' must be non-negative")
	}

	if c.BackendURL != "" {
		u, err := url.Parse(c.BackendURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config error: 'backend_url' is not an absolute URL: %s", c.BackendURL)
		}
	}

	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer a config file over the environment.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.BackendURL == "" {
		result.BackendURL = defaults.BackendURL
	}
	if result.BackendToken == "" {
		result.BackendToken = defaults.BackendToken
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.Location == "" {
		result.Location = defaults.Location
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Port == 0 {
		result.Port = DefaultPort
	}
	if result.PDFTimeoutSeconds == 0 {
		result.PDFTimeoutSeconds = defaults.PDFTimeoutSeconds
	}
	if result.CacheTTLMinutes == 0 {
		result.CacheTTLMinutes = defaults.CacheTTLMinutes
	}
	result.Auth = result.Auth.merge(defaults.Auth)

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
