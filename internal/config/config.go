// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Rewriting
	APIKey string `json:"api_key,omitempty"` // Gemini API key; rewriting is disabled when empty

	// Export
	ChromePath string `json:"chrome_path,omitempty"` // Path to the Chrome binary for PDF export

	// Sessions
	SessionTTL string `json:"session_ttl,omitempty"` // Idle session lifetime, e.g. "4h"

	// Rendering
	Template string `json:"template,omitempty"` // Default layout variant ("modern" or "creative")

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.SessionTTL != "" {
		ttl, err := time.ParseDuration(c.SessionTTL)
		if err != nil {
			return fmt.Errorf("config error: 'session_ttl' is not a valid duration: %w", err)
		}
		if ttl <= 0 {
			return fmt.Errorf("config error: 'session_ttl' must be positive")
		}
	}

	if c.Template != "" && c.Template != "modern" && c.Template != "creative" {
		return fmt.Errorf("config error: 'template' must be \"modern\" or \"creative\"")
	}

	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}

	return nil
}

// SessionTTLDuration returns the parsed session TTL, or fallback when unset.
func (c *Config) SessionTTLDuration(fallback time.Duration) time.Duration {
	if c.SessionTTL == "" {
		return fallback
	}
	ttl, err := time.ParseDuration(c.SessionTTL)
	if err != nil || ttl <= 0 {
		return fallback
	}
	return ttl
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.SessionTTL == "" {
		result.SessionTTL = defaults.SessionTTL
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}
