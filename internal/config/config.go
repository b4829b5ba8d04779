// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	PageURL       string `json:"page_url,omitempty"`       // Tournament page to scan
	TableSelector string `json:"table_selector,omitempty"` // CSS selector of the registration table container

	// Endpoints
	RatingsAPIBase string `json:"ratings_api_base,omitempty"` // Ratings API host
	ProfileBase    string `json:"profile_base,omitempty"`     // Player-profile host

	// Output
	Output string `json:"output,omitempty"` // CSV output path

	// Behavior
	BatchSize  int  `json:"batch_size,omitempty"`  // Concurrent lookups per validation batch
	UseBrowser bool `json:"use_browser,omitempty"` // Use headless browser for JS-rendered pages
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information
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

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.BatchSize < 0 {
		return fmt.Errorf("config error: 'batch_size' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.PageURL == "" {
		result.PageURL = defaults.PageURL
	}
	if result.TableSelector == "" {
		result.TableSelector = defaults.TableSelector
	}
	if result.RatingsAPIBase == "" {
		result.RatingsAPIBase = defaults.RatingsAPIBase
	}
	if result.ProfileBase == "" {
		result.ProfileBase = defaults.ProfileBase
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}

	// Int fields: use default if zero
	if result.BatchSize == 0 {
		result.BatchSize = defaults.BatchSize
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
