// Package config loads gitlab-ops settings and resolves GitLab credentials.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/edgarhsanchez/gitlab-ops/internal/logging"
)

// Config represents the main configuration
type Config struct {
	Version string          `yaml:"version"`
	GitLab  *GitLabConfig   `yaml:"gitlab"`
	Logging *logging.Config `yaml:"logging"`
	Browser *BrowserConfig  `yaml:"browser"`
}

// GitLabConfig holds GitLab API settings. Token and Host are usually left
// empty here and resolved from the environment or .env instead.
type GitLabConfig struct {
	Host     string `yaml:"host"`
	Token    string `yaml:"token"`
	PageSize int    `yaml:"page_size"`
}

// BrowserConfig holds terminal browser settings.
type BrowserConfig struct {
	ShowDetails bool `yaml:"show_details"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		GitLab: &GitLabConfig{
			Host:     "gitlab.com",
			PageSize: 100,
		},
		Logging: logging.DefaultConfig(),
		Browser: &BrowserConfig{
			ShowDetails: true,
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".gitlab-ops", "config.yaml")
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil // Return defaults if no config file
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.GitLab == nil {
		config.GitLab = DefaultConfig().GitLab
	}
	if config.GitLab.PageSize <= 0 {
		config.GitLab.PageSize = 100
	}
	config.GitLab.Host = strings.TrimSpace(config.GitLab.Host)

	return config, nil
}

// Save saves configuration to a file
func Save(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
