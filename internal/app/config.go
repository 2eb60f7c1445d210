// Package app provides application-level configuration and initialization.
package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/outboundly/outboundly/internal/model"
)

// Environment variables recognized on top of config.json.
const (
	envAPIBaseURL    = "OUTBOUNDLY_API_BASE_URL"
	envWebhookURL    = "OUTBOUNDLY_WEBHOOK_URL"
	envDesktopNotify = "OUTBOUNDLY_DESKTOP_NOTIFY"
	envDebug         = "OUTBOUNDLY_DEBUG"
)

// Config holds the application configuration.
type Config struct {
	// APIBaseURL is the backend base URL, including the /api/v1 prefix.
	APIBaseURL string `json:"api_base_url"`
	// RequestTimeoutSeconds bounds each backend round-trip.
	RequestTimeoutSeconds int `json:"request_timeout_seconds"`
	// Notifications configures the desktop/webhook notice mirror.
	Notifications model.NotificationConfig `json:"notifications"`
	// Debug enables verbose logging.
	Debug bool `json:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:            "http://localhost:8000/api/v1",
		RequestTimeoutSeconds: 30,
	}
}

// ConfigPath returns the path to the config file.
func ConfigPath(configDir string) string {
	return filepath.Join(configDir, "config.json")
}

// LoadConfig loads the configuration from disk, then applies .env and
// environment overrides. A missing file yields the defaults.
func LoadConfig(configDir string) (*Config, error) {
	// A .env beside the working directory is optional.
	_ = godotenv.Load()

	config := DefaultConfig()

	path := ConfigPath(configDir)
	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, config); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(config)

	if config.RequestTimeoutSeconds <= 0 {
		config.RequestTimeoutSeconds = DefaultConfig().RequestTimeoutSeconds
	}
	if config.APIBaseURL == "" {
		config.APIBaseURL = DefaultConfig().APIBaseURL
	}

	return config, nil
}

// SaveConfig saves the configuration to disk.
func SaveConfig(configDir string, config *Config) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigPath(configDir), data, 0644)
}

// RequestTimeout returns the per-request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func applyEnvOverrides(c *Config) {
	if v := os.Getenv(envAPIBaseURL); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv(envWebhookURL); v != "" {
		c.Notifications.WebhookURL = v
	}
	if v := os.Getenv(envDesktopNotify); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Notifications.Desktop = b
		}
	}
	if v := os.Getenv(envDebug); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
}
