package assistant

import (
	"fmt"
	"time"

	"develevate/internal/core"
)

// DefaultModel is the Gemini model the Study Buddy talks to.
const DefaultModel = "gemini-2.0-flash"

// Config contains configuration for the Gemini client.
type Config struct {
	// APIKey is the Gemini API key
	APIKey string

	// Model is the Gemini model identifier
	// Default: gemini-2.0-flash
	Model string

	// BaseURL overrides the Gemini endpoint; empty uses the SDK default
	BaseURL string

	// Timeout bounds a single generation request
	// Default: 60 seconds
	Timeout time.Duration
}

// ConfigFromCore extracts the Gemini settings from the application config.
func ConfigFromCore(cfg *core.Config) Config {
	return Config{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
	}
}

// Validate checks that required config fields are set.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("APIKey is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("Timeout must not be negative")
	}
	return nil
}

// SetDefaults fills in default values for optional fields.
func (c *Config) SetDefaults() {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Timeout == 0 {
		c.Timeout = 60 * time.Second
	}
}
