package core

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Storage backends understood by the bootstrap package.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config holds the application configuration.
type Config struct {
	LogLevel         string `yaml:"log_level"`          // debug, info, warn, error
	GeminiAPIKey     string `yaml:"gemini_api_key"`     // Required for chat
	GeminiModel      string `yaml:"gemini_model"`       // Model used by the chatbot
	GeminiBaseURL    string `yaml:"gemini_base_url"`    // Empty uses the SDK default
	DataDir          string `yaml:"data_dir"`           // Where durable slots live
	Storage          string `yaml:"storage"`            // file, sqlite, memory
	ChatHistoryLimit int    `yaml:"chat_history_limit"` // 0 keeps every message
	NewsLimit        int    `yaml:"news_limit"`         // 0 keeps every item
	StrictGoals      bool   `yaml:"strict_goals"`       // Ignore completion of unknown goals
	DemoPassword     string `yaml:"demo_password"`      // Mock credential, not a secret
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:         "info",
		GeminiModel:      "gemini-2.0-flash",
		DataDir:          ".develevate",
		Storage:          StorageFile,
		ChatHistoryLimit: 200,
		NewsLimit:        50,
		DemoPassword:     "password123",
	}
}

// LoadConfig loads configuration from an optional YAML file named by
// DEVELEVATE_CONFIG, then applies environment variable overrides.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv("DEVELEVATE_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return &ValidationError{Field: "config", Message: "invalid YAML in " + path, Err: err}
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)

	// DEBUG flag overrides log level
	if os.Getenv("DEBUG") == "1" {
		c.LogLevel = "debug"
	}

	c.GeminiAPIKey = getEnvOrDefault("GEMINI_API_KEY", getEnvOrDefault("VITE_GEMINI_API_KEY", c.GeminiAPIKey))
	c.GeminiModel = getEnvOrDefault("GEMINI_MODEL", c.GeminiModel)
	c.GeminiBaseURL = getEnvOrDefault("GEMINI_BASE_URL", c.GeminiBaseURL)
	c.DataDir = getEnvOrDefault("DEVELEVATE_DATA_DIR", c.DataDir)
	c.Storage = strings.ToLower(getEnvOrDefault("DEVELEVATE_STORAGE", c.Storage))
	c.DemoPassword = getEnvOrDefault("DEVELEVATE_DEMO_PASSWORD", c.DemoPassword)

	var err error
	if c.ChatHistoryLimit, err = getEnvInt("DEVELEVATE_CHAT_HISTORY_LIMIT", c.ChatHistoryLimit); err != nil {
		return err
	}
	if c.NewsLimit, err = getEnvInt("DEVELEVATE_NEWS_LIMIT", c.NewsLimit); err != nil {
		return err
	}
	if v := os.Getenv("DEVELEVATE_STRICT_GOALS"); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return &ValidationError{Field: "DEVELEVATE_STRICT_GOALS", Message: "must be a boolean", Err: err}
		}
		c.StrictGoals = strict
	}

	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageFile, StorageSQLite, StorageMemory:
	default:
		return &ValidationError{Field: "storage", Message: fmt.Sprintf("unknown backend %q", c.Storage)}
	}

	if c.Storage != StorageMemory && c.DataDir == "" {
		return &ValidationError{Field: "data_dir", Message: "required for persistent storage"}
	}
	if c.ChatHistoryLimit < 0 {
		return &ValidationError{Field: "chat_history_limit", Message: "must not be negative"}
	}
	if c.NewsLimit < 0 {
		return &ValidationError{Field: "news_limit", Message: "must not be negative"}
	}

	return nil
}

// getEnvOrDefault returns the value of an environment variable or a default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &ValidationError{Field: key, Message: "must be an integer", Err: err}
	}
	return n, nil
}
