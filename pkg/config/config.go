package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the travel assistant.
type Config struct {
	// API holds Gemini API settings
	API APIConfig `yaml:"api" json:"api"`

	// Retry configuration shared by all model calls
	Retry RetryConfig `yaml:"retry" json:"retry"`

	// RateLimit paces requests against the provider quota
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// APIConfig holds model-provider settings. The API key itself is never
// written to the config file; it is resolved through pkg/auth.
type APIConfig struct {
	Model          string `yaml:"model" json:"model"`
	AppName        string `yaml:"app_name" json:"app_name"`
	MaxOutputChars int    `yaml:"max_output_chars" json:"max_output_chars"`
}

// RetryConfig mirrors the knobs of the retry executor.
type RetryConfig struct {
	MaxAttempts       int           `yaml:"max_attempts" json:"max_attempts"`
	InitialDelay      time.Duration `yaml:"initial_delay" json:"initial_delay"`
	BackoffMultiplier float64       `yaml:"backoff_multiplier" json:"backoff_multiplier"`
	MaxDelay          time.Duration `yaml:"max_delay" json:"max_delay"`
	Jitter            float64       `yaml:"jitter" json:"jitter"`
}

// RateLimitConfig holds client-side pacing configuration.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" json:"requests_per_minute"`
	BurstSize         int `yaml:"burst_size" json:"burst_size"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults. The retry
// defaults match the reference rate-limit handling: up to 3 retries with a
// 60 second base delay doubling each time.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Model:          "gemini-2.5-flash",
			AppName:        "travel_assistant",
			MaxOutputChars: 0, // 0 means no truncation
		},
		Retry: RetryConfig{
			MaxAttempts:       4,
			InitialDelay:      60 * time.Second,
			BackoffMultiplier: 2.0,
			MaxDelay:          0, // 0 means no cap
			Jitter:            0,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 10,
			BurstSize:         3,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv overrides configuration from environment variables.
func (c *Config) LoadFromEnv() error {
	if model := os.Getenv("TRIPAGENT_MODEL"); model != "" {
		c.API.Model = model
	}
	if app := os.Getenv("TRIPAGENT_APP_NAME"); app != "" {
		c.API.AppName = app
	}
	if v := os.Getenv("TRIPAGENT_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TRIPAGENT_MAX_ATTEMPTS: %w", err)
		}
		c.Retry.MaxAttempts = n
	}
	if v := os.Getenv("TRIPAGENT_INITIAL_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TRIPAGENT_INITIAL_DELAY: %w", err)
		}
		c.Retry.InitialDelay = d
	}
	if v := os.Getenv("TRIPAGENT_BACKOFF_MULTIPLIER"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid TRIPAGENT_BACKOFF_MULTIPLIER: %w", err)
		}
		c.Retry.BackoffMultiplier = f
	}
	if v := os.Getenv("TRIPAGENT_JITTER"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid TRIPAGENT_JITTER: %w", err)
		}
		c.Retry.Jitter = f
	}
	if v := os.Getenv("TRIPAGENT_REQUESTS_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TRIPAGENT_REQUESTS_PER_MINUTE: %w", err)
		}
		c.RateLimit.RequestsPerMinute = n
	}
	if level := os.Getenv("TRIPAGENT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if file := os.Getenv("TRIPAGENT_LOG_FILE"); file != "" {
		c.Logging.File = file
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file. An empty path searches
// the standard locations; a missing file is not an error.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for a config file in standard locations.
func (c *Config) findConfigFile() string {
	locations := []string{
		".tripagent.yaml",
		".tripagent.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "tripagent", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "tripagent", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".tripagent.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if c.API.Model == "" {
		errs = append(errs, errors.New("model name is required"))
	}

	if c.Retry.MaxAttempts < 1 {
		errs = append(errs, errors.New("retry max attempts must be at least 1"))
	}
	if c.Retry.InitialDelay < 0 {
		errs = append(errs, errors.New("retry initial delay cannot be negative"))
	}
	if c.Retry.BackoffMultiplier < 1 {
		errs = append(errs, errors.New("retry backoff multiplier must be at least 1"))
	}
	if c.Retry.MaxDelay < 0 {
		errs = append(errs, errors.New("retry max delay cannot be negative"))
	}
	if c.Retry.Jitter < 0 {
		errs = append(errs, errors.New("retry jitter cannot be negative"))
	}

	if c.RateLimit.RequestsPerMinute <= 0 {
		errs = append(errs, errors.New("requests per minute must be positive"))
	}
	if c.RateLimit.BurstSize <= 0 {
		errs = append(errs, errors.New("burst size must be positive"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load assembles the final configuration: defaults, then the config file,
// then environment variables (including any .env file), then validation.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".tripagent.env"))

	cfg := DefaultConfig()

	if err := cfg.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}
