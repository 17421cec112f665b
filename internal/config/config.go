// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/expert-profile/internal/llm"
)

// Defaults
const (
	DefaultPort           = 5000
	DefaultRequestTimeout = 5 * time.Minute
	DefaultMaxBodyBytes   = 10 << 20
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "json"
)

// Config represents the service configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, environment variables or CLI flags.
type Config struct {
	// Server
	Port           int    `json:"port,omitempty"`
	RequestTimeout string `json:"request_timeout,omitempty"` // Go duration, e.g. "5m"
	MaxBodyBytes   int64  `json:"max_body_bytes,omitempty"`
	StaticDir      string `json:"static_dir,omitempty"` // Front-end files served at /

	// Model
	Provider            string `json:"provider,omitempty"`         // openai | gemini
	Model               string `json:"model,omitempty"`            // Overrides every tier
	ExtractionModel     string `json:"extraction_model,omitempty"` // Overrides the extraction step only
	ValidationModel     string `json:"validation_model,omitempty"` // Overrides the consistency check only
	OpenAIBaseURL       string `json:"openai_base_url,omitempty"`  // OpenAI-compatible endpoint root
	MaxCompletionTokens int    `json:"max_completion_tokens,omitempty"`

	// Logging
	LogLevel  string `json:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty"` // json | pretty

	// Rendering
	ChromePath   string   `json:"chrome_path,omitempty"`
	ContactLines []string `json:"contact_lines,omitempty"`

	Verbose bool `json:"verbose,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:                DefaultPort,
		RequestTimeout:      DefaultRequestTimeout.String(),
		MaxBodyBytes:        DefaultMaxBodyBytes,
		Provider:            string(llm.ProviderOpenAI),
		MaxCompletionTokens: llm.DefaultMaxOutputTokens,
		LogLevel:            DefaultLogLevel,
		LogFormat:           DefaultLogFormat,
	}
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

// Load reads the optional config file, then applies environment overrides
// and built-in defaults, in that order of precedence: env, file, defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// ApplyEnv overrides fields with the PORT, LLM_PROVIDER, LLM_MODEL, OPENAI_BASE_URL,
// LOG_LEVEL, LOG_FORMAT, CHROME_PATH and STATIC_DIR environment variables when set.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: PORT must be an integer: %w", err)
		}
		c.Port = port
	}

	overrides := []struct {
		key   string
		field *string
	}{
		{"LLM_PROVIDER", &c.Provider},
		{"LLM_MODEL", &c.Model},
		{"LLM_EXTRACTION_MODEL", &c.ExtractionModel},
		{"LLM_VALIDATION_MODEL", &c.ValidationModel},
		{"OPENAI_BASE_URL", &c.OpenAIBaseURL},
		{"LOG_LEVEL", &c.LogLevel},
		{"LOG_FORMAT", &c.LogFormat},
		{"CHROME_PATH", &c.ChromePath},
		{"STATIC_DIR", &c.StaticDir},
	}
	for _, o := range overrides {
		if v := strings.TrimSpace(os.Getenv(o.key)); v != "" {
			*o.field = v
		}
	}

	return nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are filled
// by MergeWithDefaults.
func (c *Config) Validate() error {
	// Validate numeric ranges
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("config error: 'max_body_bytes' must be non-negative")
	}
	if c.MaxCompletionTokens < 0 {
		return fmt.Errorf("config error: 'max_completion_tokens' must be non-negative")
	}

	if c.RequestTimeout != "" {
		if d, err := time.ParseDuration(c.RequestTimeout); err != nil || d <= 0 {
			return fmt.Errorf("config error: 'request_timeout' must be a positive duration, got %q", c.RequestTimeout)
		}
	}

	if c.Provider != "" {
		if _, err := llm.ConfigFor(llm.Provider(c.Provider)); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	switch c.LogFormat {
	case "", "json", "pretty":
	default:
		return fmt.Errorf("config error: 'log_format' must be json or pretty, got %q", c.LogFormat)
	}

	// Validate file paths exist (if specified)
	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}

	if c.StaticDir != "" {
		if info, err := os.Stat(c.StaticDir); err != nil || !info.IsDir() {
			return fmt.Errorf("config error: static directory not found: %s", c.StaticDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.RequestTimeout == "" {
		result.RequestTimeout = defaults.RequestTimeout
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.ExtractionModel == "" {
		result.ExtractionModel = defaults.ExtractionModel
	}
	if result.ValidationModel == "" {
		result.ValidationModel = defaults.ValidationModel
	}
	if result.OpenAIBaseURL == "" {
		result.OpenAIBaseURL = defaults.OpenAIBaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.StaticDir == "" {
		result.StaticDir = defaults.StaticDir
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxBodyBytes == 0 {
		result.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if result.MaxCompletionTokens == 0 {
		result.MaxCompletionTokens = defaults.MaxCompletionTokens
	}

	// Slice fields
	if len(result.ContactLines) == 0 && len(defaults.ContactLines) > 0 {
		result.ContactLines = append([]string(nil), defaults.ContactLines...)
	}

	// Bool fields: true wins
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// Timeout returns the parsed request timeout, or DefaultRequestTimeout.
func (c *Config) Timeout() time.Duration {
	if d, err := time.ParseDuration(c.RequestTimeout); err == nil && d > 0 {
		return d
	}
	return DefaultRequestTimeout
}

// LLMConfig builds the model client configuration.
func (c *Config) LLMConfig() (*llm.Config, error) {
	cfg, err := llm.ConfigFor(llm.Provider(c.Provider))
	if err != nil {
		return nil, err
	}
	if c.Model != "" {
		cfg = cfg.WithAllModels(c.Model)
	}
	if c.ExtractionModel != "" {
		cfg = cfg.WithModel(llm.TierAdvanced, c.ExtractionModel)
	}
	if c.ValidationModel != "" {
		cfg = cfg.WithModel(llm.TierStandard, c.ValidationModel)
	}
	if c.OpenAIBaseURL != "" {
		cfg.BaseURL = c.OpenAIBaseURL
	}
	if c.MaxCompletionTokens > 0 {
		cfg.MaxOutputTokens = int32(c.MaxCompletionTokens)
	}
	return cfg, nil
}
