package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/expert-profile/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"port": 8080,
		"provider": "openai",
		"model": "o3-mini-2025-01-31",
		"max_completion_tokens": 32000,
		"request_timeout": "90s",
		"contact_lines": ["at example.com", "Phone: 123"],
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "o3-mini-2025-01-31", cfg.Model)
	assert.Equal(t, 32000, cfg.MaxCompletionTokens)
	assert.Equal(t, "90s", cfg.RequestTimeout)
	assert.Equal(t, []string{"at example.com", "Phone: 123"}, cfg.ContactLines)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, `{"port": 8080, "log_level": "debug", "provider": "openai"}`)
	t.Setenv("PORT", "9090")
	t.Setenv("LLM_MODEL", "custom-model")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "custom-model", cfg.Model)
	assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
	assert.Equal(t, int64(DefaultMaxBodyBytes), cfg.MaxBodyBytes)
	assert.Equal(t, llm.DefaultMaxOutputTokens, cfg.MaxCompletionTokens)
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults().Provider, cfg.Provider)
}

func TestApplyEnv_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "eighty")
	cfg := &Config{}
	err := cfg.ApplyEnv()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"defaults", Defaults(), ""},
		{"negative port", Config{Port: -1}, "port"},
		{"negative body limit", Config{MaxBodyBytes: -1}, "max_body_bytes"},
		{"negative tokens", Config{MaxCompletionTokens: -5}, "max_completion_tokens"},
		{"bad timeout", Config{RequestTimeout: "soon"}, "request_timeout"},
		{"zero timeout", Config{RequestTimeout: "0s"}, "request_timeout"},
		{"unknown provider", Config{Provider: "claude"}, "unsupported LLM provider"},
		{"unknown log format", Config{LogFormat: "xml"}, "log_format"},
		{"missing chrome", Config{ChromePath: "/nonexistent/chrome"}, "chrome binary not found"},
		{"missing static dir", Config{StaticDir: "/nonexistent/static"}, "static directory not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		Port:         5000,
		Provider:     "gemini",
		LogLevel:     "info",
		ContactLines: []string{"Mail:"},
	}

	partial := Config{
		Port:     8080,
		LogLevel: "debug",
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, 8080, merged.Port)
	assert.Equal(t, "debug", merged.LogLevel)

	// Default values should fill in empty fields
	assert.Equal(t, "gemini", merged.Provider)
	assert.Equal(t, []string{"Mail:"}, merged.ContactLines)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Port: 1234, Model: "m"}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, 1234, merged.Port)
	assert.Equal(t, "m", merged.Model)
}

func TestTimeout(t *testing.T) {
	assert.Equal(t, 90*time.Second, (&Config{RequestTimeout: "90s"}).Timeout())
	assert.Equal(t, DefaultRequestTimeout, (&Config{}).Timeout())
}

func TestLLMConfig(t *testing.T) {
	cfg := Config{
		Provider:            "openai",
		Model:               "gpt-4.1",
		OpenAIBaseURL:       "http://localhost:8000/v1",
		MaxCompletionTokens: 2048,
	}

	llmCfg, err := cfg.LLMConfig()
	require.NoError(t, err)

	assert.Equal(t, llm.ProviderOpenAI, llmCfg.Provider)
	assert.Equal(t, "gpt-4.1", llmCfg.GetModel(llm.TierStandard))
	assert.Equal(t, "gpt-4.1", llmCfg.GetModel(llm.TierAdvanced))
	assert.Equal(t, "http://localhost:8000/v1", llmCfg.BaseURL)
	assert.Equal(t, int32(2048), llmCfg.MaxOutputTokens)

	_, err = (&Config{Provider: "unknown"}).LLMConfig()
	assert.Error(t, err)
}

func TestLLMConfig_OpenAIDefault(t *testing.T) {
	llmCfg, err := (&Config{}).LLMConfig()
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderOpenAI, llmCfg.Provider)
	assert.Equal(t, "o3-mini-2025-01-31", llmCfg.GetModel(llm.TierAdvanced))
	assert.Equal(t, "o3-mini-2025-01-31", llmCfg.GetModel(llm.TierStandard))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider)
}

func TestLLMConfig_GeminiOptIn(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")

	cfg, err := Load("")
	require.NoError(t, err)
	llmCfg, err := cfg.LLMConfig()
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderGemini, llmCfg.Provider)
	assert.Equal(t, "gemini-2.5-pro", llmCfg.GetModel(llm.TierAdvanced))
}

func TestLLMConfig_PerStepModels(t *testing.T) {
	t.Setenv("LLM_VALIDATION_MODEL", "gpt-4.1-mini")

	cfg, err := Load(writeConfig(t, `{"model": "gpt-4.1", "extraction_model": "o3-2025-04-16"}`))
	require.NoError(t, err)
	llmCfg, err := cfg.LLMConfig()
	require.NoError(t, err)

	assert.Equal(t, "o3-2025-04-16", llmCfg.GetModel(llm.TierAdvanced))
	assert.Equal(t, "gpt-4.1-mini", llmCfg.GetModel(llm.TierStandard))
}
