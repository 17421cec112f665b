package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderOpenAI, config.Provider)
	assert.Equal(t, "o3-mini-2025-01-31", config.GetModel(TierStandard))
	assert.Equal(t, "o3-mini-2025-01-31", config.GetModel(TierAdvanced))
	assert.Equal(t, int32(DefaultMaxOutputTokens), config.MaxOutputTokens)
}

func TestDefaultGeminiConfig(t *testing.T) {
	config := DefaultGeminiConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
}

func TestDefaultOpenAIConfig(t *testing.T) {
	config := DefaultOpenAIConfig()

	assert.Equal(t, ProviderOpenAI, config.Provider)
	assert.Equal(t, "o3-mini-2025-01-31", config.GetModel(TierAdvanced))
	assert.Equal(t, DefaultOpenAIBaseURL, config.BaseURL)
}

func TestConfigFor(t *testing.T) {
	config, err := ConfigFor("")
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, config.Provider)

	config, err = ConfigFor(ProviderGemini)
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, config.Provider)

	_, err = ConfigFor("anthropic")
	assert.Error(t, err)
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierAdvanced: "fallback-model",
		},
	}

	// Unknown tier should fallback to TierStandard, then TierAdvanced
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{},
	}

	assert.Equal(t, "", config.GetModel(TierAdvanced))
}

func TestWithModel(t *testing.T) {
	config := DefaultGeminiConfig()
	newConfig := config.WithModel(TierAdvanced, "custom-model")

	// Original should be unchanged
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))

	assert.Equal(t, "custom-model", newConfig.GetModel(TierAdvanced))
	assert.Equal(t, "gemini-2.5-flash", newConfig.GetModel(TierStandard))
	assert.Equal(t, config.MaxOutputTokens, newConfig.MaxOutputTokens)
}

func TestWithAllModels(t *testing.T) {
	config := DefaultOpenAIConfig().WithAllModels("gpt-4.1")

	assert.Equal(t, "gpt-4.1", config.GetModel(TierStandard))
	assert.Equal(t, "gpt-4.1", config.GetModel(TierAdvanced))
	assert.Equal(t, DefaultOpenAIBaseURL, config.BaseURL)
}
