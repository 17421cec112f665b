// Package llm provides centralized LLM configuration and client abstractions.
// Provider and model identifiers are fixed configuration; the credential is supplied per request.
package llm

import "fmt"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierStandard is for moderate reasoning: consistency checks
	TierStandard ModelTier = "standard"
	// TierAdvanced is for verbatim structured extraction from long text
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is any OpenAI-compatible chat completions endpoint
	ProviderOpenAI Provider = "openai"
)

// DefaultMaxOutputTokens bounds a single completion. Extraction of a long
// resume with verbatim task lists needs a generous limit.
const DefaultMaxOutputTokens = 50000

// DefaultOpenAIBaseURL is the public OpenAI API root.
const DefaultOpenAIBaseURL = "https://api.openai.com/v1"

// Config holds the model configuration for the application
type Config struct {
	Provider        Provider
	Models          map[ModelTier]string
	BaseURL         string // OpenAI-compatible endpoints only
	MaxOutputTokens int32
}

// DefaultConfig returns the default configuration (currently OpenAI)
func DefaultConfig() *Config {
	return DefaultOpenAIConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		MaxOutputTokens: DefaultMaxOutputTokens,
	}
}

// DefaultOpenAIConfig returns the default OpenAI configuration.
// Both steps run on the same reasoning model.
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Models: map[ModelTier]string{
			TierStandard: "o3-mini-2025-01-31",
			TierAdvanced: "o3-mini-2025-01-31",
		},
		BaseURL:         DefaultOpenAIBaseURL,
		MaxOutputTokens: DefaultMaxOutputTokens,
	}
}

// ConfigFor returns the default configuration for a provider name.
func ConfigFor(provider Provider) (*Config, error) {
	switch provider {
	case ProviderOpenAI, "":
		return DefaultOpenAIConfig(), nil
	case ProviderGemini:
		return DefaultGeminiConfig(), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", provider)
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then advanced
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierAdvanced]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := c.clone()
	newConfig.Models[tier] = model
	return newConfig
}

// WithAllModels returns a new Config that uses one model for every tier.
func (c *Config) WithAllModels(model string) *Config {
	newConfig := c.clone()
	for _, tier := range []ModelTier{TierStandard, TierAdvanced} {
		newConfig.Models[tier] = model
	}
	return newConfig
}

func (c *Config) clone() *Config {
	newConfig := &Config{
		Provider:        c.Provider,
		Models:          make(map[ModelTier]string, len(c.Models)),
		BaseURL:         c.BaseURL,
		MaxOutputTokens: c.MaxOutputTokens,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	return newConfig
}
