package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Request is a single completion request.
type Request struct {
	System string    // System instruction
	Prompt string    // User content
	Tier   ModelTier // Selects the model

	// MaxTokens overrides Config.MaxOutputTokens when positive
	MaxTokens int32
}

func (r Request) maxTokens(config *Config) int32 {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	return config.MaxOutputTokens
}

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateContent runs one completion and returns the response text
	GenerateContent(ctx context.Context, req Request) (string, error)
	// GetModel returns the provider model name for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// Factory creates a client for a per-request credential.
type Factory func(ctx context.Context, apiKey string) (Client, error)

// NewFactory returns a Factory bound to config.
func NewFactory(config *Config) Factory {
	return func(ctx context.Context, apiKey string) (Client, error) {
		return NewClient(ctx, config, apiKey)
	}
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderOpenAI, "":
		return NewOpenAIClient(config, apiKey)
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &APIError{Provider: ProviderGemini, Message: "failed to create client", Cause: err}
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateContent generates text content using the model for the request tier
func (c *GeminiClient) GenerateContent(ctx context.Context, req Request) (string, error) {
	modelName := c.config.GetModel(req.Tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", req.Tier)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.1) // Low temperature for verbatim copying
	if tokens := req.maxTokens(c.config); tokens > 0 {
		model.SetMaxOutputTokens(tokens)
	}
	if req.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", &APIError{Provider: ProviderGemini, Message: "failed to generate content", Cause: err}
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", &APIError{Provider: ProviderGemini, Message: "empty response", Cause: err}
	}
	return text, nil
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.TrimSpace(strings.Join(parts, "")), nil
}
