package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements Client for OpenAI-compatible chat completion endpoints.
type OpenAIClient struct {
	api    *openai.Client
	config *Config
}

// NewOpenAIClient creates a new OpenAI-compatible client
func NewOpenAIClient(config *Config, apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(config.BaseURL, "/")
	}

	return &OpenAIClient{
		api:    openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// GenerateContent sends one chat completion with a system and a user message.
func (c *OpenAIClient) GenerateContent(ctx context.Context, req Request) (string, error) {
	modelName := c.config.GetModel(req.Tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", req.Tier)
	}

	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Prompt})

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:               modelName,
		Messages:            messages,
		MaxCompletionTokens: int(req.maxTokens(c.config)),
	})
	if err != nil {
		return "", openAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", &APIError{Provider: ProviderOpenAI, Message: "no choices in response"}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// openAIError wraps an SDK failure, keeping the service status and message.
func openAIError(err error) *APIError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			Provider: ProviderOpenAI,
			Message:  fmt.Sprintf("model service returned %d: %s", apiErr.HTTPStatusCode, apiErr.Message),
			Cause:    err,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &APIError{
			Provider: ProviderOpenAI,
			Message:  fmt.Sprintf("model service returned %d: %s", reqErr.HTTPStatusCode, strings.TrimSpace(string(reqErr.Body))),
			Cause:    err,
		}
	}

	return &APIError{Provider: ProviderOpenAI, Message: "request failed", Cause: err}
}

// GetModel returns the model name for a tier
func (c *OpenAIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the SDK client holds no per-request resources.
func (c *OpenAIClient) Close() error {
	return nil
}
