package llm

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/studyforge/studyforge/internal/codec"
)

// Completer is the text-completion capability consumed by the generation
// orchestrators. Tests substitute stubs for it.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client wraps an OpenAI-compatible API endpoint.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// New creates a new LLM client. An empty baseURL uses the provider default.
func New(baseURL, apiKey, modelName string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{
		api:         openai.NewClientWithConfig(config),
		model:       modelName,
		temperature: 0.7,
		maxTokens:   8192,
	}
}

// Ping verifies the endpoint is reachable and the credentials work.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.api.ListModels(ctx); err != nil {
		return fmt.Errorf("LLM health check: %w", err)
	}
	return nil
}

// Complete sends a single-turn prompt and returns the raw response text.
// Network, auth and malformed-response failures all surface as errors; the
// caller decides whether they abort the operation.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("LLM API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("LLM returned no choices")
	}
	raw := resp.Choices[0].Message.Content
	slog.Debug("LLM response", "chars", len(raw))
	return raw, nil
}

// ExtractText turns an uploaded image or PDF into plain text via a
// multi-part vision request, for embedding into a text prompt.
func (c *Client) ExtractText(ctx context.Context, name string, data []byte) (string, error) {
	encoded, err := codec.FileToTransportEncoding(name, data)
	if err != nil {
		return "", err
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: "Extract all text from this document exactly as written, including any math problems, equations and diagram labels. Return only the extracted text.",
					},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: encoded},
					},
				},
			},
		},
		Temperature: 0,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("vision extraction call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("vision extraction returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
