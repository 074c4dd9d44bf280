// Package llm implements the completion gateway on top of the OpenAI
// chat-completions protocol. Groq exposes the same protocol, so the same
// client serves either provider through the configured base URL.
package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"ragnews/config"
	"ragnews/internal/port"
)

// Client is a chat-completion client with a configured default model.
type Client struct {
	api         openai.Client
	model       string
	temperature float64
}

// NewClient builds a gateway client from configuration. The API credential
// is read from the environment variable named by cfg.APIKeyEnv; a missing
// credential is a configuration error surfaced immediately, before any
// query runs.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in environment variable: %s", cfg.APIKeyEnv)
	}

	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	api := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithRequestTimeout(timeout),
	)

	return &Client{
		api:         api,
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

// Complete sends a system/user prompt pair and returns the completion text.
// A nil seed samples; a set seed reproduces the same output for identical
// inputs and model.
func (c *Client) Complete(ctx context.Context, req port.CompletionRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
		Temperature: openai.Float(c.temperature),
	}
	if req.Seed != nil {
		params.Seed = openai.Int(*req.Seed)
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// ModelName returns the default model identifier.
func (c *Client) ModelName() string {
	return c.model
}
