package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const openAIDefaultModel = "gpt-4o-mini"

// OpenAIClient generates text via the official OpenAI SDK.
type OpenAIClient struct {
	name   string
	model  string
	client openai.Client
}

// NewOpenAIClient creates an OpenAI-backed client.
func NewOpenAIClient(name string, cfg ProviderConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: %w", name, ErrMissingAPIKey)
	}
	model := cfg.Model
	if model == "" {
		model = openAIDefaultModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: 120 * time.Second}),
		option.WithMaxRetries(0), // retry policy belongs to the caller
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIClient{
		name:   name,
		model:  model,
		client: openai.NewClient(opts...),
	}, nil
}

// Name returns the client identifier.
func (c *OpenAIClient) Name() string { return c.name }

// Generate sends one chat completion request.
func (c *OpenAIClient) Generate(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userMessage),
		},
	})
	if err != nil {
		return "", mapOpenAIError(c.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", &TransientError{Err: fmt.Errorf("%s: empty choices in response (model=%s)", c.name, c.model)}
	}
	return resp.Choices[0].Message.Content, nil
}

func mapOpenAIError(name string, err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return classifyStatus(name, apiErr.StatusCode, []byte(apiErr.Message))
	}
	return &TransientError{Err: fmt.Errorf("%s request failed: %w", name, err)}
}

var _ Client = (*OpenAIClient)(nil)
