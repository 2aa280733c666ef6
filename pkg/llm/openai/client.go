package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dskvich/old-russian-bot/pkg/domain"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
)

type client struct {
	api openaiclient.Client
}

// NewClient creates a Chat Completions client. baseURL may point at any
// OpenAI compatible endpoint; empty means the official API.
func NewClient(token, baseURL string) (*client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("token cannot be empty")
	}

	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(token),
		openaioption.WithMaxRetries(defaultMaxRetries),
	}
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		opts = append(opts, openaioption.WithBaseURL(baseURL))
	}

	return &client{api: openaiclient.NewClient(opts...)}, nil
}

func (c *client) Complete(ctx context.Context, model string, messages []domain.Message) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openaiclient.ChatCompletionNewParams{
		Model:    openaiclient.ChatModel(model),
		Messages: toMessageParams(messages),
	})
	if err != nil {
		return "", fmt.Errorf("creating chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", domain.ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}
