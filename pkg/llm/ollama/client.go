package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dskvich/old-russian-bot/pkg/domain"
	"github.com/samber/lo"
)

const (
	DefaultURL = "http://localhost:11434"

	chatPath = "/api/chat"
)

type client struct {
	baseURL string
	hc      *http.Client
}

// NewClient creates a client for the Ollama chat API, falling back to
// DefaultURL for an empty base url. No timeout is set on the HTTP client;
// callers bound a request through its context.
func NewClient(baseURL string) (*client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base url: %s", baseURL)
	}
	return &client{
		baseURL: baseURL,
		hc:      &http.Client{},
	}, nil
}

func (c *client) Complete(ctx context.Context, model string, messages []domain.Message) (string, error) {
	reqBody, err := json.Marshal(chatRequest{
		Model: model,
		Messages: lo.Map(messages, func(m domain.Message, _ int) chatMessage {
			return chatMessage{Role: m.Role, Content: m.Content}
		}),
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatPath, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	respBody, err := c.doRequest(req)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("parsing chat response: %w", err)
	}

	if resp.Error != "" {
		return "", fmt.Errorf("ollama: %s", resp.Error)
	}

	if resp.Message.Content == "" {
		return "", domain.ErrEmptyResponse
	}

	return resp.Message.Content, nil
}

func (c *client) doRequest(req *http.Request) ([]byte, error) {
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code: %d, response: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return respBody, nil
}
