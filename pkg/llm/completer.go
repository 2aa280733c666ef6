package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/dskvich/old-russian-bot/pkg/domain"
)

const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

type Completer interface {
	Complete(ctx context.Context, model string, messages []domain.Message) (string, error)
}

// MultiProviderClient routes completions to the backend registered under
// the configured provider name.
type MultiProviderClient struct {
	providers map[string]Completer
	active    string
}

func NewMultiProviderClient(active string, providers map[string]Completer) (*MultiProviderClient, error) {
	active = strings.ToLower(strings.TrimSpace(active))
	if _, ok := providers[active]; !ok {
		return nil, fmt.Errorf("no provider found: %s", active)
	}

	return &MultiProviderClient{
		providers: providers,
		active:    active,
	}, nil
}

func (c *MultiProviderClient) Provider() string {
	return c.active
}

func (c *MultiProviderClient) Complete(ctx context.Context, model string, messages []domain.Message) (string, error) {
	return c.providers[c.active].Complete(ctx, model, messages)
}
