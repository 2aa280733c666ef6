package processor

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dskvich/old-russian-bot/pkg/domain"
)

type completer interface {
	Complete(ctx context.Context, model string, messages []domain.Message) (string, error)
}

type Processor struct {
	completer  completer
	model      string
	concurrent bool
}

type Option func(*Processor)

// WithConcurrentAnalysis runs summarization and keyword extraction in
// parallel once the translation is known.
func WithConcurrentAnalysis(enabled bool) Option {
	return func(p *Processor) {
		p.concurrent = enabled
	}
}

func New(c completer, model string, opts ...Option) (*Processor, error) {
	if c == nil {
		return nil, errors.New("completer cannot be nil")
	}
	if model == "" {
		return nil, errors.New("model cannot be empty")
	}

	p := &Processor{completer: c, model: model}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Processor) Model() string {
	return p.model
}

func (p *Processor) Concurrent() bool {
	return p.concurrent
}

func (p *Processor) Translate(ctx context.Context, text string) (string, error) {
	return p.ask(ctx, "translate", translatePersona, taskPrompt(translateTask, text))
}

func (p *Processor) Summarize(ctx context.Context, translation string) (string, error) {
	return p.ask(ctx, "summarize", summarizePersona, taskPrompt(summarizeTask, translation))
}

func (p *Processor) ExtractKeywords(ctx context.Context, translation string) ([]string, error) {
	raw, err := p.ask(ctx, "extract keywords", keywordsPersona, taskPrompt(keywordsTask, translation))
	if err != nil {
		return nil, err
	}
	return domain.SplitKeywords(raw), nil
}

// Analysis holds the results derived from a translation.
type Analysis struct {
	Summary     string
	SummaryErr  error
	Keywords    []string
	KeywordsErr error
}

// Analyze summarizes and extracts keywords from translation in parallel. Both
// results are always returned so the caller can report them in order.
func (p *Processor) Analyze(ctx context.Context, translation string) Analysis {
	var a Analysis

	keywordsCh := make(chan struct{})
	go func() {
		defer close(keywordsCh)
		a.Keywords, a.KeywordsErr = p.ExtractKeywords(ctx, translation)
	}()

	a.Summary, a.SummaryErr = p.Summarize(ctx, translation)
	<-keywordsCh

	return a
}

func (p *Processor) ask(ctx context.Context, op, persona, task string) (string, error) {
	slog.DebugContext(ctx, "Calling model", "op", op, "model", p.model)

	out, err := p.completer.Complete(ctx, p.model, []domain.Message{
		domain.SystemMessage(persona),
		domain.UserMessage(task),
	})
	if err != nil {
		return "", domain.NewPipelineError(domain.StageInference, op, err)
	}
	if out == "" {
		return "", domain.NewPipelineError(domain.StageInference, op, domain.ErrEmptyResponse)
	}

	return out, nil
}
