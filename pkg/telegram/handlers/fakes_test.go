package handlers

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dskvich/old-russian-bot/pkg/domain"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type fakeReplier struct {
	sent   []*bot.SendMessageParams
	failAt int // 1-based send number that fails; 0 never fails
	calls  int
}

func (f *fakeReplier) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.calls++
	if f.failAt != 0 && f.calls == f.failAt {
		return nil, errors.New("telegram: Forbidden: bot was blocked by the user")
	}
	f.sent = append(f.sent, params)
	return &models.Message{ID: f.calls}, nil
}

func (f *fakeReplier) texts() []string {
	out := make([]string, 0, len(f.sent))
	for _, p := range f.sent {
		out = append(out, p.Text)
	}
	return out
}

type fakeCompleter struct {
	mu          sync.Mutex
	calls       int
	translation string
	summary     string
	keywords    string
	failOn      string
}

func (f *fakeCompleter) Complete(_ context.Context, _ string, messages []domain.Message) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	task := messages[len(messages)-1].Content
	var op string
	switch {
	case strings.Contains(task, "переведи"):
		op = "translate"
	case strings.Contains(task, "краткое содержание"):
		op = "summarize"
	default:
		op = "keywords"
	}

	if op == f.failOn {
		return "", errors.New("ollama: connection refused")
	}

	switch op {
	case "translate":
		return f.translation, nil
	case "summarize":
		return f.summary, nil
	}
	return f.keywords, nil
}

type fakeStore struct {
	texts   []domain.ProcessedText
	err     error
	lastN   int
	queries int
}

func (f *fakeStore) Save(_ context.Context, text *domain.ProcessedText) error {
	if f.err != nil {
		return f.err
	}
	text.ID = int64(len(f.texts) + 1)
	f.texts = append(f.texts, *text)
	return nil
}

func (f *fakeStore) LastByUser(_ context.Context, userID int64, n int) ([]domain.ProcessedText, error) {
	f.queries++
	f.lastN = n
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.ProcessedText
	for _, t := range f.texts {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return out, nil
}

func textUpdate(userID int64, text string) *models.Update {
	return &models.Update{
		Message: &models.Message{
			ID:   1,
			Text: text,
			Chat: models.Chat{ID: userID},
			From: &models.User{ID: userID},
		},
	}
}
