package handlers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dskvich/old-russian-bot/pkg/domain"
	"github.com/dskvich/old-russian-bot/pkg/logger"
	"github.com/dskvich/old-russian-bot/pkg/processor"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type textProcessor interface {
	Translate(ctx context.Context, text string) (string, error)
	Summarize(ctx context.Context, translation string) (string, error)
	ExtractKeywords(ctx context.Context, translation string) ([]string, error)
	Analyze(ctx context.Context, translation string) processor.Analysis
	Concurrent() bool
}

type textSaver interface {
	Save(ctx context.Context, text *domain.ProcessedText) error
}

// Pipeline turns one free-text message into three replies and a stored record.
type Pipeline struct {
	processor textProcessor
	saver     textSaver
}

func NewPipeline(p textProcessor, saver textSaver) *Pipeline {
	return &Pipeline{processor: p, saver: saver}
}

// Run sends the acknowledgement, translation, summary and keyword replies in
// that order and stores the record once all three are known. Replies already
// sent are kept when a later step fails.
func (p *Pipeline) Run(ctx context.Context, r reply, userID int64, text string) error {
	if err := r.text(ctx, ackText); err != nil {
		return err
	}

	translation, err := p.processor.Translate(ctx, text)
	if err != nil {
		return err
	}
	if err := r.markdown(ctx, translationHeader, translation); err != nil {
		return err
	}

	var (
		summary  string
		keywords []string
	)
	if p.processor.Concurrent() {
		summary, keywords, err = p.analyzeConcurrently(ctx, r, translation)
	} else {
		summary, keywords, err = p.analyze(ctx, r, translation)
	}
	if err != nil {
		return err
	}

	record := domain.NewProcessedText(userID, text, translation, summary, keywords)
	if err := r.text(ctx, keywordsHeader+record.Keywords); err != nil {
		return err
	}

	if err := p.saver.Save(ctx, record); err != nil {
		return domain.NewPipelineError(domain.StageStorage, "save text", err)
	}

	slog.InfoContext(ctx, "Text processed", "id", record.ID, "user_id", userID)

	return r.text(ctx, savedText)
}

// analyze replies with the summary before keyword extraction starts.
func (p *Pipeline) analyze(ctx context.Context, r reply, translation string) (string, []string, error) {
	summary, err := p.processor.Summarize(ctx, translation)
	if err != nil {
		return "", nil, err
	}
	if err := r.markdown(ctx, summaryHeader, summary); err != nil {
		return "", nil, err
	}

	keywords, err := p.processor.ExtractKeywords(ctx, translation)
	if err != nil {
		return "", nil, err
	}
	return summary, keywords, nil
}

func (p *Pipeline) analyzeConcurrently(ctx context.Context, r reply, translation string) (string, []string, error) {
	a := p.processor.Analyze(ctx, translation)
	if a.SummaryErr != nil {
		return "", nil, a.SummaryErr
	}
	if err := r.markdown(ctx, summaryHeader, a.Summary); err != nil {
		return "", nil, err
	}
	if a.KeywordsErr != nil {
		return "", nil, a.KeywordsErr
	}
	return a.Summary, a.Keywords, nil
}

func ProcessText(pipeline *Pipeline) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		processText(ctx, b, update, pipeline)
	}
}

func processText(ctx context.Context, replier Replier, update *models.Update, pipeline *Pipeline) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	if strings.HasPrefix(update.Message.Text, "/") {
		slog.DebugContext(ctx, "Ignoring unknown command", "text", update.Message.Text)
		return
	}

	r := newReply(replier, update)
	userID := senderID(update)

	if err := pipeline.Run(ctx, r, userID, update.Message.Text); err != nil {
		stage := domain.StageOf(err)
		slog.ErrorContext(ctx, "Error processing message",
			"user_id", userID,
			"stage", stage,
			"retryable", stage.Retryable(),
			logger.Err(err),
		)
		sendOrLog(ctx, r, failureText)
	}
}

func senderID(update *models.Update) int64 {
	if update.Message.From != nil {
		return update.Message.From.ID
	}
	return update.Message.Chat.ID
}
