package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dskvich/old-russian-bot/pkg/domain"
	"github.com/dskvich/old-russian-bot/pkg/logger"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type historyProvider interface {
	LastByUser(ctx context.Context, userID int64, n int) ([]domain.ProcessedText, error)
}

func History(provider historyProvider) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		showHistory(ctx, b, update, provider)
	}
}

func showHistory(ctx context.Context, replier Replier, update *models.Update, provider historyProvider) {
	if update.Message == nil {
		return
	}

	r := newReply(replier, update)
	userID := senderID(update)

	texts, err := provider.LastByUser(ctx, userID, domain.HistoryLimit)
	if err != nil {
		slog.ErrorContext(ctx, "Error fetching history",
			"user_id", userID,
			"stage", domain.StageStorage,
			logger.Err(err),
		)
		sendOrLog(ctx, r, historyFailureText)
		return
	}

	if len(texts) == 0 {
		sendOrLog(ctx, r, noHistoryText)
		return
	}

	for _, text := range texts {
		if err := r.text(ctx, formatHistoryEntry(text)); err != nil {
			slog.ErrorContext(ctx, "Failed to send history entry", "id", text.ID, logger.Err(err))
			return
		}
	}
}

func formatHistoryEntry(text domain.ProcessedText) string {
	return fmt.Sprintf(`Дата обработки: %s
Оригинальный текст: %s...
Перевод: %s...
Краткое содержание: %s
Ключевые слова: %s
-------------------`,
		text.CreatedAt.Format(historyDateFormat),
		domain.Truncate(text.OriginalText, historyPreviewLength),
		domain.Truncate(text.Translation, historyPreviewLength),
		text.Summary,
		text.Keywords,
	)
}
