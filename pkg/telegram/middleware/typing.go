package middleware

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dskvich/old-russian-bot/pkg/logger"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type chatActionSender interface {
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
}

func Typing(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		sendTyping(ctx, b, update)
		next(ctx, b, update)
	}
}

// sendTyping shows the typing indicator for free-text messages, which are
// the only ones that reach the model.
func sendTyping(ctx context.Context, sender chatActionSender, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" || strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	if _, err := sender.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID:          update.Message.Chat.ID,
		MessageThreadID: update.Message.MessageThreadID,
		Action:          models.ChatActionTyping,
	}); err != nil {
		slog.WarnContext(ctx, "Failed to send typing action", logger.Err(err))
	}
}
