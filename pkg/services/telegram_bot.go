package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
)

type telegramBot struct {
	bot *bot.Bot
}

func NewTelegramBot(b *bot.Bot) (*telegramBot, error) {
	if b == nil {
		return nil, errors.New("telegram bot cannot be nil")
	}
	return &telegramBot{bot: b}, nil
}

func (t *telegramBot) Name() string {
	return "telegram bot"
}

// Start polls for updates until ctx is canceled.
func (t *telegramBot) Start(ctx context.Context) error {
	if _, err := t.bot.DeleteWebhook(ctx, &bot.DeleteWebhookParams{}); err != nil {
		return fmt.Errorf("deleting webhook: %w", err)
	}

	t.bot.Start(ctx)
	return nil
}
