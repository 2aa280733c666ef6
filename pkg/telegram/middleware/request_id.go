package middleware

import (
	"context"

	"github.com/dskvich/old-russian-bot/pkg/logger"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
)

func RequestID(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		next(logger.WithRequestID(ctx, uuid.NewString()), b, update)
	}
}
