package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/dskvich/old-russian-bot/pkg/logger"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Recover keeps a panicking handler from taking the process down.
func Recover(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		defer func() {
			if r := recover(); r != nil {
				slog.ErrorContext(ctx, "Handler panicked",
					"update_id", update.ID,
					"stack", string(debug.Stack()),
					logger.Err(fmt.Errorf("panic: %v", r)),
				)
			}
		}()
		next(ctx, b, update)
	}
}
