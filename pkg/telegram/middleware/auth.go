package middleware

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/lo"
)

// Auth drops updates from users outside authorizedUserIDs. An empty list
// lets everyone through.
func Auth(authorizedUserIDs []int64) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if len(authorizedUserIDs) == 0 {
				next(ctx, b, update)
				return
			}

			userID, ok := updateUserID(update)
			if !ok || !lo.Contains(authorizedUserIDs, userID) {
				slog.WarnContext(ctx, "Unauthorized access attempt", "user_id", userID)
				return
			}

			next(ctx, b, update)
		}
	}
}

func updateUserID(update *models.Update) (int64, bool) {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID, true
	case update.CallbackQuery != nil:
		return update.CallbackQuery.From.ID, true
	default:
		return 0, false
	}
}
