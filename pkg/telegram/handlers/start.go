package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func Start() bot.HandlerFunc {
	return staticReply(welcomeText)
}

func Help() bot.HandlerFunc {
	return staticReply(helpText)
}

func staticReply(text string) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		sendStatic(ctx, b, update, text)
	}
}

func sendStatic(ctx context.Context, replier Replier, update *models.Update, text string) {
	if update.Message == nil {
		return
	}
	sendOrLog(ctx, newReply(replier, update), text)
}
