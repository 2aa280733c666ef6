package handlers

import "github.com/go-telegram/bot"

// Routes registers the commands and the free-text handler.
func Routes(pipeline *Pipeline, history historyProvider) []bot.Option {
	return []bot.Option{
		bot.WithDefaultHandler(ProcessText(pipeline)),
		bot.WithMessageTextHandler("/start", bot.MatchTypePrefix, Start()),
		bot.WithMessageTextHandler("/help", bot.MatchTypePrefix, Help()),
		bot.WithMessageTextHandler("/history", bot.MatchTypePrefix, History(history)),
	}
}
