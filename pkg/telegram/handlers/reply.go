package handlers

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/dskvich/old-russian-bot/pkg/domain"
	"github.com/dskvich/old-russian-bot/pkg/logger"
	"github.com/dskvich/old-russian-bot/pkg/render"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const maxTelegramMessageLength = 4096

// Replier is the part of *bot.Bot used to answer a user.
type Replier interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

func findCutIndex(text string, maxLength int) int {
	prefix := text[:maxLength]
	if i := strings.LastIndex(prefix, "<pre>"); i > 0 {
		return i
	}
	if i := strings.LastIndex(prefix, "\n"); i > 0 {
		return i
	}
	return maxLength
}

// splitMessage cuts text into chunks of at most maxRunes runes, preferring
// line boundaries and never splitting a rune.
func splitMessage(text string, maxRunes int) []string {
	var chunks []string
	for utf8.RuneCountInString(text) > maxRunes {
		limit := runeOffset(text, maxRunes)
		cut := findCutIndex(text, limit)
		chunks = append(chunks, text[:cut])
		text = strings.TrimPrefix(text[cut:], "\n")
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

func runeOffset(s string, n int) int {
	i := 0
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}

type reply struct {
	replier Replier
	chatID  int64
	topicID int
}

func newReply(r Replier, update *models.Update) reply {
	return reply{
		replier: r,
		chatID:  update.Message.Chat.ID,
		topicID: update.Message.MessageThreadID,
	}
}

func (r reply) text(ctx context.Context, text string) error {
	for _, chunk := range splitMessage(text, maxTelegramMessageLength) {
		if err := r.send(ctx, chunk, ""); err != nil {
			return err
		}
	}
	return nil
}

func (r reply) send(ctx context.Context, text string, parseMode models.ParseMode) error {
	if _, err := r.replier.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          r.chatID,
		MessageThreadID: r.topicID,
		Text:            text,
		ParseMode:       parseMode,
	}); err != nil {
		return domain.NewPipelineError(domain.StageTransport, "send message", err)
	}
	return nil
}

// markdown renders model output chunk by chunk and sends each chunk as HTML.
// A chunk Telegram rejects is resent once as plain text.
func (r reply) markdown(ctx context.Context, header, body string) error {
	for _, chunk := range splitMessage(header+body, maxTelegramMessageLength) {
		htmlChunk := render.ToHTML(chunk)
		if htmlChunk == "" || utf8.RuneCountInString(htmlChunk) > maxTelegramMessageLength {
			if err := r.send(ctx, chunk, ""); err != nil {
				return err
			}
			continue
		}

		if err := r.send(ctx, htmlChunk, models.ParseModeHTML); err != nil {
			slog.WarnContext(ctx, "HTML reply rejected, sending plain text", logger.Err(err))
			if err := r.send(ctx, chunk, ""); err != nil {
				return err
			}
		}
	}
	return nil
}

func sendOrLog(ctx context.Context, r reply, text string) {
	if err := r.text(ctx, text); err != nil {
		slog.ErrorContext(ctx, "Failed to send reply", "chat_id", r.chatID, logger.Err(err))
	}
}
