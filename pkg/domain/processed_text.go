package domain

import (
	"time"

	"github.com/uptrace/bun"
)

const HistoryLimit = 3

type ProcessedText struct {
	bun.BaseModel `bun:"table:texts"`

	ID           int64     `bun:",pk,autoincrement"`
	OriginalText string    `bun:"original_text"`
	Translation  string    `bun:"modern_translation"`
	Summary      string    `bun:"summary"`
	Keywords     string    `bun:"keywords"`
	CreatedAt    time.Time `bun:"timestamp"`
	UserID       int64     `bun:"user_id"`
}

func NewProcessedText(userID int64, original, translation, summary string, keywords []string) *ProcessedText {
	return &ProcessedText{
		OriginalText: original,
		Translation:  translation,
		Summary:      summary,
		Keywords:     JoinKeywords(keywords),
		UserID:       userID,
	}
}
