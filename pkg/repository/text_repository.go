package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dskvich/old-russian-bot/pkg/domain"
	"github.com/samber/lo"
	"github.com/uptrace/bun"
)

type textRepository struct {
	db  *bun.DB
	now func() time.Time
}

func NewTextRepository(db *bun.DB) *textRepository {
	return &textRepository{db: db, now: time.Now}
}

func (t *textRepository) Save(ctx context.Context, text *domain.ProcessedText) error {
	text.CreatedAt = t.now()

	_, err := t.db.NewInsert().
		Model(text).
		Returning("id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("saving text: %w", err)
	}

	return nil
}

// ListByUser returns every text of the user in insertion order.
func (t *textRepository) ListByUser(ctx context.Context, userID int64) ([]domain.ProcessedText, error) {
	var texts []domain.ProcessedText

	err := t.db.NewSelect().
		Model(&texts).
		Where("user_id = ?", userID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching texts for user %d: %w", userID, err)
	}

	return texts, nil
}

// LastByUser returns up to n most recent texts of the user, oldest first.
func (t *textRepository) LastByUser(ctx context.Context, userID int64, n int) ([]domain.ProcessedText, error) {
	texts, err := t.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(texts) <= n {
		return texts, nil
	}
	return lo.Subset(texts, -n, uint(n)), nil
}
