package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/quotetok/pkg/domain"
)

// QuoteRepository handles quote corpus storage
type QuoteRepository struct {
	db *sqlx.DB
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *sqlx.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// GetQuotes returns the whole corpus ordered by id
func (r *QuoteRepository) GetQuotes(ctx context.Context) ([]domain.Quote, error) {
	var quotes []domain.Quote
	if err := r.db.SelectContext(ctx, &quotes, "SELECT id, content, category FROM quotes ORDER BY id"); err != nil {
		return nil, fmt.Errorf("get quotes: %w", err)
	}
	return quotes, nil
}

// CountQuotes returns the number of stored quotes
func (r *QuoteRepository) CountQuotes(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM quotes"); err != nil {
		return 0, fmt.Errorf("count quotes: %w", err)
	}
	return count, nil
}

// ImportQuotes upserts quotes by id in a single transaction
func (r *QuoteRepository) ImportQuotes(ctx context.Context, quotes []domain.Quote) error {
	if len(quotes) == 0 {
		return nil
	}

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("begin transaction: %w", err)}
		}
		defer func() { _ = tx.Rollback() }()

		query := `
			INSERT INTO quotes (id, content, category) VALUES (:id, :content, :category)
			ON CONFLICT(id) DO UPDATE SET content = excluded.content, category = excluded.category
		`
		for _, q := range quotes {
			if _, err := tx.NamedExecContext(ctx, query, q); err != nil {
				if isLockError(err) {
					return err
				}
				return &criticalError{err: fmt.Errorf("import quote %d: %w", q.ID, err)}
			}
		}

		if err := tx.Commit(); err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("commit import: %w", err)}
		}
		return nil
	})
}
