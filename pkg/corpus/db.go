package corpus

import (
	"context"
	"fmt"

	"github.com/umputun/quotetok/pkg/domain"
)

// QuoteStore is the persistent quotes table
type QuoteStore interface {
	GetQuotes(ctx context.Context) ([]domain.Quote, error)
}

// DBProvider serves quotes imported into the database
type DBProvider struct {
	Store    QuoteStore
	Category string
}

// GetQuotes reads all stored quotes ordered by id
func (p *DBProvider) GetQuotes(ctx context.Context) ([]domain.Quote, error) {
	quotes, err := p.Store.GetQuotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("read stored quotes: %w", err)
	}
	return normalize(quotes, p.Category), nil
}
