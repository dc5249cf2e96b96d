package corpus

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/quotetok/pkg/domain"
)

// Source is a named provider
type Source struct {
	Name     string
	Provider Provider
}

// Multi loads all sources in parallel and merges them in source order. Quotes with an id already seen
// in an earlier source are skipped. A failing source is logged and skipped, the load fails only if every
// source failed.
type Multi struct {
	Sources     []Source
	Concurrency int
}

// GetQuotes returns the merged corpus
func (m *Multi) GetQuotes(ctx context.Context) ([]domain.Quote, error) {
	if len(m.Sources) == 0 {
		return nil, errors.New("no corpus sources")
	}

	results := make([][]domain.Quote, len(m.Sources))
	errs := make([]error, len(m.Sources))

	g, gctx := errgroup.WithContext(ctx)
	if m.Concurrency > 0 {
		g.SetLimit(m.Concurrency)
	}
	for i, src := range m.Sources {
		g.Go(func() error {
			quotes, err := src.Provider.GetQuotes(gctx)
			if err != nil {
				errs[i] = fmt.Errorf("source %s: %w", src.Name, err)
				return nil
			}
			results[i] = quotes
			return nil
		})
	}
	_ = g.Wait() // per-source errors are collected in errs

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
			lgr.Printf("[WARN] %v", err)
		}
	}
	if failed == len(m.Sources) {
		return nil, errors.Join(errs...)
	}

	seen := make(map[int64]struct{})
	res := make([]domain.Quote, 0)
	for i, quotes := range results {
		dups := 0
		for _, q := range quotes {
			if _, ok := seen[q.ID]; ok {
				dups++
				continue
			}
			seen[q.ID] = struct{}{}
			res = append(res, q)
		}
		if dups > 0 {
			lgr.Printf("[DEBUG] source %s: %d quotes with duplicate ids skipped", m.Sources[i].Name, dups)
		}
	}
	lgr.Printf("[DEBUG] corpus merged from %d sources, %d quotes, %d sources failed", len(m.Sources), len(res), failed)
	return res, nil
}
