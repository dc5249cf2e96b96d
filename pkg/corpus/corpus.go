// Package corpus provides quote sources for the feed session. Every provider returns quotes in source order
// with markup stripped; Multi merges several sources and Categorizer fills missing categories with an LLM.
package corpus

import (
	"context"
	"hash/fnv"
	"html"
	"math"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/quotetok/pkg/domain"
)

// DefaultCategory is assigned to quotes left without a category
const DefaultCategory = "General"

// Provider returns the full list of quotes
type Provider interface {
	GetQuotes(ctx context.Context) ([]domain.Quote, error)
}

var strictPolicy = bluemonday.StrictPolicy()

// cleanText strips markup and collapses whitespace
func cleanText(s string) string {
	s = html.UnescapeString(strictPolicy.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}

// quoteID derives a stable positive id from key for sources without numeric ids
func quoteID(key string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return int64(h.Sum64() & math.MaxInt64) //nolint:gosec // masked to positive range
}

// normalize cleans content and category, assigns missing ids and the fallback category,
// and drops quotes with empty content
func normalize(quotes []domain.Quote, category string) []domain.Quote {
	res := make([]domain.Quote, 0, len(quotes))
	for _, q := range quotes {
		q.Content = cleanText(q.Content)
		if q.Content == "" {
			continue
		}
		q.Category = cleanText(q.Category)
		if q.Category == "" {
			q.Category = category
		}
		if q.ID == 0 {
			q.ID = quoteID(q.Content)
		}
		res = append(res, q)
	}
	return res
}
