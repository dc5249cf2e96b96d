package corpus

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/mmcdole/gofeed"

	"github.com/umputun/quotetok/pkg/domain"
)

// RSSProvider reads quotes from an RSS or Atom feed, one quote per item.
// Quote text is the item description (or content, or title), the category is the first item category.
type RSSProvider struct {
	URL      string
	Category string
	Timeout  time.Duration
	parser   *gofeed.Parser
}

// NewRSSProvider makes a feed provider
func NewRSSProvider(url, category string, timeout time.Duration) *RSSProvider {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = &http.Client{Timeout: timeout}
	return &RSSProvider{URL: url, Category: category, Timeout: timeout, parser: parser}
}

// GetQuotes fetches and parses the feed
func (p *RSSProvider) GetQuotes(ctx context.Context) ([]domain.Quote, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	feed, err := p.parser.ParseURLWithContext(p.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", p.URL, err)
	}

	quotes := make([]domain.Quote, 0, len(feed.Items))
	for _, item := range feed.Items {
		q := domain.Quote{Content: item.Description}
		if cleanText(q.Content) == "" {
			q.Content = item.Content
		}
		if cleanText(q.Content) == "" {
			q.Content = item.Title
		}
		if len(item.Categories) > 0 {
			q.Category = item.Categories[0]
		}

		key := item.GUID
		if key == "" {
			key = item.Link
		}
		if key == "" {
			key = feed.Title + "-" + item.Title + "-" + q.Content
		}
		q.ID = quoteID(key)
		quotes = append(quotes, q)
	}

	res := normalize(quotes, p.Category)
	lgr.Printf("[DEBUG] parsed %d quotes from feed %s", len(res), p.URL)
	return res, nil
}
