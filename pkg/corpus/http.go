package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"golang.org/x/net/html/charset"

	"github.com/umputun/quotetok/pkg/domain"
)

const maxBodySize = 10 * 1024 * 1024

// errPermanent marks a response which won't get better on retry
var errPermanent = errors.New("permanent error")

// HTTPProvider fetches a JSON array of quotes from a URL, retrying transient failures with backoff
type HTTPProvider struct {
	URL      string
	Category string
	Retries  int
	Client   *http.Client
	Delay    time.Duration // initial backoff delay
}

// NewHTTPProvider makes a provider with its own client
func NewHTTPProvider(url, category string, timeout time.Duration, retries int) *HTTPProvider {
	return &HTTPProvider{
		URL:      url,
		Category: category,
		Retries:  retries,
		Delay:    500 * time.Millisecond,
		Client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// GetQuotes downloads and decodes the quote list
func (p *HTTPProvider) GetQuotes(ctx context.Context) ([]domain.Quote, error) {
	retries := max(p.Retries, 1)
	delay := p.Delay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	var data []byte
	attempt := 0
	err := repeater.NewBackoff(retries, delay, repeater.WithMaxDelay(10*time.Second)).Do(ctx, func() error {
		attempt++
		body, err := p.fetch(ctx, client)
		if err != nil {
			if !errors.Is(err, errPermanent) {
				lgr.Printf("[WARN] fetch quotes from %s, attempt %d: %v", p.URL, attempt, err)
			}
			return err
		}
		data = body
		return nil
	}, errPermanent)
	if err != nil {
		return nil, fmt.Errorf("fetch quotes from %s: %w", p.URL, err)
	}

	quotes, err := decodeQuotes(data)
	if err != nil {
		return nil, fmt.Errorf("quotes from %s: %w", p.URL, err)
	}
	res := normalize(quotes, p.Category)
	lgr.Printf("[DEBUG] fetched %d quotes from %s", len(res), p.URL)
	return res, nil
}

func (p *HTTPProvider) fetch(ctx context.Context, client *http.Client) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", errPermanent, err)
	}
	addHeaders(req, "application/json,text/plain;q=0.9,*/*;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: unexpected status code: %d", errPermanent, resp.StatusCode)
	}

	// legacy sources may declare a non utf-8 charset
	reader, err := charset.NewReader(io.LimitReader(resp.Body, maxBodySize), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("%w: decode charset: %v", errPermanent, err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
