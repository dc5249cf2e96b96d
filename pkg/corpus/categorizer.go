package corpus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-pkgz/lgr"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/umputun/quotetok/pkg/config"
	"github.com/umputun/quotetok/pkg/domain"
)

const categorizeBatch = 50

const categorizerSystemPrompt = `You are an assistant that sorts quotes into categories.
For each quote pick exactly one short category name (one or two words, Title Case).
Use one of the provided categories whenever it fits, create a new one only if none fits.
Respond with a JSON array of objects with "id" and "category" fields and nothing else.`

var errNoJSON = errors.New("no json array found in response")

// Categorizer wraps a provider and asks an LLM for the category of quotes which have none.
// Answers are cached by quote id; quotes the LLM could not categorize get DefaultCategory.
type Categorizer struct {
	provider Provider
	client   *openai.Client
	cfg      config.LLMConfig
	limiter  *rate.Limiter

	mu    sync.Mutex
	cache map[int64]string
}

// NewCategorizer makes a categorizer over provider using an OpenAI-compatible endpoint
func NewCategorizer(provider Provider, cfg config.LLMConfig) *Categorizer {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	limit := rate.Inf
	if cfg.RequestInterval > 0 {
		limit = rate.Every(cfg.RequestInterval)
	}
	return &Categorizer{
		provider: provider,
		client:   openai.NewClientWithConfig(clientConfig),
		cfg:      cfg,
		limiter:  rate.NewLimiter(limit, 1),
		cache:    make(map[int64]string),
	}
}

// GetQuotes returns the wrapped provider's quotes with every category filled
func (c *Categorizer) GetQuotes(ctx context.Context) ([]domain.Quote, error) {
	quotes, err := c.provider.GetQuotes(ctx)
	if err != nil {
		return nil, err
	}

	known := c.knownCategories(quotes)
	var pending []domain.Quote
	c.mu.Lock()
	for _, q := range quotes {
		if _, ok := c.cache[q.ID]; q.Category == "" && !ok {
			pending = append(pending, q)
		}
	}
	c.mu.Unlock()

	for start := 0; start < len(pending); start += categorizeBatch {
		batch := pending[start:min(start+categorizeBatch, len(pending))]
		assigned, err := c.categorize(ctx, batch, known)
		if err != nil {
			lgr.Printf("[WARN] can't categorize %d quotes: %v", len(batch), err)
			continue
		}
		c.mu.Lock()
		for id, cat := range assigned {
			c.cache[id] = cat
		}
		c.mu.Unlock()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	res := make([]domain.Quote, len(quotes))
	for i, q := range quotes {
		if q.Category == "" {
			q.Category = DefaultCategory
			if cat, ok := c.cache[q.ID]; ok {
				q.Category = cat
			}
		}
		res[i] = q
	}
	return res, nil
}

// categorize requests categories for quotes, retrying on unparsable answers
func (c *Categorizer) categorize(ctx context.Context, quotes []domain.Quote, known []string) (map[int64]string, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: float32(c.cfg.Temperature),
		MaxTokens:   c.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: categorizerSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildCategorizePrompt(quotes, known)},
		},
	}

	var lastErr error
	for range 3 {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
		resp, err := c.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("llm request: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, errors.New("no response from llm")
		}
		res, err := parseCategories(resp.Choices[0].Message.Content, quotes)
		if err == nil {
			return res, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("after 3 attempts: %w", lastErr)
}

func (c *Categorizer) knownCategories(quotes []domain.Quote) []string {
	res := make([]string, 0, len(c.cfg.Categories))
	seen := make(map[string]bool)
	for _, cat := range c.cfg.Categories {
		if !seen[cat] {
			seen[cat] = true
			res = append(res, cat)
		}
	}
	for _, cat := range domain.Categories(quotes)[1:] {
		if cat != "" && !seen[cat] {
			seen[cat] = true
			res = append(res, cat)
		}
	}
	return res
}

func buildCategorizePrompt(quotes []domain.Quote, known []string) string {
	var sb strings.Builder
	if len(known) > 0 {
		sb.WriteString("Available categories:\n")
		sb.WriteString(strings.Join(known, ", "))
		sb.WriteString("\n\n")
	}
	sb.WriteString("Categorize these quotes:\n\n")
	for _, q := range quotes {
		sb.WriteString(fmt.Sprintf("id: %d\nquote: %s\n\n", q.ID, q.Content))
	}
	return sb.String()
}

// parseCategories extracts the json array from content, keeping answers for requested ids only
func parseCategories(content string, quotes []domain.Quote) (map[int64]string, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || start >= end {
		return nil, errNoJSON
	}

	var answers []struct {
		ID       int64  `json:"id"`
		Category string `json:"category"`
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &answers); err != nil {
		return nil, fmt.Errorf("parse json array: %w", err)
	}

	requested := make(map[int64]bool, len(quotes))
	for _, q := range quotes {
		requested[q.ID] = true
	}
	res := make(map[int64]string, len(answers))
	for _, a := range answers {
		cat := cleanText(a.Category)
		if requested[a.ID] && cat != "" {
			res[a.ID] = cat
		}
	}
	return res, nil
}
