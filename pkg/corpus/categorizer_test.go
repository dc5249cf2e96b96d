package corpus

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/quotetok/pkg/config"
	"github.com/umputun/quotetok/pkg/domain"
)

func llmServer(t *testing.T, answers ...string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		n := int(calls.Add(1)) - 1
		if n >= len(answers) {
			n = len(answers) - 1
		}
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: answers[n]}}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(ts.Close)
	return ts, &calls
}

func testLLMConfig(url string) config.LLMConfig {
	return config.LLMConfig{
		Enabled:     true,
		Endpoint:    url + "/v1",
		APIKey:      "test-key",
		Model:       "gpt-4o-mini",
		Temperature: 0.3,
		MaxTokens:   500,
		Categories:  []string{"Wisdom", "Humor"},
	}
}

func TestCategorizer_FillsMissing(t *testing.T) {
	ts, calls := llmServer(t, `Sure:
[{"id": 2, "category": "Humor"}, {"id": 3, "category": "Courage"}, {"id": 99, "category": "Ignored"}]`)

	inner := staticProvider{quotes: []domain.Quote{
		{ID: 1, Content: "known", Category: "Life"},
		{ID: 2, Content: "funny"},
		{ID: 3, Content: "brave"},
	}}
	c := NewCategorizer(inner, testLLMConfig(ts.URL))

	quotes, err := c.GetQuotes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Quote{
		{ID: 1, Content: "known", Category: "Life"},
		{ID: 2, Content: "funny", Category: "Humor"},
		{ID: 3, Content: "brave", Category: "Courage"},
	}, quotes)
	assert.Equal(t, int32(1), calls.Load())

	// answers are cached, no second request
	_, err = c.GetQuotes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCategorizer_NothingToDo(t *testing.T) {
	ts, calls := llmServer(t, `[]`)
	inner := staticProvider{quotes: []domain.Quote{{ID: 1, Content: "x", Category: "Life"}}}
	quotes, err := NewCategorizer(inner, testLLMConfig(ts.URL)).GetQuotes(context.Background())
	require.NoError(t, err)
	assert.Len(t, quotes, 1)
	assert.Zero(t, calls.Load())
}

func TestCategorizer_RetriesBadJSON(t *testing.T) {
	ts, calls := llmServer(t, "no json here", `[{"id": 5, "category": "Wisdom"}]`)
	inner := staticProvider{quotes: []domain.Quote{{ID: 5, Content: "deep"}}}
	quotes, err := NewCategorizer(inner, testLLMConfig(ts.URL)).GetQuotes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Wisdom", quotes[0].Category)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCategorizer_RequestInterval(t *testing.T) {
	ts, calls := llmServer(t, "garbage", "still garbage", `[{"id": 5, "category": "Wisdom"}]`)
	cfg := testLLMConfig(ts.URL)
	cfg.RequestInterval = 50 * time.Millisecond
	inner := staticProvider{quotes: []domain.Quote{{ID: 5, Content: "deep"}}}

	st := time.Now()
	quotes, err := NewCategorizer(inner, cfg).GetQuotes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Wisdom", quotes[0].Category)
	assert.Equal(t, int32(3), calls.Load())
	assert.GreaterOrEqual(t, time.Since(st), 90*time.Millisecond, "second and third requests wait for the limiter")
}

func TestCategorizer_FallbackOnFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":{"message":"boom"}}`)
	}))
	defer ts.Close()

	inner := staticProvider{quotes: []domain.Quote{{ID: 7, Content: "lonely"}}}
	quotes, err := NewCategorizer(inner, testLLMConfig(ts.URL)).GetQuotes(context.Background())
	require.NoError(t, err, "llm failure never fails the load")
	assert.Equal(t, DefaultCategory, quotes[0].Category)
}

func TestCategorizer_ProviderError(t *testing.T) {
	ts, _ := llmServer(t, `[]`)
	c := NewCategorizer(staticProvider{err: errors.New("offline")}, testLLMConfig(ts.URL))
	_, err := c.GetQuotes(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offline")
}

func TestParseCategories(t *testing.T) {
	quotes := []domain.Quote{{ID: 1}, {ID: 2}}

	res, err := parseCategories(`[{"id":1,"category":" <b>Life</b> "},{"id":2,"category":""}]`, quotes)
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{1: "Life"}, res)

	_, err = parseCategories("nothing", quotes)
	assert.ErrorIs(t, err, errNoJSON)

	_, err = parseCategories("[not json]", quotes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse json array")
}

func TestBuildCategorizePrompt(t *testing.T) {
	p := buildCategorizePrompt([]domain.Quote{{ID: 42, Content: "the answer"}}, []string{"Life", "Wisdom"})
	assert.Contains(t, p, "Available categories:\nLife, Wisdom")
	assert.Contains(t, p, "id: 42\nquote: the answer")
}
