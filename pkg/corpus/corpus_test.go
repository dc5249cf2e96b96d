package corpus

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/quotetok/pkg/domain"
)

type staticProvider struct {
	quotes []domain.Quote
	err    error
}

func (p staticProvider) GetQuotes(context.Context) ([]domain.Quote, error) { return p.quotes, p.err }

func TestCleanText(t *testing.T) {
	tbl := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"<p>Be <b>brave</b></p>", "Be brave"},
		{"  spaced \n\t out  ", "spaced out"},
		{"it&#39;s <i>fine</i> &amp; good", "it's fine & good"},
		{`<script>alert("x")</script>kept`, "kept"},
		{"", ""},
	}
	for _, tt := range tbl {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanText(tt.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	quotes := []domain.Quote{
		{ID: 1, Content: "<p>one</p>", Category: "Life"},
		{ID: 2, Content: "two"},
		{Content: "three", Category: " Stoic "},
		{ID: 4, Content: "<br/>  "},
	}
	res := normalize(quotes, "Misc")
	require.Len(t, res, 3, "empty content dropped")
	assert.Equal(t, domain.Quote{ID: 1, Content: "one", Category: "Life"}, res[0])
	assert.Equal(t, "Misc", res[1].Category)
	assert.Equal(t, "Stoic", res[2].Category)
	assert.Equal(t, quoteID("three"), res[2].ID)
	assert.Positive(t, res[2].ID)
}

func TestBuiltin(t *testing.T) {
	quotes, err := Builtin{}.GetQuotes(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(quotes), 20)

	ids := map[int64]bool{}
	for _, q := range quotes {
		assert.NotEmpty(t, q.Content)
		assert.NotEmpty(t, q.Category)
		assert.False(t, ids[q.ID], "duplicate id %d", q.ID)
		ids[q.ID] = true
	}
	assert.Contains(t, domain.Categories(quotes), "Stoic")
}

func TestFileProvider(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "quotes.json")
		data := `[{"id":10,"content":"Know thyself.","category":"Wisdom"},{"id":11,"content":"Carpe diem."}]`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		p := &FileProvider{Path: path, Category: "Latin"}
		quotes, err := p.GetQuotes(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []domain.Quote{
			{ID: 10, Content: "Know thyself.", Category: "Wisdom"},
			{ID: 11, Content: "Carpe diem.", Category: "Latin"},
		}, quotes)

		quotes, err = ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultCategory, quotes[1].Category)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := (&FileProvider{Path: filepath.Join(dir, "nope.json")}).GetQuotes(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read quotes file")
	})

	t.Run("bad json", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"not":"an array"}`), 0o600))
		_, err := (&FileProvider{Path: path}).GetQuotes(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode quotes")
	})
}

func TestHTTPProvider(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
			assert.Contains(t, r.Header.Get("Accept"), "application/json")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":1,"content":"<em>Stay</em> hungry","category":"Life"},{"id":2,"content":"Stay foolish"}]`))
		}))
		defer ts.Close()

		p := NewHTTPProvider(ts.URL, "Misc", time.Second, 3)
		quotes, err := p.GetQuotes(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []domain.Quote{
			{ID: 1, Content: "Stay hungry", Category: "Life"},
			{ID: 2, Content: "Stay foolish", Category: "Misc"},
		}, quotes)
	})

	t.Run("retries server errors", func(t *testing.T) {
		var calls atomic.Int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`[{"id":1,"content":"third time lucky","category":"Life"}]`))
		}))
		defer ts.Close()

		p := NewHTTPProvider(ts.URL, "", time.Second, 3)
		p.Delay = time.Millisecond
		quotes, err := p.GetQuotes(context.Background())
		require.NoError(t, err)
		assert.Len(t, quotes, 1)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("gives up after retries", func(t *testing.T) {
		var calls atomic.Int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer ts.Close()

		p := NewHTTPProvider(ts.URL, "", time.Second, 2)
		p.Delay = time.Millisecond
		_, err := p.GetQuotes(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
		assert.GreaterOrEqual(t, calls.Load(), int32(2))
	})

	t.Run("client error is not retried", func(t *testing.T) {
		var calls atomic.Int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer ts.Close()

		p := NewHTTPProvider(ts.URL, "", time.Second, 5)
		p.Delay = time.Millisecond
		_, err := p.GetQuotes(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("declared charset is decoded", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json; charset=iso-8859-1")
			_, _ = w.Write([]byte("[{\"id\":5,\"content\":\"Caf\xe9 au lait\",\"category\":\"Life\"}]"))
		}))
		defer ts.Close()

		quotes, err := NewHTTPProvider(ts.URL, "", time.Second, 1).GetQuotes(context.Background())
		require.NoError(t, err)
		require.Len(t, quotes, 1)
		assert.Equal(t, "Café au lait", quotes[0].Content)
	})

	t.Run("invalid payload", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>not json</html>`))
		}))
		defer ts.Close()

		_, err := NewHTTPProvider(ts.URL, "", time.Second, 1).GetQuotes(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode quotes")
	})
}

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
	<channel>
		<title>Daily Quote</title>
		<link>https://example.com</link>
		<description>quotes</description>
		<item>
			<title>Seneca</title>
			<link>https://example.com/q1</link>
			<description><![CDATA[<p>Luck is what happens when preparation meets opportunity.</p>]]></description>
			<category>Stoic</category>
			<guid>q1</guid>
		</item>
		<item>
			<title>Title only quote</title>
			<link>https://example.com/q2</link>
			<guid>q2</guid>
		</item>
		<item>
			<title>Confucius</title>
			<content:encoded><![CDATA[<p>It does not matter how slowly you go.</p>]]></content:encoded>
			<guid>q3</guid>
		</item>
	</channel>
</rss>`

func TestRSSProvider(t *testing.T) {
	t.Run("valid feed", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/rss+xml")
			_, _ = w.Write([]byte(testRSS))
		}))
		defer ts.Close()

		p := NewRSSProvider(ts.URL, "Feed", 5*time.Second)
		quotes, err := p.GetQuotes(context.Background())
		require.NoError(t, err)
		require.Len(t, quotes, 3)

		assert.Equal(t, "Luck is what happens when preparation meets opportunity.", quotes[0].Content)
		assert.Equal(t, "Stoic", quotes[0].Category)
		assert.Equal(t, quoteID("q1"), quotes[0].ID)

		assert.Equal(t, "Title only quote", quotes[1].Content)
		assert.Equal(t, "Feed", quotes[1].Category)

		assert.Equal(t, "It does not matter how slowly you go.", quotes[2].Content)
	})

	t.Run("server error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer ts.Close()

		_, err := NewRSSProvider(ts.URL, "", time.Second).GetQuotes(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse feed")
	})

	t.Run("invalid feed", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not a feed"))
		}))
		defer ts.Close()

		_, err := NewRSSProvider(ts.URL, "", time.Second).GetQuotes(context.Background())
		require.Error(t, err)
	})
}

func TestDBProvider(t *testing.T) {
	p := &DBProvider{Store: staticProvider{quotes: []domain.Quote{{ID: 3, Content: "stored"}}}, Category: "Imported"}
	quotes, err := p.GetQuotes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Quote{{ID: 3, Content: "stored", Category: "Imported"}}, quotes)

	p = &DBProvider{Store: staticProvider{err: errors.New("locked")}}
	_, err = p.GetQuotes(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read stored quotes: locked")
}

func TestMulti(t *testing.T) {
	first := staticProvider{quotes: []domain.Quote{{ID: 1, Content: "a"}, {ID: 2, Content: "b"}}}
	second := staticProvider{quotes: []domain.Quote{{ID: 2, Content: "dup"}, {ID: 3, Content: "c"}}}
	broken := staticProvider{err: errors.New("timeout")}

	t.Run("merged in source order", func(t *testing.T) {
		m := &Multi{Sources: []Source{{Name: "one", Provider: first}, {Name: "two", Provider: second}}, Concurrency: 2}
		quotes, err := m.GetQuotes(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []domain.Quote{{ID: 1, Content: "a"}, {ID: 2, Content: "b"}, {ID: 3, Content: "c"}}, quotes)
	})

	t.Run("failed source skipped", func(t *testing.T) {
		m := &Multi{Sources: []Source{{Name: "bad", Provider: broken}, {Name: "two", Provider: second}}}
		quotes, err := m.GetQuotes(context.Background())
		require.NoError(t, err)
		assert.Len(t, quotes, 2)
	})

	t.Run("all sources failed", func(t *testing.T) {
		m := &Multi{Sources: []Source{{Name: "bad", Provider: broken}, {Name: "worse", Provider: broken}}}
		_, err := m.GetQuotes(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "source bad: timeout")
		assert.Contains(t, err.Error(), "source worse: timeout")
	})

	t.Run("no sources", func(t *testing.T) {
		_, err := (&Multi{}).GetQuotes(context.Background())
		require.Error(t, err)
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		m := &Multi{Sources: []Source{{Name: "empty", Provider: staticProvider{}}}}
		quotes, err := m.GetQuotes(context.Background())
		require.NoError(t, err)
		assert.Empty(t, quotes)
	})
}
