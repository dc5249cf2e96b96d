package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configPath := writeConfig(t, `
server:
  listen: ":9090"
  timeout: 45s
  page_height: 600

feed:
  batch_size: 10
  load_delay: 250ms
  autoscroll_interval: 2s
  swipe_threshold: 80
  seed: 42

corpus:
  sources:
    - type: file
      path: /tmp/quotes.json
    - type: rss
      url: https://example.com/quotes.xml
      category: Daily
`)

		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 600, cfg.Server.PageHeight)
		assert.Equal(t, 10, cfg.Feed.BatchSize)
		assert.Equal(t, 250*time.Millisecond, cfg.Feed.LoadDelay)
		assert.Equal(t, 2*time.Second, cfg.Feed.AutoscrollInterval)
		assert.InDelta(t, 80.0, cfg.Feed.SwipeThreshold, 0.001)
		assert.Equal(t, uint64(42), cfg.Feed.Seed)

		require.Len(t, cfg.Corpus.Sources, 2)
		assert.Equal(t, SourceFile, cfg.Corpus.Sources[0].Type)
		assert.Equal(t, "/tmp/quotes.json", cfg.Corpus.Sources[0].Path)
		assert.Equal(t, SourceRSS, cfg.Corpus.Sources[1].Type)
		assert.Equal(t, "Daily", cfg.Corpus.Sources[1].Category)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "server:\n  listen: \":8080\"\n"))
		require.NoError(t, err)

		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 800, cfg.Server.PageHeight)
		assert.Equal(t, "http://localhost:8080", cfg.Server.BaseURL)
		assert.Equal(t, 5, cfg.Feed.BatchSize)
		assert.Equal(t, 500*time.Millisecond, cfg.Feed.LoadDelay)
		assert.Equal(t, 4*time.Second, cfg.Feed.AutoscrollInterval)
		assert.InDelta(t, 100.0, cfg.Feed.SwipeThreshold, 0.001)
		assert.InDelta(t, 10.0, cfg.Feed.OverlayStart, 0.001)
		assert.InDelta(t, 150.0, cfg.Feed.OverlayFull, 0.001)
		assert.InDelta(t, 0.8, cfg.Feed.OverlayMax, 0.001)
		assert.Equal(t, []SourceConfig{{Type: SourceBuiltin}}, cfg.Corpus.Sources)
		assert.Equal(t, 3, cfg.Corpus.Retries)
		assert.False(t, cfg.Corpus.Watch)
		assert.False(t, cfg.LLM.Enabled)
		assert.Equal(t, 500*time.Millisecond, cfg.LLM.RequestInterval)
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("QUOTETOK_TEST_KEY", "secret-key")
		cfg, err := Load(writeConfig(t, `
llm:
  enabled: true
  endpoint: http://localhost:11434/v1
  model: llama3
  api_key: ${QUOTETOK_TEST_KEY}
`))
		require.NoError(t, err)
		assert.Equal(t, "secret-key", cfg.LLM.APIKey)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "invalid: yaml: content: ["))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{name: "valid defaults", modify: func(c *Config) {}},
		{name: "short server timeout", modify: func(c *Config) { c.Server.Timeout = time.Millisecond }, errMsg: "server timeout"},
		{name: "negative batch", modify: func(c *Config) { c.Feed.BatchSize = -1 }, errMsg: "batch_size"},
		{name: "fast autoscroll", modify: func(c *Config) { c.Feed.AutoscrollInterval = time.Millisecond }, errMsg: "autoscroll_interval"},
		{name: "negative threshold", modify: func(c *Config) { c.Feed.SwipeThreshold = -5 }, errMsg: "swipe_threshold"},
		{name: "overlay range", modify: func(c *Config) { c.Feed.OverlayFull = 5 }, errMsg: "overlay_full"},
		{name: "overlay cap", modify: func(c *Config) { c.Feed.OverlayMax = 1.5 }, errMsg: "overlay_max"},
		{name: "file without path", modify: func(c *Config) { c.Corpus.Sources = []SourceConfig{{Type: SourceFile}} }, errMsg: "path is required"},
		{name: "rss without url", modify: func(c *Config) { c.Corpus.Sources = []SourceConfig{{Type: SourceRSS}} }, errMsg: "url is required"},
		{name: "unknown source", modify: func(c *Config) { c.Corpus.Sources = []SourceConfig{{Type: "ftp"}} }, errMsg: "unknown type"},
		{name: "llm without endpoint", modify: func(c *Config) { c.LLM.Enabled = true; c.LLM.Model = "m" }, errMsg: "llm.endpoint"},
		{name: "llm without model", modify: func(c *Config) { c.LLM.Enabled = true; c.LLM.Endpoint = "http://x" }, errMsg: "llm.model"},
		{name: "bad temperature", modify: func(c *Config) { c.LLM.Temperature = 3 }, errMsg: "temperature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.SetDefaults()
			tt.modify(cfg)
			err := validate(cfg)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_Getters(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()
	cfg.Server.Listen = ":9090"

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":9090", listen)
	assert.Equal(t, 30*time.Second, timeout)
	assert.Equal(t, 5, cfg.GetFeedConfig().BatchSize)
	assert.Equal(t, 500, cfg.GetLLMConfig().MaxTokens)
	assert.Equal(t, "http://localhost:8080", cfg.GetBaseURL())
	assert.Equal(t, []SourceConfig{{Type: SourceBuiltin}}, cfg.GetCorpusSources())
}
