package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// corpus source types
const (
	SourceBuiltin = "builtin"
	SourceFile    = "file"
	SourceHTTP    = "http"
	SourceRSS     = "rss"
	SourceDB      = "db"
)

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database DatabaseConfig `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Feed     FeedConfig     `yaml:"feed" json:"feed" jsonschema:"description=Feed session engine configuration"`
	Corpus   CorpusConfig   `yaml:"corpus" json:"corpus" jsonschema:"description=Quote corpus sources"`
	LLM      LLMConfig      `yaml:"llm" json:"llm" jsonschema:"description=Optional LLM categorizer for quotes without category"`
}

// ServerConfig holds http server settings
type ServerConfig struct {
	Listen     string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	BaseURL    string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for RSS export links"`
	PageHeight int           `yaml:"page_height" json:"page_height" jsonschema:"default=800,minimum=1,description=Viewport height of the presenting surface"`
}

// DatabaseConfig holds sqlite settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:quotetok.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// FeedConfig holds batching, autoscroll and swipe settings
type FeedConfig struct {
	BatchSize          int           `yaml:"batch_size" json:"batch_size" jsonschema:"default=5,minimum=1,description=Number of quotes materialized per batch"`
	LoadDelay          time.Duration `yaml:"load_delay" json:"load_delay" jsonschema:"default=500ms,description=Latency before the next batch is appended"`
	AutoscrollInterval time.Duration `yaml:"autoscroll_interval" json:"autoscroll_interval" jsonschema:"default=4s,description=Autoscroll tick interval"`
	SwipeThreshold     float64       `yaml:"swipe_threshold" json:"swipe_threshold" jsonschema:"default=100,description=Horizontal displacement committing a swipe"`
	OverlayStart       float64       `yaml:"overlay_start" json:"overlay_start" jsonschema:"default=10,description=Displacement where the overlay starts to fade in"`
	OverlayFull        float64       `yaml:"overlay_full" json:"overlay_full" jsonschema:"default=150,description=Displacement where the overlay reaches its cap"`
	OverlayMax         float64       `yaml:"overlay_max" json:"overlay_max" jsonschema:"default=0.8,minimum=0,maximum=1,description=Overlay opacity cap"`
	Seed               uint64        `yaml:"seed" json:"seed" jsonschema:"description=Shuffle seed, 0 for random"`
}

// SourceConfig describes a single corpus source
type SourceConfig struct {
	Type     string `yaml:"type" json:"type" jsonschema:"enum=builtin,enum=file,enum=http,enum=rss,enum=db,description=Source type"`
	Path     string `yaml:"path" json:"path" jsonschema:"description=File path for file sources"`
	URL      string `yaml:"url" json:"url" jsonschema:"description=URL for http and rss sources"`
	Category string `yaml:"category" json:"category" jsonschema:"description=Category assigned to quotes without one"`
}

// CorpusConfig holds corpus sources
type CorpusConfig struct {
	Sources []SourceConfig `yaml:"sources" json:"sources" jsonschema:"description=Corpus sources merged in order"`
	Timeout time.Duration  `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Network source timeout"`
	Retries int            `yaml:"retries" json:"retries" jsonschema:"default=3,minimum=1,description=Network source attempts"`
	Watch   bool           `yaml:"watch" json:"watch" jsonschema:"default=false,description=Reload the feed when a file source changes"`
}

// LLMConfig holds LLM configuration for quote categorization
type LLMConfig struct {
	Enabled     bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable LLM categorization"`
	Endpoint    string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey      string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model       string        `yaml:"model" json:"model" jsonschema:"description=Model name (e.g. gpt-4o-mini or llama3)"`
	Temperature float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for response generation"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=500,description=Maximum tokens in response"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	Categories  []string      `yaml:"categories" json:"categories" jsonschema:"description=Preferred category names"`

	RequestInterval time.Duration `yaml:"request_interval" json:"request_interval" jsonschema:"default=500ms,description=Minimum interval between LLM requests"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.SetDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// SetDefaults fills zero values with defaults
func (c *Config) SetDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:8080"
	}
	if c.Server.PageHeight == 0 {
		c.Server.PageHeight = 800
	}

	if c.Database.DSN == "" {
		c.Database.DSN = "file:quotetok.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	if c.Feed.BatchSize == 0 {
		c.Feed.BatchSize = 5
	}
	if c.Feed.LoadDelay == 0 {
		c.Feed.LoadDelay = 500 * time.Millisecond
	}
	if c.Feed.AutoscrollInterval == 0 {
		c.Feed.AutoscrollInterval = 4 * time.Second
	}
	if c.Feed.SwipeThreshold == 0 {
		c.Feed.SwipeThreshold = 100
	}
	if c.Feed.OverlayStart == 0 {
		c.Feed.OverlayStart = 10
	}
	if c.Feed.OverlayFull == 0 {
		c.Feed.OverlayFull = 150
	}
	if c.Feed.OverlayMax == 0 {
		c.Feed.OverlayMax = 0.8
	}

	if len(c.Corpus.Sources) == 0 {
		c.Corpus.Sources = []SourceConfig{{Type: SourceBuiltin}}
	}
	if c.Corpus.Timeout == 0 {
		c.Corpus.Timeout = 30 * time.Second
	}
	if c.Corpus.Retries == 0 {
		c.Corpus.Retries = 3
	}

	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.3
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 500
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 30 * time.Second
	}
	if c.LLM.RequestInterval == 0 {
		c.LLM.RequestInterval = 500 * time.Millisecond
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Server.PageHeight < 1 {
		return fmt.Errorf("server.page_height must be positive")
	}

	if cfg.Feed.BatchSize < 1 {
		return fmt.Errorf("feed.batch_size must be at least 1")
	}
	if cfg.Feed.LoadDelay < 0 {
		return fmt.Errorf("feed.load_delay must be non-negative")
	}
	if cfg.Feed.AutoscrollInterval < 100*time.Millisecond {
		return fmt.Errorf("feed.autoscroll_interval must be at least 100ms")
	}
	if cfg.Feed.SwipeThreshold <= 0 {
		return fmt.Errorf("feed.swipe_threshold must be positive")
	}
	if cfg.Feed.OverlayStart < 0 || cfg.Feed.OverlayFull <= cfg.Feed.OverlayStart {
		return fmt.Errorf("feed.overlay_full must be greater than feed.overlay_start")
	}
	if cfg.Feed.OverlayMax <= 0 || cfg.Feed.OverlayMax > 1 {
		return fmt.Errorf("feed.overlay_max must be in (0, 1]")
	}

	for i, src := range cfg.Corpus.Sources {
		switch src.Type {
		case SourceBuiltin, SourceDB:
		case SourceFile:
			if src.Path == "" {
				return fmt.Errorf("corpus.sources[%d]: path is required for file source", i)
			}
		case SourceHTTP, SourceRSS:
			if src.URL == "" {
				return fmt.Errorf("corpus.sources[%d]: url is required for %s source", i, src.Type)
			}
		default:
			return fmt.Errorf("corpus.sources[%d]: unknown type %q", i, src.Type)
		}
	}
	if cfg.Corpus.Retries < 1 {
		return fmt.Errorf("corpus.retries must be at least 1")
	}

	if cfg.LLM.Enabled {
		if cfg.LLM.Endpoint == "" {
			return fmt.Errorf("llm.endpoint is required")
		}
		if cfg.LLM.Model == "" {
			return fmt.Errorf("llm.model is required")
		}
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetFeedConfig returns feed engine configuration
func (c *Config) GetFeedConfig() FeedConfig {
	return c.Feed
}

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.LLM
}

// GetBaseURL returns the public base URL used in exported links
func (c *Config) GetBaseURL() string {
	return c.Server.BaseURL
}

// GetCorpusSources returns configured corpus sources
func (c *Config) GetCorpusSources() []SourceConfig {
	return c.Corpus.Sources
}
