package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/umputun/quotetok/pkg/config"
	"github.com/umputun/quotetok/pkg/corpus"
	"github.com/umputun/quotetok/pkg/engine"
	"github.com/umputun/quotetok/pkg/reaction"
	"github.com/umputun/quotetok/pkg/repository"
	"github.com/umputun/quotetok/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	Import string `long:"import" description:"import quotes from a JSON file into the database and exit"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	// .env values fill env-backed options, explicit environment wins
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor)
	lgr.Printf("[INFO] starting quotetok version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Printf("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	lgr.Printf("[INFO] shutdown complete")
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if cfg.LLM.APIKey != "" {
		setupLog(opts.Debug, opts.NoColor, cfg.LLM.APIKey)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	if opts.Import != "" {
		return importQuotes(ctx, repos.Quote, opts.Import)
	}

	reactions := reaction.NewStore(repos.Setting)
	if err := reactions.Load(ctx); err != nil {
		// unreadable keys stay empty and are not written until a later load succeeds
		lgr.Printf("[WARN] failed to load reactions: %v", err)
	}

	session := engine.NewSession(sessionParams(cfg, newProvider(cfg, repos.Quote), reactions))
	defer session.Close()

	if err := session.Load(ctx); err != nil {
		lgr.Printf("[WARN] initial corpus load failed, retry with POST /api/v1/reload: %v", err)
	} else {
		snap := session.Snapshot()
		lgr.Printf("[INFO] corpus loaded, categories: %v", snap.Categories)
	}

	if cfg.Corpus.Watch {
		if paths := filePaths(cfg.Corpus.Sources); len(paths) > 0 {
			go watchFiles(ctx, paths, session)
		}
	}

	srv := server.New(cfg, session, repos.Setting, revision, opts.Debug)
	return srv.Run(ctx)
}

func filePaths(sources []config.SourceConfig) []string {
	var res []string
	for _, src := range sources {
		if src.Type == config.SourceFile && src.Path != "" {
			res = append(res, src.Path)
		}
	}
	return res
}

// watchFiles reloads the corpus whenever one of the file sources changes
func watchFiles(ctx context.Context, paths []string, session *engine.Session) {
	w := &corpus.Watcher{
		Paths:    paths,
		Debounce: 200 * time.Millisecond,
		OnChange: func() {
			if err := session.Load(ctx); err != nil {
				lgr.Printf("[WARN] reload after file change failed: %v", err)
				return
			}
			lgr.Printf("[INFO] corpus reloaded after file change")
		},
	}
	lgr.Printf("[INFO] watching %d quote files for changes", len(paths))
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lgr.Printf("[WARN] file watcher stopped: %v", err)
	}
}

// newProvider builds the merged corpus from configured sources, wrapped with the LLM categorizer if enabled
func newProvider(cfg *config.Config, store corpus.QuoteStore) engine.Provider {
	// with the categorizer enabled uncategorized quotes stay empty so the LLM can fill them
	fallback := corpus.DefaultCategory
	if cfg.LLM.Enabled {
		fallback = ""
	}

	sources := make([]corpus.Source, 0, len(cfg.Corpus.Sources))
	for i, src := range cfg.Corpus.Sources {
		category := src.Category
		if category == "" {
			category = fallback
		}
		name := fmt.Sprintf("%s#%d", src.Type, i)

		var p corpus.Provider
		switch src.Type {
		case config.SourceBuiltin:
			p = corpus.Builtin{}
		case config.SourceFile:
			p = &corpus.FileProvider{Path: src.Path, Category: category}
		case config.SourceHTTP:
			p = corpus.NewHTTPProvider(src.URL, category, cfg.Corpus.Timeout, cfg.Corpus.Retries)
		case config.SourceRSS:
			p = corpus.NewRSSProvider(src.URL, category, cfg.Corpus.Timeout)
		case config.SourceDB:
			p = &corpus.DBProvider{Store: store, Category: category}
		default:
			lgr.Printf("[WARN] skip unknown corpus source %q", src.Type)
			continue
		}
		lgr.Printf("[DEBUG] corpus source %s %s%s", name, src.URL, src.Path)
		sources = append(sources, corpus.Source{Name: name, Provider: p})
	}

	multi := &corpus.Multi{Sources: sources, Concurrency: 4}
	if !cfg.LLM.Enabled {
		return multi
	}
	lgr.Printf("[INFO] llm categorizer enabled, model %s", cfg.LLM.Model)
	return corpus.NewCategorizer(multi, cfg.LLM)
}

func sessionParams(cfg *config.Config, provider engine.Provider, reactions engine.Reactions) engine.SessionParams {
	swipe := engine.DefaultSwipeConfig()
	swipe.Threshold = cfg.Feed.SwipeThreshold
	swipe.OverlayStart = cfg.Feed.OverlayStart
	swipe.OverlayFull = cfg.Feed.OverlayFull
	swipe.OverlayMax = cfg.Feed.OverlayMax

	params := engine.SessionParams{
		Provider:           provider,
		Reactions:          reactions,
		BatchSize:          cfg.Feed.BatchSize,
		LoadDelay:          cfg.Feed.LoadDelay,
		AutoscrollInterval: cfg.Feed.AutoscrollInterval,
		PageHeight:         cfg.Server.PageHeight,
		Swipe:              swipe,
	}
	if cfg.Feed.Seed != 0 {
		params.Rand = rand.New(rand.NewPCG(cfg.Feed.Seed, cfg.Feed.Seed)) //nolint:gosec // shuffle order is not security sensitive
	}
	return params
}

// importQuotes seeds the quotes table from a JSON file
func importQuotes(ctx context.Context, repo *repository.QuoteRepository, path string) error {
	quotes, err := corpus.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read quotes: %w", err)
	}
	if err := repo.ImportQuotes(ctx, quotes); err != nil {
		return fmt.Errorf("failed to import quotes: %w", err)
	}
	total, err := repo.CountQuotes(ctx)
	if err != nil {
		return fmt.Errorf("failed to count quotes: %w", err)
	}
	lgr.Printf("[INFO] imported %d quotes from %s, %d stored", len(quotes), path, total)
	return nil
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
