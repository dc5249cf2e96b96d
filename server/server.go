// Package server exposes the feed session over HTTP: the feed snapshot, navigation, gestures and reactions,
// the saved-quotes dashboard, theme and RSS export.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/go-playground/validator/v10"

	"github.com/umputun/quotetok/pkg/config"
	"github.com/umputun/quotetok/pkg/domain"
	"github.com/umputun/quotetok/pkg/engine"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/feed.go -pkg mocks -skip-ensure -fmt goimports . Feed
//go:generate moq -out mocks/settings.go -pkg mocks -skip-ensure -fmt goimports . Settings

// Server represents HTTP server instance
type Server struct {
	config   ConfigProvider
	feed     Feed
	settings Settings
	version  string
	debug    bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
	validate   *validator.Validate
}

// Feed is the feed session driven by the presenting surface
type Feed interface {
	Load(ctx context.Context) error
	Status() engine.Status
	Snapshot() engine.Snapshot
	SetCategory(category string) error
	RequestMore() bool
	Scroll(delta int)
	Next()
	Prev()
	StartAutoscroll() bool
	StopAutoscroll() bool
	Gesture(ctx context.Context, cardID int64, ev engine.GestureEvent) (engine.Reaction, error)
	ToggleLike(ctx context.Context, id int64) (engine.Reaction, error)
	ToggleSave(ctx context.Context, id int64) (engine.Reaction, error)
	Card(id int64) (domain.Card, error)
	Saved() []domain.Quote
	RemoveSaved(ctx context.Context, id int64) (removed bool, warning string)
}

// Settings is the key-value store holding the theme
type Settings interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetBaseURL() string
	GetCorpusSources() []config.SourceConfig
}

// New initializes a new server instance
func New(cfg ConfigProvider, feed Feed, settings Settings, version string, debug bool) *Server {
	s := &Server{
		config:   cfg,
		feed:     feed,
		settings: settings,
		version:  version,
		debug:    debug,
		router:   routegroup.New(http.NewServeMux()),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	httpServer := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("quotetok", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024))
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		// feed session
		r.HandleFunc("GET /feed", s.feedHandler)
		r.HandleFunc("POST /reload", s.reloadHandler)
		r.HandleFunc("POST /category/{name}", s.categoryHandler)
		r.HandleFunc("POST /more", s.moreHandler)

		// navigation
		r.HandleFunc("POST /scroll", s.scrollHandler)
		r.HandleFunc("POST /next", s.nextHandler)
		r.HandleFunc("POST /prev", s.prevHandler)
		r.HandleFunc("POST /autoscroll/{action}", s.autoscrollHandler)

		// reactions
		r.HandleFunc("POST /gesture/{id}", s.gestureHandler)
		r.HandleFunc("POST /quotes/{id}/{action}", s.reactionHandler)
		r.HandleFunc("GET /cards/{id}", s.cardHandler)

		// saved quotes dashboard
		r.HandleFunc("GET /saved", s.savedHandler)
		r.HandleFunc("DELETE /saved/{id}", s.removeSavedHandler)

		// theme
		r.HandleFunc("GET /theme", s.themeHandler)
		r.HandleFunc("POST /theme/toggle", s.themeToggleHandler)
	})

	s.router.HandleFunc("GET /rss/saved", s.rssSavedHandler)
	s.router.HandleFunc("GET /opml", s.opmlHandler)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, rest.JSON{"error": errMsg})
}
