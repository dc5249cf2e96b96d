// Package engine implements the feed session: shuffled batch ordering per category, autoscroll,
// the swipe gesture state machine and the snapping viewport the feed is presented on.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/quotetok/pkg/domain"
)

//go:generate moq -out mocks/provider.go -pkg mocks -skip-ensure -fmt goimports . Provider

// scrollEndThreshold is the distance to the end of the surface at which manual scrolling loads the next batch
const scrollEndThreshold = 5

// session errors
var (
	ErrCorpusUnavailable = errors.New("corpus unavailable")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrQuoteNotVisible   = errors.New("quote not in visible window")
)

// Provider supplies the full quote corpus
type Provider interface {
	GetQuotes(ctx context.Context) ([]domain.Quote, error)
}

// Reactions is the user reaction store. Toggle errors are persistence failures, the toggle itself is kept.
type Reactions interface {
	ToggleLike(ctx context.Context, id int64) (bool, error)
	ToggleSave(ctx context.Context, q domain.Quote) (bool, error)
	Remove(ctx context.Context, id int64) (bool, error)
	IsLiked(id int64) bool
	IsSaved(id int64) bool
	Saved() []domain.Quote
}

// Status of the session feed
type Status string

// session statuses
const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusEmpty   Status = "empty"
	StatusError   Status = "error"
)

// SessionParams defines session collaborators and timing
type SessionParams struct {
	Provider           Provider
	Reactions          Reactions
	BatchSize          int
	LoadDelay          time.Duration
	AutoscrollInterval time.Duration
	PageHeight         int
	Swipe              SwipeConfig
	Rand               *rand.Rand // shuffle source, random if nil
	AfterFunc          AfterFunc  // batch load scheduler, time.AfterFunc if nil
}

// Snapshot is the presentable state of the feed
type Snapshot struct {
	Status         Status        `json:"status"`
	Error          string        `json:"error,omitempty"`
	Category       string        `json:"category"`
	Categories     []string      `json:"categories"`
	Cards          []domain.Card `json:"cards"`
	HasMore        bool          `json:"has_more"`
	Loading        bool          `json:"loading"`
	Offset         int           `json:"offset"`
	Position       int           `json:"position"`
	Extent         int           `json:"extent"`
	ViewportHeight int           `json:"viewport_height"`
	Autoscroll     bool          `json:"autoscroll"`
	Generation     uint64        `json:"generation"`
	Drag           Visual        `json:"drag"`
	DragCard       int64         `json:"drag_card,omitempty"`
}

// Reaction is the result of a reaction toggle or a gesture event
type Reaction struct {
	Card    domain.Card `json:"card"`
	Outcome Outcome     `json:"outcome,omitempty"`
	Visual  Visual      `json:"visual"`
	Warning string      `json:"warning,omitempty"` // durable write failed, the toggle is kept
}

// Session is the single owner of feed state for one reader. It wires the batcher, the viewport,
// the autoscroll timer and the gesture recognizer, and applies committed reactions.
type Session struct {
	provider   Provider
	reactions  Reactions
	batcher    *Batcher
	viewport   *Viewport
	autoscroll *Autoscroll
	recognizer *Recognizer
	swipe      SwipeConfig

	ctx    context.Context
	cancel context.CancelFunc

	loadMu sync.Mutex // serializes corpus loads

	mu         sync.RWMutex
	status     Status
	loadErr    error
	categories []string
}

// NewSession makes a session with an empty corpus, call Load to fetch quotes
func NewSession(params SessionParams) *Session {
	if params.PageHeight <= 0 {
		params.PageHeight = 800
	}
	if params.Swipe == (SwipeConfig{}) {
		params.Swipe = DefaultSwipeConfig()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		provider:   params.Provider,
		reactions:  params.Reactions,
		swipe:      params.Swipe,
		recognizer: NewRecognizer(params.Swipe),
		ctx:        ctx,
		cancel:     cancel,
		status:     StatusLoading,
		categories: []string{domain.CategoryAll},
	}
	s.batcher = NewBatcher(BatcherOpts{
		BatchSize: params.BatchSize,
		LoadDelay: params.LoadDelay,
		Rand:      params.Rand,
		AfterFunc: params.AfterFunc,
		OnAppend: func(gen uint64, visible int) {
			lgr.Printf("[DEBUG] batch appended, generation %d, %d visible", gen, visible)
		},
	})
	s.viewport = NewViewport(params.PageHeight, s.batcher.Visible)
	s.autoscroll = NewAutoscroll(params.AutoscrollInterval, s.autoTick)
	return s
}

// Load fetches the corpus and rebuilds the feed. A provider failure leaves the feed empty in the error state,
// retry is another Load.
func (s *Session) Load(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.mu.Lock()
	s.status = StatusLoading
	s.loadErr = nil
	s.mu.Unlock()

	quotes, err := s.provider.GetQuotes(ctx)
	s.recognizer.Reset()
	if err != nil {
		s.batcher.SetQuotes(nil)
		s.viewport.ScrollTo(0)
		s.mu.Lock()
		s.status = StatusError
		s.loadErr = err
		s.categories = []string{domain.CategoryAll}
		s.mu.Unlock()
		lgr.Printf("[WARN] can't load quotes: %v", err)
		return fmt.Errorf("%w: %w", ErrCorpusUnavailable, err)
	}

	s.batcher.SetQuotes(quotes)
	s.viewport.ScrollTo(0)
	s.mu.Lock()
	s.status = StatusReady
	s.categories = domain.Categories(quotes)
	s.mu.Unlock()
	lgr.Printf("[INFO] loaded %d quotes in %d categories", len(quotes), len(s.Categories())-1)
	return nil
}

// Status returns the feed status, an empty working set is reported as StatusEmpty
func (s *Session) Status() Status {
	s.mu.RLock()
	status := s.status
	s.mu.RUnlock()
	if status == StatusReady && s.batcher.Visible() == 0 {
		return StatusEmpty
	}
	return status
}

// Categories returns "All" followed by the distinct corpus categories
func (s *Session) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories)
}

// SetCategory reshuffles the feed for category and scrolls back to the start.
// Waits for an in-flight Load so the category is checked against the corpus it is applied to.
func (s *Session) SetCategory(category string) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if !slices.Contains(s.Categories(), category) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	s.recognizer.Reset()
	s.batcher.SetCategory(category)
	s.viewport.ScrollTo(0)
	return nil
}

// RequestMore asks for the next batch, returns false if nothing was scheduled
func (s *Session) RequestMore() bool {
	return s.batcher.RequestMore()
}

// Snapshot returns the current presentable state
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	errMsg := ""
	if s.loadErr != nil {
		errMsg = s.loadErr.Error()
	}
	categories := slices.Clone(s.categories)
	s.mu.RUnlock()

	drag, dragCard := s.recognizer.State()
	return Snapshot{
		Status:         s.Status(),
		Error:          errMsg,
		Category:       s.batcher.Category(),
		Categories:     categories,
		Cards:          s.cards(),
		HasMore:        s.batcher.HasMore(),
		Loading:        s.batcher.Loading(),
		Offset:         s.viewport.Offset(),
		Position:       s.viewport.Position(),
		Extent:         s.viewport.Extent(),
		ViewportHeight: s.viewport.ViewportHeight(),
		Autoscroll:     s.autoscroll.Running(),
		Generation:     s.batcher.Generation(),
		Drag:           s.swipe.Visual(drag),
		DragCard:       dragCard,
	}
}

// Card returns the visible card with the given quote id
func (s *Session) Card(id int64) (domain.Card, error) {
	for i, q := range s.batcher.Window() {
		if q.ID == id {
			return s.card(i, q), nil
		}
	}
	return domain.Card{}, fmt.Errorf("%w: %d", ErrQuoteNotVisible, id)
}

// ToggleLike flips the like of a visible quote, used by explicit controls
func (s *Session) ToggleLike(ctx context.Context, id int64) (Reaction, error) {
	card, err := s.Card(id)
	if err != nil {
		return Reaction{}, err
	}
	return s.applyLike(ctx, card), nil
}

// ToggleSave flips the save of a visible quote, used by explicit controls
func (s *Session) ToggleSave(ctx context.Context, id int64) (Reaction, error) {
	card, err := s.Card(id)
	if err != nil {
		return Reaction{}, err
	}
	return s.applySave(ctx, card), nil
}

// RemoveSaved deletes a quote from the saved list. Returns false if it was not saved,
// and a warning if the removal was not persisted.
func (s *Session) RemoveSaved(ctx context.Context, id int64) (removed bool, warning string) {
	removed, err := s.reactions.Remove(ctx, id)
	if err != nil {
		return removed, err.Error()
	}
	return removed, ""
}

// Saved returns saved quotes in save order
func (s *Session) Saved() []domain.Quote {
	return s.reactions.Saved()
}

// Gesture feeds a pointer or touch event for cardID into the recognizer. A committed like or save is applied
// to the captured card and the feed advances by one position. Pressing on a card stops autoscroll.
func (s *Session) Gesture(ctx context.Context, cardID int64, ev GestureEvent) (Reaction, error) {
	if ev.Target == TargetControl {
		return Reaction{Visual: s.recognizer.Visual()}, nil
	}
	if ev.Kind == EventDown {
		if _, err := s.Card(cardID); err != nil {
			return Reaction{}, err
		}
		s.StopAutoscroll()
	}

	outcome, target := s.recognizer.Handle(cardID, ev)
	res := Reaction{Outcome: outcome, Visual: s.recognizer.Visual()}
	if outcome != OutcomeLike && outcome != OutcomeSave {
		if card, err := s.Card(target); err == nil {
			res.Card = card
		}
		return res, nil
	}

	card, err := s.Card(target)
	if err != nil {
		return res, err
	}
	var applied Reaction
	if outcome == OutcomeLike {
		applied = s.applyLike(ctx, card)
	} else {
		applied = s.applySave(ctx, card)
	}
	res.Card, res.Warning = applied.Card, applied.Warning
	s.advance()
	lgr.Printf("[DEBUG] swipe %s committed for quote %d", outcome, card.ID)
	return res, nil
}

// StartAutoscroll starts advancing the feed on every interval, returns false if already running
func (s *Session) StartAutoscroll() bool {
	return s.autoscroll.Start(s.ctx)
}

// StopAutoscroll stops autoscroll, returns false if it was not running
func (s *Session) StopAutoscroll() bool {
	return s.autoscroll.Stop()
}

// Scroll moves the viewport by delta as manual input, stopping autoscroll.
// Reaching the end of the surface requests the next batch.
func (s *Session) Scroll(delta int) {
	s.StopAutoscroll()
	s.viewport.ScrollBy(delta)
	if remaining(s.viewport) < scrollEndThreshold {
		s.batcher.RequestMore()
	}
}

// Next advances one card as manual input
func (s *Session) Next() {
	s.StopAutoscroll()
	s.advance()
}

// Prev rewinds one card as manual input
func (s *Session) Prev() {
	s.StopAutoscroll()
	s.viewport.ScrollBy(-s.viewport.ViewportHeight())
}

// Close stops autoscroll and drops an active gesture
func (s *Session) Close() {
	s.autoscroll.Stop()
	s.cancel()
	s.recognizer.Reset()
}

// autoTick wraps to the start when the fully loaded feed is scrolled to the end, otherwise advances
func (s *Session) autoTick() {
	if remaining(s.viewport) <= 0 && !s.batcher.HasMore() {
		s.viewport.ScrollTo(0)
		return
	}
	s.advance()
}

// advance scrolls one viewport forward and requests more once the last visible card is reached
func (s *Session) advance() {
	s.viewport.ScrollBy(s.viewport.ViewportHeight())
	if remaining(s.viewport) < s.viewport.ViewportHeight() {
		s.batcher.RequestMore()
	}
}

func (s *Session) applyLike(ctx context.Context, card domain.Card) Reaction {
	liked, err := s.reactions.ToggleLike(ctx, card.ID)
	card.Liked = liked
	res := Reaction{Card: card, Outcome: OutcomeLike}
	if err != nil {
		res.Warning = err.Error()
	}
	return res
}

func (s *Session) applySave(ctx context.Context, card domain.Card) Reaction {
	saved, err := s.reactions.ToggleSave(ctx, card.Quote)
	card.Saved = saved
	res := Reaction{Card: card, Outcome: OutcomeSave}
	if err != nil {
		res.Warning = err.Error()
	}
	return res
}

func (s *Session) cards() []domain.Card {
	window := s.batcher.Window()
	res := make([]domain.Card, 0, len(window))
	for i, q := range window {
		res = append(res, s.card(i, q))
	}
	return res
}

func (s *Session) card(idx int, q domain.Quote) domain.Card {
	return domain.Card{Quote: q, Index: idx, Liked: s.reactions.IsLiked(q.ID), Saved: s.reactions.IsSaved(q.ID)}
}
