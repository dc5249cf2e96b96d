package engine

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
)

// Autoscroll calls tick periodically while running. Start and Stop are idempotent toggles.
// No tick runs after Stop returns, so Stop must not be called from inside tick.
type Autoscroll struct {
	interval time.Duration
	tick     func()

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	tickMu sync.Mutex // held for the duration of every tick
}

// NewAutoscroll makes a stopped autoscroll timer
func NewAutoscroll(interval time.Duration, tick func()) *Autoscroll {
	if interval <= 0 {
		interval = 4 * time.Second
	}
	return &Autoscroll{interval: interval, tick: tick}
}

// Start begins ticking, returns false if already running
func (a *Autoscroll) Start(ctx context.Context) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil || ctx.Err() != nil {
		return false
	}
	ctx, a.cancel = context.WithCancel(ctx)
	a.done = make(chan struct{})
	go a.run(ctx, a.done)
	lgr.Printf("[DEBUG] autoscroll started, interval %v", a.interval)
	return true
}

// Stop halts ticking and waits for an in-flight tick, returns false if not running
func (a *Autoscroll) Stop() bool {
	a.mu.Lock()
	if a.cancel == nil {
		a.mu.Unlock()
		return false
	}
	a.cancel()
	a.cancel = nil
	a.done = nil
	a.mu.Unlock()

	// wait for a tick which may have started before cancel
	a.tickMu.Lock()
	defer a.tickMu.Unlock()
	lgr.Printf("[DEBUG] autoscroll stopped")
	return true
}

// Running reports whether autoscroll is active
func (a *Autoscroll) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cancel != nil
}

func (a *Autoscroll) run(ctx context.Context, done chan struct{}) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	defer func() {
		// parent context cancelled without Stop, clear own state
		a.mu.Lock()
		if a.done == done {
			a.cancel()
			a.cancel = nil
			a.done = nil
		}
		a.mu.Unlock()
		close(done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.tickMu.Lock()
			if ctx.Err() == nil {
				a.tick()
			}
			a.tickMu.Unlock()
		}
	}
}
