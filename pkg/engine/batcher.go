package engine

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/quotetok/pkg/domain"
)

// AfterFunc schedules f after d and returns a function cancelling it
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

// BatcherOpts defines batcher parameters
type BatcherOpts struct {
	BatchSize int
	LoadDelay time.Duration
	Rand      *rand.Rand // shuffle source, random if nil
	AfterFunc AfterFunc  // load scheduler, time.AfterFunc if nil
	OnAppend  func(generation uint64, visible int)
}

// Batcher keeps the shuffled feed order for the active category and grows the visible window in batches.
// Each reshuffle bumps the generation, a pending load issued against an older generation is dropped.
type Batcher struct {
	batchSize int
	loadDelay time.Duration
	afterFunc AfterFunc
	onAppend  func(generation uint64, visible int)

	mu         sync.Mutex
	rnd        *rand.Rand
	corpus     []domain.Quote
	category   string
	order      []domain.Quote
	visible    int
	loading    bool
	generation uint64
	stopLoad   func() bool
}

// NewBatcher makes a batcher with an empty corpus and "All" category
func NewBatcher(opts BatcherOpts) *Batcher {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 5
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // shuffling, not crypto
	}
	if opts.AfterFunc == nil {
		opts.AfterFunc = func(d time.Duration, f func()) func() bool {
			return time.AfterFunc(d, f).Stop
		}
	}
	return &Batcher{
		batchSize: opts.BatchSize,
		loadDelay: opts.LoadDelay,
		afterFunc: opts.AfterFunc,
		onAppend:  opts.OnAppend,
		rnd:       opts.Rand,
		category:  domain.CategoryAll,
	}
}

// SetQuotes replaces the corpus and reshuffles. The active category is kept if the new corpus still has it.
func (b *Batcher) SetQuotes(quotes []domain.Quote) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.corpus = quotes
	if b.category != domain.CategoryAll && !hasCategory(quotes, b.category) {
		b.category = domain.CategoryAll
	}
	b.reshuffle()
}

// SetCategory switches the working set to the category and reshuffles, "All" selects the whole corpus
func (b *Batcher) SetCategory(category string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.category = category
	b.reshuffle()
	lgr.Printf("[DEBUG] category %q selected, %d quotes, generation %d", category, len(b.order), b.generation)
}

// RequestMore schedules the next batch to be appended after the load delay.
// Returns false if the window already covers the whole order or a load is in flight.
func (b *Batcher) RequestMore() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loading || b.visible >= len(b.order) {
		return false
	}
	b.loading = true
	gen := b.generation
	b.stopLoad = b.afterFunc(b.loadDelay, func() { b.completeLoad(gen) })
	return true
}

// completeLoad appends the next batch unless the order was reshuffled after the load was issued
func (b *Batcher) completeLoad(gen uint64) {
	b.mu.Lock()
	if gen != b.generation {
		b.mu.Unlock()
		lgr.Printf("[DEBUG] stale load for generation %d dropped, current %d", gen, b.generation)
		return
	}
	b.visible = min(b.visible+b.batchSize, len(b.order))
	b.loading = false
	b.stopLoad = nil
	visible := b.visible
	b.mu.Unlock()

	if b.onAppend != nil {
		b.onAppend(gen, visible)
	}
}

// reshuffle rebuilds the order for the current category. Must be called under lock.
func (b *Batcher) reshuffle() {
	filtered := make([]domain.Quote, 0, len(b.corpus))
	for _, q := range b.corpus {
		if b.category == domain.CategoryAll || q.Category == b.category {
			filtered = append(filtered, q)
		}
	}
	b.rnd.Shuffle(len(filtered), func(i, j int) { filtered[i], filtered[j] = filtered[j], filtered[i] })

	if b.stopLoad != nil {
		b.stopLoad()
		b.stopLoad = nil
	}
	b.generation++
	b.order = filtered
	b.visible = min(b.batchSize, len(filtered))
	b.loading = false
}

// Window returns a copy of the visible prefix of the order
func (b *Batcher) Window() []domain.Quote {
	b.mu.Lock()
	defer b.mu.Unlock()
	res := make([]domain.Quote, b.visible)
	copy(res, b.order[:b.visible])
	return res
}

// Order returns a copy of the full feed order
func (b *Batcher) Order() []domain.Quote {
	b.mu.Lock()
	defer b.mu.Unlock()
	res := make([]domain.Quote, len(b.order))
	copy(res, b.order)
	return res
}

// Visible returns the size of the visible window
func (b *Batcher) Visible() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible
}

// HasMore reports whether the window is shorter than the order
func (b *Batcher) HasMore() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible < len(b.order)
}

// Loading reports whether a batch load is pending
func (b *Batcher) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

// Generation returns the current feed order generation
func (b *Batcher) Generation() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.generation
}

// Category returns the active category
func (b *Batcher) Category() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.category
}

func hasCategory(quotes []domain.Quote, category string) bool {
	for _, q := range quotes {
		if q.Category == category {
			return true
		}
	}
	return false
}
