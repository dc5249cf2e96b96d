package engine

import "sync"

// Surface is the scrollable presenting viewport driven by the session
type Surface interface {
	ScrollBy(delta int)
	ScrollTo(pos int)
	Offset() int
	Extent() int
	ViewportHeight() int
}

// Viewport is a snapping vertical surface where every card takes exactly one viewport height.
// Its extent follows the visible window size reported by cards.
type Viewport struct {
	height int
	cards  func() int

	mu     sync.Mutex
	offset int
}

// NewViewport makes a viewport of the given height over cards() cards
func NewViewport(height int, cards func() int) *Viewport {
	if height <= 0 {
		height = 1
	}
	return &Viewport{height: height, cards: cards}
}

// ScrollBy moves the offset by delta, clamped to the scrollable range
func (v *Viewport) ScrollBy(delta int) {
	maxOffset := v.maxOffset()
	v.mu.Lock()
	defer v.mu.Unlock()
	v.offset = clamp(v.offset+delta, 0, maxOffset)
}

// ScrollTo sets the offset, clamped to the scrollable range
func (v *Viewport) ScrollTo(pos int) {
	maxOffset := v.maxOffset()
	v.mu.Lock()
	defer v.mu.Unlock()
	v.offset = clamp(pos, 0, maxOffset)
}

// Offset returns the current scroll offset
func (v *Viewport) Offset() int {
	maxOffset := v.maxOffset()
	v.mu.Lock()
	defer v.mu.Unlock()
	// the window may shrink under the offset after a reshuffle
	return min(v.offset, maxOffset)
}

// Extent returns the total scrollable height
func (v *Viewport) Extent() int {
	return v.cards() * v.height
}

// ViewportHeight returns the visible height
func (v *Viewport) ViewportHeight() int {
	return v.height
}

// Position returns the index of the card at the top of the viewport
func (v *Viewport) Position() int {
	return v.Offset() / v.height
}

func (v *Viewport) maxOffset() int {
	return max(0, v.Extent()-v.height)
}

// remaining returns the distance between the bottom of the viewport and the end of the surface
func remaining(s Surface) int {
	return s.Extent() - s.Offset() - s.ViewportHeight()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
