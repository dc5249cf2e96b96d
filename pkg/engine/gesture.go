package engine

import (
	"math"
	"sync"
)

// Phase of the swipe state machine
type Phase int

// swipe phases
const (
	PhaseIdle Phase = iota
	PhaseDragging
)

func (p Phase) String() string {
	if p == PhaseDragging {
		return "dragging"
	}
	return "idle"
}

// DragState is the ephemeral per-gesture state, zero value is idle
type DragState struct {
	Phase    Phase   `json:"-"`
	StartX   float64 `json:"start_x"`
	CurrentX float64 `json:"current_x"`
}

// Dragging reports whether a gesture is in progress
func (s DragState) Dragging() bool {
	return s.Phase == PhaseDragging
}

// Delta returns the horizontal displacement of the gesture
func (s DragState) Delta() float64 {
	if !s.Dragging() {
		return 0
	}
	return s.CurrentX - s.StartX
}

// EventKind is the kind of input event
type EventKind string

// input event kinds
const (
	EventDown EventKind = "down"
	EventMove EventKind = "move"
	EventUp   EventKind = "up"
)

// InputSource tells pointer and touch input apart, both drive the same machine
type InputSource string

// input sources
const (
	SourcePointer InputSource = "pointer"
	SourceTouch   InputSource = "touch"
)

// Target is the element the event landed on
type Target string

// event targets
const (
	TargetCard    Target = "card"
	TargetControl Target = "control" // nested like/save/copy/share button
)

// GestureEvent is a single pointer or touch event
type GestureEvent struct {
	Kind   EventKind   `json:"kind"`
	X      float64     `json:"x"`
	Source InputSource `json:"source"`
	Target Target      `json:"target"`
}

// Outcome of a transition
type Outcome string

// transition outcomes
const (
	OutcomeNone   Outcome = ""
	OutcomeLike   Outcome = "like"
	OutcomeSave   Outcome = "save"
	OutcomeCancel Outcome = "cancel"
)

// SwipeConfig holds the swipe threshold and visual mapping parameters
type SwipeConfig struct {
	Threshold      float64
	OverlayStart   float64
	OverlayFull    float64
	OverlayMax     float64
	RotationFactor float64 // displacement per degree of rotation
}

// DefaultSwipeConfig returns the reference swipe parameters
func DefaultSwipeConfig() SwipeConfig {
	return SwipeConfig{Threshold: 100, OverlayStart: 10, OverlayFull: 150, OverlayMax: 0.8, RotationFactor: 20}
}

// Transition applies a single event to the drag state. Release commits like above the threshold,
// save below the negative threshold and cancels otherwise; every release returns to idle.
// Events on nested controls never reach the machine.
func Transition(s DragState, ev GestureEvent, cfg SwipeConfig) (DragState, Outcome) {
	if ev.Target == TargetControl {
		return s, OutcomeNone
	}

	switch ev.Kind {
	case EventDown:
		if s.Dragging() {
			return s, OutcomeNone
		}
		return DragState{Phase: PhaseDragging, StartX: ev.X, CurrentX: ev.X}, OutcomeNone
	case EventMove:
		if !s.Dragging() {
			return s, OutcomeNone
		}
		s.CurrentX = ev.X
		return s, OutcomeNone
	case EventUp:
		if !s.Dragging() {
			return s, OutcomeNone
		}
		delta := s.Delta()
		switch {
		case delta > cfg.Threshold:
			return DragState{}, OutcomeLike
		case delta < -cfg.Threshold:
			return DragState{}, OutcomeSave
		default:
			return DragState{}, OutcomeCancel
		}
	}
	return s, OutcomeNone
}

// Visual is the live feedback derived from the drag state
type Visual struct {
	TranslateX  float64 `json:"translate_x"`
	Rotation    float64 `json:"rotation"`
	LikeOpacity float64 `json:"like_opacity"`
	SaveOpacity float64 `json:"save_opacity"`
	SnapBack    bool    `json:"snap_back"` // animate back to neutral
}

// Visual maps the drag state to transform and overlay opacities
func (c SwipeConfig) Visual(s DragState) Visual {
	if !s.Dragging() {
		return Visual{SnapBack: true}
	}
	delta := s.Delta()
	res := Visual{TranslateX: delta}
	if c.RotationFactor != 0 {
		res.Rotation = delta / c.RotationFactor
	}

	abs := math.Abs(delta)
	if abs < c.OverlayStart || c.OverlayFull <= 0 {
		return res
	}
	opacity := c.OverlayMax * math.Min(abs/c.OverlayFull, 1)
	if delta > 0 {
		res.LikeOpacity = opacity
	} else {
		res.SaveOpacity = opacity
	}
	return res
}

// Recognizer runs the swipe state machine for one card at a time. A down event captures the card and
// the input source; moves and the release are routed to the captured card until the gesture ends.
type Recognizer struct {
	cfg SwipeConfig

	mu     sync.Mutex
	state  DragState
	cardID int64
	source InputSource
}

// NewRecognizer makes an idle recognizer
func NewRecognizer(cfg SwipeConfig) *Recognizer {
	return &Recognizer{cfg: cfg}
}

// Handle feeds an event for cardID into the machine and returns the outcome with the card it applies to.
// A down on another card while a gesture is active is ignored.
func (r *Recognizer) Handle(cardID int64, ev GestureEvent) (Outcome, int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ev.Target == TargetControl {
		return OutcomeNone, cardID
	}
	if ev.Source == "" {
		ev.Source = SourcePointer
	}

	if r.state.Dragging() {
		if ev.Kind == EventDown || ev.Source != r.source {
			return OutcomeNone, r.cardID
		}
		// captured: moves and release belong to the dragged card wherever they land
		cardID = r.cardID
	} else if ev.Kind != EventDown {
		return OutcomeNone, cardID
	}

	next, outcome := Transition(r.state, ev, r.cfg)
	if !r.state.Dragging() && next.Dragging() {
		r.cardID, r.source = cardID, ev.Source
	}
	r.state = next
	if !next.Dragging() {
		r.cardID, r.source = 0, ""
	}
	return outcome, cardID
}

// State returns the current drag state and the captured card id
func (r *Recognizer) State() (DragState, int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state, r.cardID
}

// Visual returns the feedback for the current drag state
func (r *Recognizer) Visual() Visual {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg.Visual(r.state)
}

// Reset drops an active gesture without committing
func (r *Recognizer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state, r.cardID, r.source = DragState{}, 0, ""
}
