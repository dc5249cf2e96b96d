package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/quotetok/pkg/domain"
	"github.com/umputun/quotetok/pkg/engine"
)

// statusHandler returns the load status of the feed session
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	snap := s.feed.Snapshot()
	renderJSON(w, r, http.StatusOK, rest.JSON{
		"status":     s.feed.Status(),
		"version":    s.version,
		"category":   snap.Category,
		"categories": snap.Categories,
		"error":      snap.Error,
	})
}

// feedHandler returns the full snapshot the surface renders from
func (s *Server) feedHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, s.feed.Snapshot())
}

// reloadHandler reloads the corpus, the retry affordance of the error state
func (s *Server) reloadHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.feed.Load(r.Context()); err != nil {
		lgr.Printf("[WARN] reload failed: %v", err)
		renderError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	renderJSON(w, r, http.StatusOK, s.feed.Snapshot())
}

// categoryHandler switches the selected category
func (s *Server) categoryHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := s.feed.SetCategory(name); err != nil {
		if errors.Is(err, engine.ErrUnknownCategory) {
			renderError(w, r, err, http.StatusNotFound)
			return
		}
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	lgr.Printf("[DEBUG] category set to %q", name)
	renderJSON(w, r, http.StatusOK, s.feed.Snapshot())
}

// moreHandler requests the next batch, a no-op while loading or when everything is visible
func (s *Server) moreHandler(w http.ResponseWriter, r *http.Request) {
	scheduled := s.feed.RequestMore()
	renderJSON(w, r, http.StatusAccepted, rest.JSON{"scheduled": scheduled})
}

// scrollHandler applies a manual scroll delta in pixels
func (s *Server) scrollHandler(w http.ResponseWriter, r *http.Request) {
	var req scrollRequest
	if err := s.decodeRequest(r, &req); err != nil {
		renderError(w, r, fmt.Errorf("invalid scroll request: %w", err), http.StatusBadRequest)
		return
	}
	s.feed.Scroll(req.Delta)
	renderJSON(w, r, http.StatusOK, s.feed.Snapshot())
}

func (s *Server) nextHandler(w http.ResponseWriter, r *http.Request) {
	s.feed.Next()
	renderJSON(w, r, http.StatusOK, s.feed.Snapshot())
}

func (s *Server) prevHandler(w http.ResponseWriter, r *http.Request) {
	s.feed.Prev()
	renderJSON(w, r, http.StatusOK, s.feed.Snapshot())
}

// autoscrollHandler starts, stops or toggles autoscroll
func (s *Server) autoscrollHandler(w http.ResponseWriter, r *http.Request) {
	var changed bool
	switch action := r.PathValue("action"); action {
	case "start":
		changed = s.feed.StartAutoscroll()
	case "stop":
		changed = s.feed.StopAutoscroll()
	case "toggle":
		if s.feed.Snapshot().Autoscroll {
			changed = s.feed.StopAutoscroll()
		} else {
			changed = s.feed.StartAutoscroll()
		}
	default:
		renderError(w, r, fmt.Errorf("unknown autoscroll action %q", action), http.StatusBadRequest)
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"autoscroll": s.feed.Snapshot().Autoscroll, "changed": changed})
}

// gestureHandler feeds one pointer or touch event for a card
func (s *Server) gestureHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := quoteID(w, r)
	if !ok {
		return
	}

	var req gestureRequest
	if err := s.decodeRequest(r, &req); err != nil {
		renderError(w, r, fmt.Errorf("invalid gesture event: %w", err), http.StatusBadRequest)
		return
	}
	ev := req.event()

	reaction, err := s.feed.Gesture(r.Context(), id, ev)
	if err != nil {
		renderReactionError(w, r, err)
		return
	}
	if reaction.Outcome == engine.OutcomeLike || reaction.Outcome == engine.OutcomeSave {
		lgr.Printf("[DEBUG] swipe %s on quote %d", reaction.Outcome, id)
	}
	renderJSON(w, r, http.StatusOK, reaction)
}

// reactionHandler toggles like or save from the card controls
func (s *Server) reactionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := quoteID(w, r)
	if !ok {
		return
	}

	var (
		reaction engine.Reaction
		err      error
	)
	switch action := r.PathValue("action"); action {
	case "like":
		reaction, err = s.feed.ToggleLike(r.Context(), id)
	case "save":
		reaction, err = s.feed.ToggleSave(r.Context(), id)
	default:
		renderError(w, r, fmt.Errorf("unknown reaction %q", action), http.StatusBadRequest)
		return
	}
	if err != nil {
		renderReactionError(w, r, err)
		return
	}
	if reaction.Warning != "" {
		lgr.Printf("[WARN] reaction on quote %d not persisted: %s", id, reaction.Warning)
	}
	renderJSON(w, r, http.StatusOK, reaction)
}

// cardHandler returns a visible card with its clipboard text
func (s *Server) cardHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := quoteID(w, r)
	if !ok {
		return
	}
	card, err := s.feed.Card(id)
	if err != nil {
		renderReactionError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, struct {
		domain.Card
		CopyText string `json:"copy_text"`
	}{Card: card, CopyText: card.CopyText()})
}

// savedHandler lists saved quotes in save order
func (s *Server) savedHandler(w http.ResponseWriter, r *http.Request) {
	saved := s.feed.Saved()
	if saved == nil {
		saved = []domain.Quote{}
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"count": len(saved), "quotes": saved})
}

// removeSavedHandler deletes a quote from the saved list
func (s *Server) removeSavedHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := quoteID(w, r)
	if !ok {
		return
	}
	removed, warning := s.feed.RemoveSaved(r.Context(), id)
	if !removed {
		renderError(w, r, fmt.Errorf("quote %d is not saved", id), http.StatusNotFound)
		return
	}
	resp := rest.JSON{"removed": true, "count": len(s.feed.Saved())}
	if warning != "" {
		lgr.Printf("[WARN] removal of quote %d not persisted: %s", id, warning)
		resp["warning"] = warning
	}
	renderJSON(w, r, http.StatusOK, resp)
}

func (s *Server) themeHandler(w http.ResponseWriter, r *http.Request) {
	val, err := s.settings.GetSetting(r.Context(), domain.SettingTheme)
	if err != nil {
		lgr.Printf("[WARN] failed to read theme: %v", err)
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"theme": domain.ParseTheme(val)})
}

// themeToggleHandler flips between light and dark and persists the choice
func (s *Server) themeToggleHandler(w http.ResponseWriter, r *http.Request) {
	val, err := s.settings.GetSetting(r.Context(), domain.SettingTheme)
	if err != nil {
		lgr.Printf("[WARN] failed to read theme: %v", err)
	}
	theme := domain.ParseTheme(val).Toggle()
	if err := s.settings.SetSetting(r.Context(), domain.SettingTheme, string(theme)); err != nil {
		lgr.Printf("[WARN] failed to save theme: %v", err)
		renderError(w, r, fmt.Errorf("save theme: %w", err), http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"theme": theme})
}

// quoteID parses the {id} path value, writes 400 on failure
func quoteID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid quote id: %w", err), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func renderReactionError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, engine.ErrQuoteNotVisible) {
		renderError(w, r, err, http.StatusNotFound)
		return
	}
	renderError(w, r, err, http.StatusInternalServerError)
}

type scrollRequest struct {
	Delta int `json:"delta" validate:"min=-100000,max=100000"`
}

// gestureRequest is the wire form of engine.GestureEvent, source and target are optional
type gestureRequest struct {
	Kind   string  `json:"kind" validate:"required,oneof=down move up"`
	X      float64 `json:"x"`
	Source string  `json:"source" validate:"omitempty,oneof=pointer touch"`
	Target string  `json:"target" validate:"omitempty,oneof=card control"`
}

func (g gestureRequest) event() engine.GestureEvent {
	ev := engine.GestureEvent{
		Kind:   engine.EventKind(g.Kind),
		X:      g.X,
		Source: engine.InputSource(g.Source),
		Target: engine.Target(g.Target),
	}
	if ev.Source == "" {
		ev.Source = engine.SourcePointer
	}
	if ev.Target == "" {
		ev.Target = engine.TargetCard
	}
	return ev
}

// decodeRequest decodes the JSON body into v and validates its tags
func (s *Server) decodeRequest(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}
