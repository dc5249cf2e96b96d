// Package reaction keeps the liked-id set and saved-quote list. Every mutation is applied in memory first
// and written through to the key-value store; a failed write is reported but never reverts the toggle.
package reaction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/quotetok/pkg/domain"
)

//go:generate moq -out mocks/kv.go -pkg mocks -skip-ensure -fmt goimports . KV

// ErrPersistence marks a failed durable write, the in-memory state is already updated
var ErrPersistence = errors.New("persistence write failed")

// KV is the durable key-value store
type KV interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// Store is the authoritative holder of user reactions
type Store struct {
	kv KV

	mu         sync.RWMutex
	liked      []int64
	saved      []domain.Quote
	unreadable map[string]bool // keys whose persisted value could not be read, never overwritten
}

// NewStore makes an empty store, call Load to read persisted state
func NewStore(kv KV) *Store {
	return &Store{kv: kv, unreadable: map[string]bool{}}
}

// Load reads liked and saved reactions from the key-value store. Each key loads independently:
// a corrupted value starts its collection empty, a key that can't be read is kept off write-through
// until a later Load reads it, so the stored value is not replaced by a partial one.
func (s *Store) Load(ctx context.Context) error {
	var liked []int64
	likedErr := s.read(ctx, domain.SettingLikedQuotes, &liked)
	var saved []domain.Quote
	savedErr := s.read(ctx, domain.SettingSavedQuotes, &saved)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.apply(domain.SettingLikedQuotes, likedErr) {
		s.liked = dedupIDs(liked)
	}
	if s.apply(domain.SettingSavedQuotes, savedErr) {
		s.saved = dedupQuotes(saved)
	}
	lgr.Printf("[DEBUG] reactions loaded, %d liked, %d saved", len(s.liked), len(s.saved))
	return errors.Join(readErr(likedErr), readErr(savedErr))
}

// apply records the load result of key and reports whether the decoded value should replace memory
func (s *Store) apply(key string, err error) bool {
	var corrupt *decodeError
	switch {
	case err == nil:
		delete(s.unreadable, key)
		return true
	case errors.As(err, &corrupt):
		lgr.Printf("[WARN] ignore corrupted %s, starting empty: %v", key, err)
		delete(s.unreadable, key)
		return true
	default:
		s.unreadable[key] = true
		return false
	}
}

// ToggleLike flips membership of id in the liked set and returns the new membership
func (s *Store) ToggleLike(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	liked := true
	if idx := slices.Index(s.liked, id); idx >= 0 {
		s.liked = slices.Delete(s.liked, idx, idx+1)
		liked = false
	} else {
		s.liked = append(s.liked, id)
	}
	return liked, s.write(ctx, domain.SettingLikedQuotes, s.liked)
}

// ToggleSave flips membership of the quote in the saved list by id, storing the full value on insert
func (s *Store) ToggleSave(ctx context.Context, q domain.Quote) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := true
	if idx := s.savedIndex(q.ID); idx >= 0 {
		s.saved = slices.Delete(s.saved, idx, idx+1)
		saved = false
	} else {
		s.saved = append(s.saved, q)
	}
	return saved, s.write(ctx, domain.SettingSavedQuotes, s.saved)
}

// Remove deletes id from the saved list, returns false without writing if it was not saved
func (s *Store) Remove(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.savedIndex(id)
	if idx < 0 {
		return false, nil
	}
	s.saved = slices.Delete(s.saved, idx, idx+1)
	return true, s.write(ctx, domain.SettingSavedQuotes, s.saved)
}

// IsLiked reports whether id is liked
func (s *Store) IsLiked(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.liked, id)
}

// IsSaved reports whether id is saved
func (s *Store) IsSaved(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.savedIndex(id) >= 0
}

// Liked returns a copy of liked ids in like order
func (s *Store) Liked() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.liked)
}

// Saved returns a copy of saved quotes in save order
func (s *Store) Saved() []domain.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.saved)
}

func (s *Store) savedIndex(id int64) int {
	return slices.IndexFunc(s.saved, func(q domain.Quote) bool { return q.ID == id })
}

// decodeError is a persisted value that is present but not valid JSON
type decodeError struct {
	key string
	err error
}

func (e *decodeError) Error() string { return fmt.Sprintf("decode %s: %v", e.key, e.err) }

func (e *decodeError) Unwrap() error { return e.err }

func (s *Store) read(ctx context.Context, key string, v any) error {
	raw, err := s.kv.GetSetting(ctx, key)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return &decodeError{key: key, err: err}
	}
	return nil
}

// readErr drops decode errors, they are logged and recovered in Load
func readErr(err error) error {
	var corrupt *decodeError
	if errors.As(err, &corrupt) {
		return nil
	}
	return err
}

// write persists v under key, must be called under lock to keep writes in mutation order
func (s *Store) write(ctx context.Context, key string, v any) error {
	if s.unreadable[key] {
		lgr.Printf("[WARN] %s was not loaded, change kept in memory only", key)
		return fmt.Errorf("%w: %s was not loaded, write skipped", ErrPersistence, key)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrPersistence, key, err)
	}
	if err := s.kv.SetSetting(ctx, key, string(data)); err != nil {
		lgr.Printf("[WARN] can't persist %s, kept in memory: %v", key, err)
		return fmt.Errorf("%w: %s: %v", ErrPersistence, key, err)
	}
	return nil
}

func dedupIDs(ids []int64) []int64 {
	res := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(res, id) {
			res = append(res, id)
		}
	}
	return res
}

func dedupQuotes(quotes []domain.Quote) []domain.Quote {
	res := make([]domain.Quote, 0, len(quotes))
	for _, q := range quotes {
		if !slices.ContainsFunc(res, func(e domain.Quote) bool { return e.ID == q.ID }) {
			res = append(res, q)
		}
	}
	return res
}
