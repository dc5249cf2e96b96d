package reaction

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/quotetok/pkg/domain"
	"github.com/umputun/quotetok/pkg/reaction/mocks"
)

// memKV returns a KV mock backed by a map
func memKV(initial map[string]string) *mocks.KVMock {
	var mu sync.Mutex
	data := map[string]string{}
	for k, v := range initial {
		data[k] = v
	}
	return &mocks.KVMock{
		GetSettingFunc: func(ctx context.Context, key string) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			return data[key], nil
		},
		SetSettingFunc: func(ctx context.Context, key string, value string) error {
			mu.Lock()
			defer mu.Unlock()
			data[key] = value
			return nil
		},
	}
}

func TestStore_Load(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		s := NewStore(memKV(nil))
		require.NoError(t, s.Load(context.Background()))
		assert.Empty(t, s.Liked())
		assert.Empty(t, s.Saved())
	})

	t.Run("persisted state", func(t *testing.T) {
		kv := memKV(map[string]string{
			domain.SettingLikedQuotes: "[3,1,3]",
			domain.SettingSavedQuotes: `[{"id":7,"content":"c7","category":"Life"},{"id":7,"content":"dup","category":"Life"}]`,
		})
		s := NewStore(kv)
		require.NoError(t, s.Load(context.Background()))
		assert.Equal(t, []int64{3, 1}, s.Liked())
		assert.Equal(t, []domain.Quote{{ID: 7, Content: "c7", Category: "Life"}}, s.Saved())
		assert.True(t, s.IsLiked(3))
		assert.True(t, s.IsSaved(7))
		assert.False(t, s.IsSaved(3))
	})

	t.Run("corrupted value starts empty, other key still loads", func(t *testing.T) {
		kv := memKV(map[string]string{
			domain.SettingLikedQuotes: "not json",
			domain.SettingSavedQuotes: `[{"id":1,"content":"c1","category":"X"},{"id":2,"content":"c2","category":"X"}]`,
		})
		s := NewStore(kv)
		require.NoError(t, s.Load(context.Background()))
		assert.Empty(t, s.Liked())
		require.Len(t, s.Saved(), 2)

		saved, err := s.ToggleSave(context.Background(), domain.Quote{ID: 3, Content: "c3", Category: "X"})
		require.NoError(t, err)
		assert.True(t, saved)

		stored, err := kv.GetSetting(context.Background(), domain.SettingSavedQuotes)
		require.NoError(t, err)
		var quotes []domain.Quote
		require.NoError(t, json.Unmarshal([]byte(stored), &quotes))
		require.Len(t, quotes, 3)
		assert.Equal(t, []int64{1, 2, 3}, []int64{quotes[0].ID, quotes[1].ID, quotes[2].ID})

		// corrupted liked value is replaced on the next like
		_, err = s.ToggleLike(context.Background(), 5)
		require.NoError(t, err)
		stored, err = kv.GetSetting(context.Background(), domain.SettingLikedQuotes)
		require.NoError(t, err)
		assert.Equal(t, "[5]", stored)
	})

	t.Run("read error", func(t *testing.T) {
		kv := &mocks.KVMock{GetSettingFunc: func(ctx context.Context, key string) (string, error) {
			return "", errors.New("db down")
		}}
		err := NewStore(kv).Load(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db down")
	})

	t.Run("unreadable key is not overwritten until reloaded", func(t *testing.T) {
		savedValue := `[{"id":1,"content":"c1","category":"X"}]`
		failSaved := true
		var writes []string
		kv := &mocks.KVMock{
			GetSettingFunc: func(ctx context.Context, key string) (string, error) {
				switch {
				case key == domain.SettingSavedQuotes && failSaved:
					return "", errors.New("database is locked")
				case key == domain.SettingSavedQuotes:
					return savedValue, nil
				}
				return "[4]", nil
			},
			SetSettingFunc: func(ctx context.Context, key string, value string) error {
				writes = append(writes, key)
				return nil
			},
		}
		s := NewStore(kv)
		err := s.Load(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read savedQuotes")
		assert.NotContains(t, err.Error(), "likedQuotes")
		assert.Equal(t, []int64{4}, s.Liked())

		saved, err := s.ToggleSave(context.Background(), domain.Quote{ID: 3, Content: "c3", Category: "X"})
		require.ErrorIs(t, err, ErrPersistence)
		assert.True(t, saved, "toggle applied in memory")
		assert.Empty(t, writes)

		_, err = s.ToggleLike(context.Background(), 9)
		require.NoError(t, err)
		assert.Equal(t, []string{domain.SettingLikedQuotes}, writes)

		failSaved = false
		require.NoError(t, s.Load(context.Background()))
		assert.Equal(t, []domain.Quote{{ID: 1, Content: "c1", Category: "X"}}, s.Saved())
		_, err = s.ToggleSave(context.Background(), domain.Quote{ID: 3, Content: "c3", Category: "X"})
		require.NoError(t, err)
		assert.Equal(t, []string{domain.SettingLikedQuotes, domain.SettingSavedQuotes}, writes)
	})
}

func TestStore_ToggleLike(t *testing.T) {
	kv := memKV(nil)
	s := NewStore(kv)
	ctx := context.Background()

	liked, err := s.ToggleLike(ctx, 5)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.True(t, s.IsLiked(5))

	liked, err = s.ToggleLike(ctx, 9)
	require.NoError(t, err)
	assert.True(t, liked)

	// second toggle restores original membership
	liked, err = s.ToggleLike(ctx, 5)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.False(t, s.IsLiked(5))
	assert.Equal(t, []int64{9}, s.Liked())

	// every mutation is written through
	calls := kv.SetSettingCalls()
	require.Len(t, calls, 3)
	assert.Equal(t, domain.SettingLikedQuotes, calls[2].Key)
	assert.Equal(t, "[9]", calls[2].Value)

	// state survives reload from the same kv
	s2 := NewStore(kv)
	require.NoError(t, s2.Load(ctx))
	assert.Equal(t, []int64{9}, s2.Liked())
}

func TestStore_ToggleSave(t *testing.T) {
	kv := memKV(nil)
	s := NewStore(kv)
	ctx := context.Background()
	q := domain.Quote{ID: 1, Content: "original text", Category: "Stoic"}

	saved, err := s.ToggleSave(ctx, q)
	require.NoError(t, err)
	assert.True(t, saved)

	// a later corpus change does not touch the saved value
	changed := q
	changed.Content = "edited text"
	assert.True(t, s.IsSaved(changed.ID))
	assert.Equal(t, "original text", s.Saved()[0].Content)

	saved, err = s.ToggleSave(ctx, changed)
	require.NoError(t, err)
	assert.False(t, saved)
	assert.Empty(t, s.Saved())

	// round trip never leaves two entries for one id
	for range 5 {
		_, err = s.ToggleSave(ctx, q)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(s.Saved()), 1)
	}
	assert.Len(t, s.Saved(), 1)
}

func TestStore_Remove(t *testing.T) {
	kv := memKV(nil)
	s := NewStore(kv)
	ctx := context.Background()

	_, err := s.ToggleSave(ctx, domain.Quote{ID: 1, Content: "a"})
	require.NoError(t, err)
	_, err = s.ToggleSave(ctx, domain.Quote{ID: 2, Content: "b"})
	require.NoError(t, err)
	writes := len(kv.SetSettingCalls())

	removed, err := s.Remove(ctx, 1)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, []domain.Quote{{ID: 2, Content: "b"}}, s.Saved())

	// absent id is a no-op without a write
	removed, err = s.Remove(ctx, 42)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Len(t, kv.SetSettingCalls(), writes+1)
}

func TestStore_PersistenceFailure(t *testing.T) {
	kv := &mocks.KVMock{
		GetSettingFunc: func(ctx context.Context, key string) (string, error) { return "", nil },
		SetSettingFunc: func(ctx context.Context, key, value string) error { return errors.New("disk full") },
	}
	s := NewStore(kv)

	liked, err := s.ToggleLike(context.Background(), 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.True(t, liked)
	assert.True(t, s.IsLiked(3), "in-memory toggle kept on write failure")

	saved, err := s.ToggleSave(context.Background(), domain.Quote{ID: 4})
	assert.ErrorIs(t, err, ErrPersistence)
	assert.True(t, saved)
	assert.True(t, s.IsSaved(4))
}

func TestStore_ConcurrentToggles(t *testing.T) {
	s := NewStore(memKV(nil))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := s.ToggleLike(ctx, id)
			assert.NoError(t, err)
			_, err = s.ToggleLike(ctx, id)
			assert.NoError(t, err)
		}(int64(i))
	}
	wg.Wait()
	assert.Empty(t, s.Liked())
}
