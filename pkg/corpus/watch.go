package corpus

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-pkgz/lgr"
)

// Watcher calls OnChange when one of the watched quote files is written, created or replaced.
// Bursts of events within Debounce collapse into a single call.
type Watcher struct {
	Paths    []string
	Debounce time.Duration
	OnChange func()
}

// Run watches the parent directories of Paths until ctx is done. Directories are watched instead of files
// so editors replacing the file atomically keep triggering.
func (w *Watcher) Run(ctx context.Context) error {
	if len(w.Paths) == 0 {
		return errors.New("no files to watch")
	}
	if w.OnChange == nil {
		return errors.New("change callback is required")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	files := make(map[string]bool, len(w.Paths))
	for _, p := range w.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", p, err)
		}
		files[abs] = true
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
		}
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	schedule := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounce, w.OnChange)
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(ev.Name)] {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				lgr.Printf("[DEBUG] quote file %s changed: %s", ev.Name, ev.Op)
				schedule()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			lgr.Printf("[WARN] watcher error: %v", err)
		}
	}
}
