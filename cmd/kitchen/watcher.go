package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/smasonuk/kitchen3d"
)

// settleDelay is how long a file must go without further writes before it
// is imported.
const settleDelay = 300 * time.Millisecond

// importWatcher reports mesh files that appear in a directory once they
// stop changing.
type importWatcher struct {
	watcher *fsnotify.Watcher
	paths   chan string

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func newImportWatcher(dir string) (*importWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("could not watch %s: %w", dir, err)
	}
	return &importWatcher{
		watcher: w,
		paths:   make(chan string, 16),
		timers:  make(map[string]*time.Timer),
	}, nil
}

// Paths delivers settled file paths.
func (iw *importWatcher) Paths() <-chan string {
	return iw.paths
}

// Run forwards events until ctx is done, then closes the watcher.
func (iw *importWatcher) Run(ctx context.Context) {
	defer iw.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			iw.stopTimers()
			return
		case event, ok := <-iw.watcher.Events:
			if !ok {
				return
			}
			if (event.Has(fsnotify.Create) || event.Has(fsnotify.Write)) && kitchen3d.IsImportable(event.Name) {
				iw.schedule(ctx, event.Name)
			}
		case err, ok := <-iw.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("import watcher error", slog.Any("error", err))
		}
	}
}

func (iw *importWatcher) schedule(ctx context.Context, path string) {
	iw.mu.Lock()
	defer iw.mu.Unlock()
	if t, ok := iw.timers[path]; ok {
		t.Reset(settleDelay)
		return
	}
	iw.timers[path] = time.AfterFunc(settleDelay, func() {
		iw.mu.Lock()
		delete(iw.timers, path)
		iw.mu.Unlock()
		select {
		case iw.paths <- path:
		case <-ctx.Done():
		}
	})
}

func (iw *importWatcher) stopTimers() {
	iw.mu.Lock()
	defer iw.mu.Unlock()
	for p, t := range iw.timers {
		t.Stop()
		delete(iw.timers, p)
	}
}
