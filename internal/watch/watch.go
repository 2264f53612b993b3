// Package watch polls files for modification so the preview server can
// tell browsers to reload.
package watch

import (
	"context"
	"os"
	"sync"
	"time"
)

// DefaultInterval is the polling interval used when none is configured.
const DefaultInterval = 250 * time.Millisecond

// Change represents a detected file change.
type Change struct {
	Path    string
	Removed bool
}

// Watcher polls a fixed set of files for changes.
type Watcher struct {
	paths    []string
	interval time.Duration

	mu         sync.Mutex
	onChange   func(Change)
	timestamps map[string]time.Time
}

// New creates a watcher for paths. A zero interval uses DefaultInterval.
func New(interval time.Duration, paths ...string) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		paths:      paths,
		interval:   interval,
		timestamps: make(map[string]time.Time),
	}
}

// OnChange sets the callback for file changes.
func (w *Watcher) OnChange(fn func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Run polls until ctx is done. Files that do not exist yet are reported
// when they appear.
func (w *Watcher) Run(ctx context.Context) error {
	w.scan(false)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.scan(true)
		}
	}
}

// scan records modification times, reporting differences when notify is set.
func (w *Watcher) scan(notify bool) {
	var changes []Change

	w.mu.Lock()
	for _, p := range w.paths {
		info, err := os.Stat(p)
		last, known := w.timestamps[p]
		if err != nil {
			if known {
				delete(w.timestamps, p)
				changes = append(changes, Change{Path: p, Removed: true})
			}
			continue
		}
		if !known || !info.ModTime().Equal(last) {
			w.timestamps[p] = info.ModTime()
			changes = append(changes, Change{Path: p})
		}
	}
	callback := w.onChange
	w.mu.Unlock()

	if !notify || callback == nil {
		return
	}
	for _, c := range changes {
		callback(c)
	}
}
