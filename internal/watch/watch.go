// Package watch re-runs a callback when watched files change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/dshills/congram/internal/logging"
)

// DefaultDelay is the default debounce delay.
const DefaultDelay = 100 * time.Millisecond

// ErrClosed is returned when using a closed watcher.
var ErrClosed = errors.New("watcher is closed")

// Watcher reports changes to a set of files. Rapid changes are coalesced:
// the callback runs once per file after no event has arrived for the
// debounce delay.
//
// Files are watched through their directories so editors that replace a
// file on save are still seen.
type Watcher struct {
	fs     *fsnotify.Watcher
	delay  time.Duration
	logger *log.Logger

	mu     sync.Mutex
	files  map[string]bool
	dirs   map[string]bool
	closed bool
}

// New creates a watcher with the given debounce delay (0 = DefaultDelay).
func New(delay time.Duration, logger *log.Logger) (*Watcher, error) {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if logger == nil {
		logger = logging.Discard()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fs:     fsw,
		delay:  delay,
		logger: logging.WithComponent(logger, "watch"),
		files:  make(map[string]bool),
		dirs:   make(map[string]bool),
	}, nil
}

// Add starts watching path.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}

	dir := filepath.Dir(abs)
	if !w.dirs[dir] {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	w.files[abs] = true
	w.logger.Debug("watching", "path", abs)
	return nil
}

// Files returns the watched files, sorted.
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Close stops watching. Run returns once its loop sees the close.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	return w.fs.Close()
}

// Run delivers debounced changes to fn until ctx is done or the watcher
// is closed. fn runs on the calling goroutine, once per changed file, in
// path order. Run returns nil when ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, fn func(path string)) error {
	timer := time.NewTimer(w.delay)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return ErrClosed
			}
			if !w.relevant(event) {
				continue
			}
			pending[filepath.Clean(event.Name)] = true
			timer.Reset(w.delay)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return ErrClosed
			}
			w.logger.Warn("watch error", "err", err)

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			clear(pending)

			for _, p := range paths {
				w.logger.Debug("changed", "path", p)
				fn(p)
			}
		}
	}
}

// relevant reports whether event changes the content of a watched file.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[filepath.Clean(event.Name)]
}
