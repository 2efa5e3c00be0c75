// Package watch runs a callback when any of a set of files changes.
//
// The parent directories are watched rather than the files, so editors
// that save by writing a new file and renaming it over the old one are
// seen. Events for a file are debounced: the callback runs once the file
// has been quiet for the debounce window.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/thoreinstein/airules/internal/errors"
)

// DefaultDebounce is the quiet period used when Watcher.Debounce is zero.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches Files and calls OnChange with the files that changed.
type Watcher struct {
	Files    []string
	Debounce time.Duration
	Logger   *slog.Logger

	// OnChange errors are logged and watching continues.
	OnChange func(ctx context.Context, changed []string) error
}

// Run watches until ctx is done. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	if len(w.Files) == 0 {
		return errors.New("no files to watch")
	}
	if w.OnChange == nil {
		return errors.New("no change handler")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating file watcher")
	}
	defer fw.Close()

	targets := make(map[string]bool, len(w.Files))
	dirs := make(map[string]bool)
	for _, f := range w.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return errors.Wrapf(err, "resolving %s", f)
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			return errors.Wrapf(err, "watching %s", dir)
		}
		w.logger().Debug("watching directory", "dir", dir)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	p := newPending(debounce)

	tick := debounce / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !targets[name] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger().Debug("file event", "path", name, "op", event.Op.String())
			p.add(name, time.Now())

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger().Warn("watch error", "error", err)

		case now := <-ticker.C:
			changed := p.settled(now)
			if len(changed) == 0 {
				continue
			}
			w.logger().Info("change detected", "files", changed)
			if err := w.OnChange(ctx, changed); err != nil {
				w.logger().Error("change handler failed", "error", err)
			}
		}
	}
}

func (w *Watcher) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}

// pending tracks the last event time per path.
type pending struct {
	mu     sync.Mutex
	window time.Duration
	last   map[string]time.Time
}

func newPending(window time.Duration) *pending {
	return &pending{window: window, last: make(map[string]time.Time)}
}

func (p *pending) add(path string, at time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last[path] = at
}

// settled removes and returns, sorted, the paths quiet since window
// before now.
func (p *pending) settled(now time.Time) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []string
	for path, at := range p.last {
		if now.Sub(at) >= p.window {
			out = append(out, path)
			delete(p.last, path)
		}
	}
	sort.Strings(out)
	return out
}
