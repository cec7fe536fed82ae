package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last change event before a
// rebuild starts. Editors often write a file in several steps.
const DefaultDebounce = 200 * time.Millisecond

// BuildFunc receives the outcome of every watch-mode build.
type BuildFunc func(res *Result, err error)

// Watcher rebuilds a Driver's input whenever the file changes.
type Watcher struct {
	driver   *Driver
	debounce time.Duration
	onBuild  BuildFunc
	logger   *slog.Logger
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets the quiet period before a rebuild.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithBuildFunc sets the callback run after every build.
func WithBuildFunc(fn BuildFunc) WatchOption {
	return func(w *Watcher) { w.onBuild = fn }
}

// NewWatcher creates a Watcher for d.
func NewWatcher(d *Driver, opts ...WatchOption) *Watcher {
	w := &Watcher{
		driver:   d,
		debounce: DefaultDebounce,
		logger:   d.logger,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run builds once, then rebuilds on every change of the input file until ctx
// is cancelled. Build errors are logged and reported to the BuildFunc; they
// do not stop the loop. Builds never overlap: events arriving during a build
// schedule one more build after it.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer fw.Close()

	input, err := filepath.Abs(w.driver.Input())
	if err != nil {
		return fmt.Errorf("resolving input: %w", err)
	}
	// Watch the directory: editors replace files by rename, which drops a
	// watch set on the file itself.
	dir := filepath.Dir(input)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	w.build(ctx)
	w.logger.Info("watching for changes", "path", input)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			w.logger.Info("watcher stopped")
			return nil

		case <-fire:
			timer, fire = nil, nil
			w.build(ctx)

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != input {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case werr, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", werr)
		}
	}
}

func (w *Watcher) build(ctx context.Context) {
	res, err := w.driver.Build(ctx)
	if err != nil && ctx.Err() == nil {
		w.logger.Error("build failed", "error", err)
	}
	if w.onBuild != nil {
		w.onBuild(res, err)
	}
}
