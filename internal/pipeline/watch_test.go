package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-md2slides/internal/pipeline"
	"github.com/alnah/go-md2slides/internal/plugin"
)

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

type buildLog struct {
	mu      sync.Mutex
	results []*pipeline.Result
	errs    []error
}

func (l *buildLog) record(res *pipeline.Result, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.results = append(l.results, res)
	l.errs = append(l.errs, err)
}

func (l *buildLog) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.results)
}

func (l *buildLog) last() (*pipeline.Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.results)
	return l.results[n-1], l.errs[n-1]
}

func TestWatcher_RebuildsOnChange(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "talk.md", "---\ntitle: First\n---\n# A\n")
	tp := newTestPlugins(t)
	d := newDriver(t, pipeline.Options{
		Input:     input,
		OutputDir: filepath.Join(dir, "out"),
		Registry:  tp.registry,
		Plugins:   plugin.PhaseConfig{},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var log buildLog
	done := make(chan error, 1)
	go func() {
		done <- pipeline.NewWatcher(d,
			pipeline.WithDebounce(50*time.Millisecond),
			pipeline.WithBuildFunc(log.record),
		).Run(ctx)
	}()

	eventually(t, 5*time.Second, 20*time.Millisecond, func() bool { return log.count() >= 1 }, "initial build did not run")

	// Unrelated files in the same directory are ignored.
	_ = os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)
	time.Sleep(200 * time.Millisecond)
	if n := log.count(); n != 1 {
		t.Errorf("builds after unrelated change = %d, want 1", n)
	}

	_ = os.WriteFile(input, []byte("---\ntitle: Second\n---\n# A\n---\n# B\n"), 0o644)

	eventually(t, 5*time.Second, 20*time.Millisecond, func() bool {
		if log.count() < 2 {
			return false
		}
		res, err := log.last()
		return err == nil && res.Title == "Second"
	}, "change did not trigger a rebuild")

	res, _ := log.last()
	if res.Slides != 2 {
		t.Errorf("rebuilt deck has %d slides, want 2", res.Slides)
	}
	if d.State() != pipeline.StateDone {
		t.Errorf("State() = %v, want done", d.State())
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v, want nil on cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestWatcher_BuildErrorDoesNotStop(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "talk.md", "---\nplugins:\n  extend: [nope]\n---\n# A\n")
	tp := newTestPlugins(t)
	d := newDriver(t, pipeline.Options{
		Input:     input,
		OutputDir: filepath.Join(dir, "out"),
		Registry:  tp.registry,
		Plugins:   plugin.PhaseConfig{},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var log buildLog
	go func() {
		_ = pipeline.NewWatcher(d,
			pipeline.WithDebounce(50*time.Millisecond),
			pipeline.WithBuildFunc(log.record),
		).Run(ctx)
	}()

	eventually(t, 5*time.Second, 20*time.Millisecond, func() bool { return log.count() >= 1 }, "initial build did not run")
	if _, err := log.last(); err == nil || !strings.Contains(err.Error(), "nope") {
		t.Errorf("first build error = %v, want unknown plugin", err)
	}

	_ = os.WriteFile(input, []byte("# fixed\n"), 0o644)

	eventually(t, 5*time.Second, 20*time.Millisecond, func() bool {
		if log.count() < 2 {
			return false
		}
		_, err := log.last()
		return err == nil
	}, "watcher should keep running after a failed build")
}

func TestWatcher_DebounceCoalescesWrites(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "talk.md", "# 0\n")
	tp := newTestPlugins(t)
	d := newDriver(t, pipeline.Options{
		Input:     input,
		OutputDir: filepath.Join(dir, "out"),
		Registry:  tp.registry,
		Plugins:   plugin.PhaseConfig{},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var log buildLog
	go func() {
		_ = pipeline.NewWatcher(d,
			pipeline.WithDebounce(300*time.Millisecond),
			pipeline.WithBuildFunc(log.record),
		).Run(ctx)
	}()

	eventually(t, 5*time.Second, 20*time.Millisecond, func() bool { return log.count() >= 1 }, "initial build did not run")

	for i := 1; i <= 5; i++ {
		_ = os.WriteFile(input, []byte("# "+strings.Repeat("x", i)+"\n"), 0o644)
		time.Sleep(20 * time.Millisecond)
	}

	eventually(t, 5*time.Second, 20*time.Millisecond, func() bool { return log.count() >= 2 }, "burst did not trigger a rebuild")
	time.Sleep(500 * time.Millisecond)
	if n := log.count(); n != 2 {
		t.Errorf("builds = %d, want 2 (initial + one debounced)", n)
	}
}
