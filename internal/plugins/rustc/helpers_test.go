package rustc

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-md2slides/internal/bundle"
	"github.com/alnah/go-md2slides/internal/deck"
	"github.com/alnah/go-md2slides/internal/plugin"
)

// fakeExecutor records cargo invocations and answers them from respond.
type fakeExecutor struct {
	mu      sync.Mutex
	calls   []string
	respond func(ctx context.Context, sub, bin string) ([]byte, error)
}

func (f *fakeExecutor) Run(ctx context.Context, _, name string, args ...string) ([]byte, error) {
	sub, bin := "", ""
	if len(args) > 0 {
		sub = args[0]
	}
	for i, a := range args {
		if a == "--bin" && i+1 < len(args) {
			bin = args[i+1]
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, name+" "+sub)
	f.mu.Unlock()

	if f.respond == nil {
		return nil, nil
	}
	return f.respond(ctx, sub, bin)
}

// count returns how many times cargo sub ran.
func (f *fakeExecutor) count(sub string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == "cargo "+sub {
			n++
		}
	}
	return n
}

func (f *fakeExecutor) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// printing answers `cargo run` with text and every other command with nothing.
func printing(text string) func(context.Context, string, string) ([]byte, error) {
	return func(_ context.Context, sub, _ string) ([]byte, error) {
		if sub == "run" {
			return []byte(text), nil
		}
		return nil, nil
	}
}

// newPlugin initializes the plugin in a bundle rooted at outputDir.
func newPlugin(t *testing.T, outputDir string, meta yaml.MapSlice, exec Executor) (*plugin.Descriptor, bundle.Instance) {
	t.Helper()
	b, err := bundle.New(outputDir)
	if err != nil {
		t.Fatal(err)
	}
	inst, err := b.PluginInstance(Name)
	if err != nil {
		t.Fatal(err)
	}
	desc, err := initWith(deck.NewMetadata(meta), &plugin.Capabilities{Bundle: inst}, exec)
	if err != nil {
		t.Fatalf("Init() unexpected error: %v", err)
	}
	return desc, inst
}

// render runs the before rewrite, then the after rewrite, skipping markdown.
func render(t *testing.T, desc *plugin.Descriptor, markdown string) (before, after string) {
	t.Helper()
	before, err := desc.Before.Apply(context.Background(), markdown)
	if err != nil {
		t.Fatalf("Before.Apply() unexpected error: %v", err)
	}
	after, err = desc.After.Apply(context.Background(), before)
	if err != nil {
		t.Fatalf("After.Apply() unexpected error: %v", err)
	}
	return before, after
}

func rustBlock(code string) string {
	return "```rust\n" + strings.TrimSpace(code) + "\n```"
}

// displayedFence returns the rust fence emitted for display, up to its
// closing line.
func displayedFence(t *testing.T, before string) string {
	t.Helper()
	start := strings.Index(before, "```rust\n")
	if start < 0 {
		t.Fatalf("no displayed fence in:\n%s", before)
	}
	end := strings.Index(before[start+len("```rust\n"):], "```")
	if end < 0 {
		t.Fatalf("unterminated fence in:\n%s", before)
	}
	return before[start : start+len("```rust\n")+end]
}
