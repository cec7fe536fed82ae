package plugin_test

import (
	"context"
	"regexp"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/alnah/go-md2slides/internal/bundle"
	"github.com/alnah/go-md2slides/internal/deck"
	"github.com/alnah/go-md2slides/internal/plugin"
)

// countingPlugin returns a definition whose Init increments calls and
// returns desc.
func countingPlugin(name string, calls *atomic.Int32, desc *plugin.Descriptor) plugin.Definition {
	return plugin.Definition{
		Name: name,
		Root: fstest.MapFS{
			"dist/" + name + ".css": &fstest.MapFile{Data: []byte("/* css */")},
		},
		Init: func(deck.Metadata, *plugin.Capabilities) (*plugin.Descriptor, error) {
			calls.Add(1)
			return desc, nil
		},
	}
}

func mustRegistry(t *testing.T, defs ...plugin.Definition) *plugin.Registry {
	t.Helper()
	r, err := plugin.NewRegistry(defs...)
	if err != nil {
		t.Fatalf("NewRegistry() unexpected error: %v", err)
	}
	return r
}

func mustBundle(t *testing.T) *bundle.Bundle {
	t.Helper()
	b, err := bundle.New(t.TempDir())
	if err != nil {
		t.Fatalf("bundle.New() unexpected error: %v", err)
	}
	return b
}

func literal(pattern, replacement string) *plugin.Rewrite {
	return &plugin.Rewrite{
		Pattern: regexp.MustCompile(pattern),
		Replace: func(context.Context, plugin.Match) (string, bool, error) {
			return replacement, true, nil
		},
	}
}
