package plugin

import (
	"context"
	"io/fs"

	"github.com/yuin/goldmark"

	"github.com/alnah/go-md2slides/internal/deck"
)

// Descriptor lists what a plugin contributes. Every field is optional; a
// phase configured for a plugin whose matching field is nil produces a
// warning, not an error.
type Descriptor struct {
	// Resources are registered with the bundle in the resource phase.
	Resources *Resources

	// External is handed to the markdown converter unchanged.
	External goldmark.Extender

	// Extend transforms the whole slide list. Returning a nil slice keeps
	// the previous list.
	Extend func(ctx context.Context, slides []*deck.Slide) ([]*deck.Slide, error)

	// Before rewrites each slide's markdown before conversion.
	Before *Rewrite

	// After rewrites each slide's HTML after conversion.
	After *Rewrite

	// Cleanup removes scratch state once the deck is written.
	Cleanup func() error
}

// Resources names the files a plugin ships with the deck.
type Resources struct {
	// Links are paths relative to Dist; .css and .js entries become tags in
	// the page head.
	Links []string

	// Lookup overrides the plugin's own file tree as the copy source.
	Lookup fs.FS

	// Dist is the directory copied into the bundle, "dist" when empty.
	Dist string
}
