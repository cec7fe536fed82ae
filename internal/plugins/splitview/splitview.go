// Package splitview lays out two markdown fragments side by side.
//
// A split view is written as three %% fence lines:
//
//	%%
//	left column markdown
//	%%
//	right column markdown
//	%%
package splitview

import (
	"context"
	"embed"
	"regexp"

	"github.com/alnah/go-md2slides/internal/deck"
	"github.com/alnah/go-md2slides/internal/plugin"
)

// Name is the plugin identity used in phase maps.
const Name = "splitview"

//go:embed dist
var root embed.FS

// Pattern matches one split view block.
var Pattern = regexp.MustCompile(`%%\n([\s\S]*?)\n%%\n([\s\S]*?)\n%%`)

// Definition returns the plugin definition.
func Definition() plugin.Definition {
	return plugin.Definition{Name: Name, Root: root, Init: Init}
}

// Init declares the stylesheet and the before-phase rewrite.
func Init(deck.Metadata, *plugin.Capabilities) (*plugin.Descriptor, error) {
	return &plugin.Descriptor{
		Resources: &plugin.Resources{Links: []string{"splitview.css"}},
		Before:    &plugin.Rewrite{Pattern: Pattern, Replace: replace},
	}, nil
}

// Blank lines around each column end the HTML blocks, so the columns are
// still parsed as markdown.
func replace(_ context.Context, m plugin.Match) (string, bool, error) {
	return "<div class=\"split-view\">\n<div class=\"lhs\">\n\n" + m.Group(1) +
		"\n\n</div>\n<div class=\"rhs\">\n\n" + m.Group(2) +
		"\n\n</div>\n</div>\n", true, nil
}
