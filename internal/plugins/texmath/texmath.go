// Package texmath turns $$...$$ blocks into display-math elements that the
// bundled script typesets in the browser.
package texmath

import (
	"context"
	"embed"
	"html"
	"regexp"
	"strings"

	"github.com/alnah/go-md2slides/internal/deck"
	"github.com/alnah/go-md2slides/internal/plugin"
)

// Name is the plugin identity used in phase maps.
const Name = "math"

//go:embed dist
var root embed.FS

// Pattern matches a display-math block.
var Pattern = regexp.MustCompile(`\$\$([\s\S]*?)\$\$`)

// Definition returns the plugin definition.
func Definition() plugin.Definition {
	return plugin.Definition{Name: Name, Root: root, Init: Init}
}

// Init declares the typesetting resources and the before-phase rewrite.
func Init(deck.Metadata, *plugin.Capabilities) (*plugin.Descriptor, error) {
	return &plugin.Descriptor{
		Resources: &plugin.Resources{Links: []string{"math.css", "math.js"}},
		Before:    &plugin.Rewrite{Pattern: Pattern, Replace: replace},
	}, nil
}

// replace emits a single-line HTML block between blank lines, so markdown
// leaves the TeX source alone. Empty blocks stay as written.
func replace(_ context.Context, m plugin.Match) (string, bool, error) {
	tex := strings.TrimSpace(m.Group(1))
	if tex == "" {
		return "", false, nil
	}
	tex = strings.Join(strings.Fields(tex), " ")
	return "\n\n<div class=\"math display\">\\[" + html.EscapeString(tex) + "\\]</div>\n\n", true, nil
}
