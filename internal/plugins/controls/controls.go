// Package controls ships the in-browser navigation: keyboard, touch and
// hash routing between slides, plus a print mode used by PDF export.
package controls

import (
	"embed"

	"github.com/alnah/go-md2slides/internal/deck"
	"github.com/alnah/go-md2slides/internal/plugin"
)

// Name is the plugin identity used in phase maps.
const Name = "controls"

//go:embed dist
var root embed.FS

// Definition returns the plugin definition.
func Definition() plugin.Definition {
	return plugin.Definition{Name: Name, Root: root, Init: Init}
}

// Init declares the navigation script and stylesheet.
func Init(deck.Metadata, *plugin.Capabilities) (*plugin.Descriptor, error) {
	return &plugin.Descriptor{
		Resources: &plugin.Resources{Links: []string{"controls.css", "controls.js"}},
	}, nil
}
