// Package global ships the base deck stylesheet and a stylesheet generated
// from the document's layout metadata.
package global

import (
	"embed"
	"fmt"

	"github.com/alnah/go-md2slides/internal/deck"
	"github.com/alnah/go-md2slides/internal/plugin"
)

// Name is the plugin identity used in phase maps.
const Name = "global"

// MetadataCSS is generated in the plugin's resources directory on every build.
const MetadataCSS = "metadata.css"

//go:embed dist
var root embed.FS

// Definition returns the plugin definition.
func Definition() plugin.Definition {
	return plugin.Definition{Name: Name, Root: root, Init: Init}
}

// Init writes metadata.css and declares both stylesheets.
func Init(meta deck.Metadata, caps *plugin.Capabilities) (*plugin.Descriptor, error) {
	s := deck.SettingsFrom(meta)
	if _, err := caps.Bundle.Resources.WriteFile(MetadataCSS, []byte(metadataCSS(s))); err != nil {
		return nil, fmt.Errorf("writing %s: %w", MetadataCSS, err)
	}
	return &plugin.Descriptor{
		Resources: &plugin.Resources{Links: []string{"global.css", MetadataCSS}},
	}, nil
}

func metadataCSS(s deck.Settings) string {
	return fmt.Sprintf(`:root {
  --font-size: %[1]s;
  --font-family: %[2]s;
  --slide-width: %[3]s;
}

html {
  font-size: %[1]s;
  font-family: %[2]s;
}

div.slide {
  width: %[3]s;
}
`, s.FontSize, s.FontFamily, s.SlideWidth)
}
