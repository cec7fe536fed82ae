// Package highlight adds syntax highlighting to fenced code blocks through a
// goldmark extension and generates the matching chroma stylesheet.
package highlight

import (
	"bytes"
	"embed"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	highlighting "github.com/yuin/goldmark-highlighting/v2"

	"github.com/alnah/go-md2slides/internal/deck"
	"github.com/alnah/go-md2slides/internal/plugin"
)

// Name is the plugin identity used in phase maps.
const Name = "highlight"

// KeyCodeTheme selects the chroma style.
const KeyCodeTheme = "code-theme"

// DefaultTheme is used when the document names no theme.
const DefaultTheme = "github"

// ThemeCSS is generated in the plugin's resources directory.
const ThemeCSS = "theme.css"

//go:embed dist
var root embed.FS

// Definition returns the plugin definition.
func Definition() plugin.Definition {
	return plugin.Definition{Name: Name, Root: root, Init: Init}
}

// Init writes the theme stylesheet and returns the converter extension.
// An unknown theme falls back to chroma's default style with a warning.
func Init(meta deck.Metadata, caps *plugin.Capabilities) (*plugin.Descriptor, error) {
	theme := meta.String(KeyCodeTheme, DefaultTheme)
	if _, ok := styles.Registry[theme]; !ok && caps.Logger != nil {
		caps.Logger.Warn("unknown code theme, using fallback", "theme", theme, "fallback", styles.Fallback.Name)
	}

	css, err := ThemeStylesheet(theme)
	if err != nil {
		return nil, err
	}
	if _, err := caps.Bundle.Resources.WriteFile(ThemeCSS, css); err != nil {
		return nil, fmt.Errorf("writing %s: %w", ThemeCSS, err)
	}

	return &plugin.Descriptor{
		Resources: &plugin.Resources{Links: []string{"highlight.css", ThemeCSS}},
		External: highlighting.NewHighlighting(
			highlighting.WithStyle(theme),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // CSS classes for smaller HTML and external stylesheet control
			),
		),
	}, nil
}

// ThemeStylesheet returns the CSS rules of chroma style name.
func ThemeStylesheet(name string) ([]byte, error) {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(name)); err != nil {
		return nil, fmt.Errorf("generating %s stylesheet: %w", name, err)
	}
	return buf.Bytes(), nil
}
