package plugin

import (
	"log/slog"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-md2slides/internal/bundle"
	"github.com/alnah/go-md2slides/internal/deck"
)

// Capabilities is what the Loader hands to a plugin's Init.
type Capabilities struct {
	// Bundle holds the plugin's own resources and cache directories.
	Bundle bundle.Instance
	// Logger is tagged with the plugin name.
	Logger *slog.Logger

	strings map[string]string
}

// CreateSlide builds a slide, for extend-phase plugins that insert slides.
func (c *Capabilities) CreateSlide(content string, attrs yaml.MapSlice) *deck.Slide {
	return deck.NewSlide(content, attrs)
}

// I18n looks key up in the plugin's table for the document language,
// falling back to fallback, then to key itself.
func (c *Capabilities) I18n(key, fallback string) string {
	if s, ok := c.strings[key]; ok && s != "" {
		return s
	}
	if fallback != "" {
		return fallback
	}
	return key
}
