// Package wrapping opens a deck with a title slide and closes it with a
// questions slide.
package wrapping

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-md2slides/internal/dateutil"
	"github.com/alnah/go-md2slides/internal/deck"
	"github.com/alnah/go-md2slides/internal/plugin"
)

// Name is the plugin identity used in phase maps.
const Name = "wrapping-pages"

// Metadata keys read by the plugin.
const (
	KeyDescription = "description"
	KeyDate        = "date"
	KeyQnA         = "wrapping-qna"
)

// DefaultQnA closes the deck when neither metadata nor locales name it.
const DefaultQnA = "Q&A"

// Classes set on the inserted slides.
const (
	TitleClass = "wrapping-title"
	QnAClass   = "wrapping-qna"
)

//go:embed dist locales.yaml
var root embed.FS

// Definition returns the plugin definition.
func Definition() plugin.Definition {
	return definition(time.Now)
}

func definition(now func() time.Time) plugin.Definition {
	return plugin.Definition{
		Name: Name,
		Root: root,
		Init: func(meta deck.Metadata, caps *plugin.Capabilities) (*plugin.Descriptor, error) {
			return initAt(meta, caps, now())
		},
	}
}

// initAt builds both slides up front so a bad date format fails the build
// before any slide is converted.
func initAt(meta deck.Metadata, caps *plugin.Capabilities, now time.Time) (*plugin.Descriptor, error) {
	title, err := TitleContent(meta, now)
	if err != nil {
		return nil, err
	}
	qna := meta.String(KeyQnA, caps.I18n("qna", DefaultQnA))

	return &plugin.Descriptor{
		Resources: &plugin.Resources{Links: []string{"wrapping-pages.css"}},
		Extend: func(_ context.Context, slides []*deck.Slide) ([]*deck.Slide, error) {
			out := make([]*deck.Slide, 0, len(slides)+2)
			out = append(out, caps.CreateSlide(title, yaml.MapSlice{{Key: deck.ClassKey, Value: TitleClass}}))
			out = append(out, slides...)
			out = append(out, caps.CreateSlide("# "+qna, yaml.MapSlice{{Key: deck.ClassKey, Value: QnAClass}}))
			return out, nil
		},
	}, nil
}

// TitleContent returns the markdown of the title slide: the title, then the
// description and the date when present. A date of auto or auto:FORMAT is
// resolved against now, with month names in the deck language.
func TitleContent(meta deck.Metadata, now time.Time) (string, error) {
	var b strings.Builder
	b.WriteString("# " + meta.String(deck.KeyTitle, deck.DefaultTitle))
	if desc := meta.String(KeyDescription, ""); desc != "" {
		b.WriteString("\n### " + desc)
	}
	if raw := meta.String(KeyDate, ""); raw != "" {
		date, err := dateutil.ResolveDate(raw, now, meta.String(deck.KeyLang, deck.DefaultLang))
		if err != nil {
			return "", fmt.Errorf("%s: %w", KeyDate, err)
		}
		b.WriteString("\n### " + date)
	}
	return b.String(), nil
}
