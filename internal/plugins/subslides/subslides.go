// Package subslides reveals a slide step by step. A line holding only --
// ends a step; each step becomes a slide showing everything up to it.
package subslides

import (
	"context"
	"regexp"

	"github.com/alnah/go-md2slides/internal/deck"
	"github.com/alnah/go-md2slides/internal/plugin"
)

// Name is the plugin identity used in phase maps.
const Name = "subslides"

// Separator matches a step separator line.
var Separator = regexp.MustCompile(`(?m)^[ \t]*--[ \t]*\n`)

// Definition returns the plugin definition.
func Definition() plugin.Definition {
	return plugin.Definition{Name: Name, Init: Init}
}

// Init returns the extend function.
func Init(_ deck.Metadata, caps *plugin.Capabilities) (*plugin.Descriptor, error) {
	return &plugin.Descriptor{
		Extend: func(ctx context.Context, slides []*deck.Slide) ([]*deck.Slide, error) {
			return Expand(ctx, caps, slides)
		},
	}, nil
}

// Expand replaces every slide by its steps. The first step keeps the slide's
// attributes; later steps copy them and are marked as subslides.
func Expand(ctx context.Context, caps *plugin.Capabilities, slides []*deck.Slide) ([]*deck.Slide, error) {
	out := make([]*deck.Slide, 0, len(slides))
	for _, s := range slides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		steps := Separator.Split(s.Content, -1)
		content := steps[0]
		out = append(out, caps.CreateSlide(content, s.Attrs))
		for _, step := range steps[1:] {
			content += step
			sub := caps.CreateSlide(content, s.Attrs)
			sub.Set(deck.SubslideKey, true)
			out = append(out, sub)
		}
	}
	return out, nil
}
