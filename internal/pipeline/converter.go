package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-md2slides/internal/plugin"
)

// HTMLConverter abstracts Markdown to HTML conversion of one slide.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// Converter renders slide markdown with goldmark, applying before-phase
// rewrites to the markdown and after-phase rewrites to the produced HTML.
type Converter struct {
	md     goldmark.Markdown
	before []plugin.Extension
	after  []plugin.Extension
}

// NewConverter creates a Converter with GFM extensions plus the external
// extensions and rewrites of routes. A nil routes yields a plain converter.
func NewConverter(routes *plugin.Routes) *Converter {
	exts := []goldmark.Extender{
		extension.GFM,      // Tables, strikethrough, autolinks, task lists
		extension.Footnote, // [^1] footnotes
	}
	c := &Converter{}
	if routes != nil {
		exts = append(exts, routes.Externals()...)
		c.before = routes.Rewrites(plugin.PhaseBefore)
		c.after = routes.Rewrites(plugin.PhaseAfter)
	}

	c.md = goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithRendererOptions(
			// Rewrite plugins emit raw HTML blocks (tables, split views,
			// runner placeholders) that must reach the output untouched.
			html.WithUnsafe(),
		),
	)
	return c
}

// ToHTML converts one slide's markdown to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *Converter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	content, err := applyRewrites(ctx, c.before, content)
	if err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	var r result
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r = <-done:
	}
	if r.err != nil {
		return "", r.err
	}

	return applyRewrites(ctx, c.after, r.html)
}

func applyRewrites(ctx context.Context, exts []plugin.Extension, text string) (string, error) {
	for _, e := range exts {
		var err error
		if text, err = e.Apply(ctx, text); err != nil {
			return "", err
		}
	}
	return text, nil
}

// Compile-time interface check.
var _ HTMLConverter = (*Converter)(nil)
