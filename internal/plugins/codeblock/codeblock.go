// Package codeblock frames rendered code blocks with a line-number gutter and
// pairs each block with the runner output that follows it.
package codeblock

import (
	"context"
	"embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/go-md2slides/internal/deck"
	"github.com/alnah/go-md2slides/internal/plugin"
)

// Name is the plugin identity used in phase maps.
const Name = "codeblock"

//go:embed dist
var root embed.FS

// Pattern matches a rendered code block and an optional runner output block
// right after it.
var Pattern = regexp.MustCompile(`(<pre[^>]*><code[^>]*>[\s\S]*?</code></pre>)(?:\s*(<pre><div class="rustc hljs">[\s\S]*?</pre>))?`)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Definition returns the plugin definition.
func Definition() plugin.Definition {
	return plugin.Definition{Name: Name, Root: root, Init: Init}
}

// Init declares the stylesheet and the after-phase rewrite.
func Init(deck.Metadata, *plugin.Capabilities) (*plugin.Descriptor, error) {
	return &plugin.Descriptor{
		Resources: &plugin.Resources{Links: []string{"codeblock.css"}},
		After:     &plugin.Rewrite{Pattern: Pattern, Replace: replace},
	}, nil
}

func replace(_ context.Context, m plugin.Match) (string, bool, error) {
	code := m.Group(1)

	var b strings.Builder
	b.WriteString("<div class=\"code-block\">\n<div class=\"code-container\">\n<div class=\"line-numbers\">")
	for i := 1; i <= countLines(code); i++ {
		fmt.Fprintf(&b, "<span class=\"line-number\">%d</span>\n", i)
	}
	b.WriteString("</div>\n")
	b.WriteString(code)
	b.WriteString("\n</div>\n")
	if m.Has(2) {
		b.WriteString("<div class=\"rustc-container\">\n")
		b.WriteString(m.Group(2))
		b.WriteString("\n</div>\n")
	}
	b.WriteString("</div>")
	return b.String(), true, nil
}

// countLines returns the number of source lines in a rendered block. Markup
// is dropped first, so highlighter spans do not count.
func countLines(block string) int {
	text := strings.TrimSpace(tagPattern.ReplaceAllString(block, ""))
	if text == "" {
		return 1
	}
	return strings.Count(text, "\n") + 1
}
