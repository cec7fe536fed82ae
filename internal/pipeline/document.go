package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-md2slides/internal/assets"
	"github.com/alnah/go-md2slides/internal/deck"
)

// Generator is written in the generator meta tag of every deck.
const Generator = "go-md2slides"

// MetaTag is one <meta name=... content=...> entry of the page head.
type MetaTag struct {
	Name    string
	Content string
}

// DeckData is the value the deck template is executed with.
type DeckData struct {
	Lang      string
	Title     string
	Generator string
	Meta      []MetaTag
	Links     template.HTML
	Slides    template.HTML
}

// Assembler wraps rendered slides into the final page.
type Assembler struct {
	tmpl  *template.Template
	style string
}

// NewAssembler loads the deck template and theme stylesheet through loader.
func NewAssembler(loader assets.Loader, theme string) (*Assembler, error) {
	src, err := loader.LoadTemplate(assets.DeckTemplateName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplate, err)
	}
	tmpl, err := template.New(assets.DeckTemplateName).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing: %v", ErrTemplate, err)
	}
	style, err := loader.LoadStyle(theme)
	if err != nil {
		return nil, fmt.Errorf("%w: theme: %w", ErrTemplate, err)
	}
	return &Assembler{tmpl: tmpl, style: style}, nil
}

// Assemble executes the template and inlines the theme stylesheet.
func (a *Assembler) Assemble(ctx context.Context, data DeckData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := a.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return injectStyle(buf.String(), a.style), nil
}

// injectStyle inserts a <style> block before </head>, after <body> when
// there is no head, or in front of the page as a last resort.
func injectStyle(page, css string) string {
	if css == "" {
		return page
	}

	block := "<style>" + sanitizeCSS(css) + "</style>"
	lower := strings.ToLower(page)

	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return page[:idx] + block + "\n" + page[idx:]
	}
	if idx := strings.Index(lower, "<body"); idx != -1 {
		if end := strings.Index(page[idx:], ">"); end != -1 {
			pos := idx + end + 1
			return page[:pos] + block + page[pos:]
		}
	}
	return block + page
}

// sanitizeCSS escapes sequences that could close the <style> element early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// metaTags returns the allow-listed metadata keys present in m, in
// deck.HTMLMetaKeys order. List values are joined with ", ".
func metaTags(m deck.Metadata) []MetaTag {
	var tags []MetaTag
	for _, key := range deck.HTMLMetaKeys {
		values := m.Strings(key)
		if len(values) == 0 {
			continue
		}
		content := strings.Join(values, ", ")
		if strings.TrimSpace(content) == "" {
			continue
		}
		tags = append(tags, MetaTag{Name: key, Content: content})
	}
	return tags
}

// renderSlide wraps a slide's HTML in its frame element.
func renderSlide(body string, s *deck.Slide) string {
	class := "slide"
	if s.IsSubslide() {
		class += " subslide"
	}
	if extra := s.Class(); extra != "" {
		class += " " + extra
	}
	return `<div class="` + template.HTMLEscapeString(class) + `">` + "\n" + body + "</div>\n"
}
