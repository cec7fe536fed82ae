// Package tables renders tables whose cells span rows and columns.
//
// A table is a grid of area names, an optional @ line separating the header
// from the body, and a JSON object mapping names to cell contents:
//
//	@@table
//	name  name  score
//	@
//	alice bob   10
//	@@
//	"name": "Players",
//	"score": {"text": "Score", "style": "color: red"}
//	@@end
//
// Every name must cover a rectangle; it becomes one cell with the matching
// rowspan and colspan. A name without settings is its own content. Ending the
// block with @@end-np leaves it unparsed.
package tables

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/alnah/go-md2slides/internal/deck"
	"github.com/alnah/go-md2slides/internal/plugin"
)

// Name is the plugin identity used in phase maps.
const Name = "tables"

//go:embed dist
var root embed.FS

// Pattern matches one table block.
var Pattern = regexp.MustCompile(`@@table\s*([\s\S]*?)\s*@@\s*([\s\S]*?)@@end(-np)?`)

const sectionSeparator = "@"

// Definition returns the plugin definition.
func Definition() plugin.Definition {
	return plugin.Definition{Name: Name, Root: root, Init: Init}
}

// Init declares the stylesheet and the before-phase rewrite.
func Init(deck.Metadata, *plugin.Capabilities) (*plugin.Descriptor, error) {
	return &plugin.Descriptor{
		Resources: &plugin.Resources{Links: []string{"tables.css"}},
		Before:    &plugin.Rewrite{Pattern: Pattern, Replace: replace},
	}, nil
}

func replace(_ context.Context, m plugin.Match) (string, bool, error) {
	if m.Has(3) {
		return strings.TrimSuffix(m.Text, "-np"), true, nil
	}

	settings, err := parseSettings(m.Group(2))
	if err != nil {
		return "", false, err
	}
	head, body, err := parseLayout(m.Group(1))
	if err != nil {
		return "", false, err
	}

	var b strings.Builder
	b.WriteString("\n<table>\n<thead>\n")
	if err := writeRows(&b, head, settings, "th"); err != nil {
		return "", false, err
	}
	b.WriteString("</thead>\n<tbody>\n")
	if err := writeRows(&b, body, settings, "td"); err != nil {
		return "", false, err
	}
	b.WriteString("</tbody>\n</table>\n")
	return b.String(), true, nil
}

// ---------------------------------------------------------------------------
// Settings
// ---------------------------------------------------------------------------

// cell is the content of one named area.
type cell struct {
	Text  string `json:"text"`
	Style string `json:"style"`
	// styled is set when the settings used the object form, which always
	// renders a style attribute.
	styled bool
}

// parseSettings decodes the JSON members of a table block. The enclosing
// braces are optional.
func parseSettings(src string) (map[string]cell, error) {
	src = strings.TrimSpace(src)
	if !strings.HasPrefix(src, "{") {
		src = "{" + src + "}"
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(src), &raw); err != nil {
		return nil, fmt.Errorf("%w: invalid table json: %v\n%s", plugin.ErrInvalidMarkup, err, src)
	}

	settings := make(map[string]cell, len(raw))
	for name, value := range raw {
		var text string
		if err := json.Unmarshal(value, &text); err == nil {
			settings[name] = cell{Text: text}
			continue
		}
		var c cell
		if err := json.Unmarshal(value, &c); err != nil {
			return nil, fmt.Errorf("%w: table cell %q: want a string or {text, style}", plugin.ErrInvalidMarkup, name)
		}
		c.styled = true
		settings[name] = c
	}
	return settings, nil
}

// ---------------------------------------------------------------------------
// Layout
// ---------------------------------------------------------------------------

type grid [][]string

// parseLayout splits the layout into its header and body grids at the first
// line holding a lone @. Without that line every row is a header row.
func parseLayout(src string) (head, body grid, err error) {
	lines := strings.Split(src, "\n")
	split := len(lines)
	for i, line := range lines {
		if strings.TrimSpace(line) == sectionSeparator {
			split = i
			break
		}
	}

	if head, err = parseGrid(lines[:split]); err != nil {
		return nil, nil, err
	}
	if split < len(lines) {
		if body, err = parseGrid(lines[split+1:]); err != nil {
			return nil, nil, err
		}
	}
	return head, body, nil
}

func parseGrid(lines []string) (grid, error) {
	var g grid
	for _, line := range lines {
		row := strings.Fields(line)
		if len(row) == 0 {
			continue
		}
		if len(row) == 1 && row[0] == sectionSeparator {
			return nil, fmt.Errorf("%w: table layout has more than one @ separator", plugin.ErrInvalidMarkup)
		}
		if len(g) > 0 && len(row) != len(g[0]) {
			return nil, fmt.Errorf("%w: table row %q has %d cells, want %d",
				plugin.ErrInvalidMarkup, strings.TrimSpace(line), len(row), len(g[0]))
		}
		g = append(g, row)
	}
	return g, nil
}

// writeRows emits one tr per grid row. Each unvisited name grows right and
// down as far as it repeats; the covered rectangle must hold only that name.
func writeRows(b *strings.Builder, g grid, settings map[string]cell, element string) error {
	if len(g) == 0 {
		return nil
	}
	rows, cols := len(g), len(g[0])
	used := make([][]bool, rows)
	for i := range used {
		used[i] = make([]bool, cols)
	}

	for i := 0; i < rows; i++ {
		b.WriteString("<tr>")
		for j := 0; j < cols; j++ {
			if used[i][j] {
				continue
			}
			name := g[i][j]
			k := i + 1
			for k < rows && g[k][j] == name {
				k++
			}
			l := j + 1
			for l < cols && g[i][l] == name {
				l++
			}

			for y := i; y < k; y++ {
				for x := j; x < l; x++ {
					if g[y][x] != name || used[y][x] {
						return fmt.Errorf("%w: table area %q is not a rectangle:\n%s",
							plugin.ErrInvalidMarkup, name, g)
					}
					used[y][x] = true
				}
			}

			writeCell(b, element, name, settings[name], k-i, l-j)
		}
		b.WriteString("</tr>\n")
	}
	return nil
}

func writeCell(b *strings.Builder, element, name string, c cell, rowspan, colspan int) {
	b.WriteString("<" + element)
	if colspan > 1 {
		fmt.Fprintf(b, ` colspan="%d"`, colspan)
	}
	if rowspan > 1 {
		fmt.Fprintf(b, ` rowspan="%d"`, rowspan)
	}
	if c.styled {
		fmt.Fprintf(b, ` style="%s"`, html.EscapeString(c.Style))
	}
	b.WriteString(">")
	if c.Text != "" {
		b.WriteString(c.Text)
	} else {
		b.WriteString(html.EscapeString(name))
	}
	b.WriteString("</" + element + ">")
}

func (g grid) String() string {
	lines := make([]string, len(g))
	for i, row := range g {
		lines[i] = "  " + strings.Join(row, " ")
	}
	return strings.Join(lines, "\n")
}
