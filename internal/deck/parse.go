package deck

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-md2slides/internal/yamlutil"
)

// Sentinel errors for document parsing.
var (
	ErrEmptyDocument      = errors.New("document has no content")
	ErrInvalidFrontMatter = errors.New("invalid front matter")
)

// Delimiter is the line written between segments by Join.
const Delimiter = "---\n"

// delimiterPattern matches a line made of three dashes, surrounding blanks allowed.
var delimiterPattern = regexp.MustCompile(`(?m)^[ \t]*---[ \t]*\n`)

// Document is the raw split of a source file.
type Document struct {
	FrontMatter string
	Bodies      []string
}

// Split cuts text on every delimiter line. Line endings must already be
// normalized to "\n".
func Split(text string) []string {
	return delimiterPattern.Split(text, -1)
}

// Join is the inverse of Split for delimiters written as Delimiter.
func Join(segments []string) string {
	return strings.Join(segments, Delimiter)
}

// ParseInput splits text into front matter and slide bodies.
// A document that does not open with a delimiter has no front matter and
// every segment is a slide body.
func ParseInput(text string) (*Document, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	segments := Split(text)
	if strings.TrimSpace(segments[0]) != "" {
		return &Document{Bodies: segments}, nil
	}

	segments = segments[1:]
	if len(segments) == 0 {
		return &Document{}, nil
	}
	return &Document{FrontMatter: segments[0], Bodies: segments[1:]}, nil
}

// Slides returns a fresh slide for every body.
func (d *Document) Slides() []*Slide {
	slides := make([]*Slide, len(d.Bodies))
	for i, body := range d.Bodies {
		slides[i] = NewSlide(body, nil)
	}
	return slides
}

// ParseMetadata parses front matter and merges overrides on top of it.
// Override keys win over document keys.
func ParseMetadata(frontMatter string, overrides yaml.MapSlice) (Metadata, error) {
	var items yaml.MapSlice
	if strings.TrimSpace(frontMatter) != "" {
		var err error
		items, err = yamlutil.UnmarshalOrdered([]byte(frontMatter))
		if err != nil {
			return Metadata{}, fmt.Errorf("%w: %v", ErrInvalidFrontMatter, err)
		}
	}
	return NewMetadata(items).With(overrides), nil
}
