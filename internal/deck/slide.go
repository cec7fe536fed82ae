package deck

import (
	"strings"

	"github.com/goccy/go-yaml"
)

// SubslideKey tags a slide as an intermediate reveal step of the previous
// concrete slide.
const SubslideKey = "subslide"

// ClassKey holds extra CSS classes for the rendered slide element.
const ClassKey = "class"

// Slide is one markdown fragment rendered into one presentation frame.
// Attrs is an ordered key/value map written by extend-phase plugins.
type Slide struct {
	Content string
	Attrs   yaml.MapSlice
}

// NewSlide creates a slide with a copy of attrs.
func NewSlide(content string, attrs yaml.MapSlice) *Slide {
	s := &Slide{Content: content}
	if len(attrs) > 0 {
		s.Attrs = append(yaml.MapSlice(nil), attrs...)
	}
	return s
}

// Get returns the attribute stored under key.
func (s *Slide) Get(key string) (any, bool) {
	for _, item := range s.Attrs {
		if k, ok := item.Key.(string); ok && k == key {
			return item.Value, true
		}
	}
	return nil, false
}

// Set stores value under key, keeping the original position of an existing key.
func (s *Slide) Set(key string, value any) {
	for i, item := range s.Attrs {
		if k, ok := item.Key.(string); ok && k == key {
			s.Attrs[i].Value = value
			return
		}
	}
	s.Attrs = append(s.Attrs, yaml.MapItem{Key: key, Value: value})
}

// IsSubslide reports whether the slide carries a truthy subslide attribute.
func (s *Slide) IsSubslide() bool {
	v, ok := s.Get(SubslideKey)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// Class returns the extra CSS classes of the slide, or "".
func (s *Slide) Class() string {
	v, ok := s.Get(ClassKey)
	if !ok {
		return ""
	}
	class, _ := v.(string)
	return strings.TrimSpace(class)
}

// Clone returns a deep-enough copy: content and a fresh attribute slice.
func (s *Slide) Clone() *Slide {
	return NewSlide(s.Content, s.Attrs)
}
