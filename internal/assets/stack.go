package assets

import (
	"errors"
	"slices"
)

// Stack reads through layers in order. A layer is skipped only when it does
// not have the asset; invalid names and read errors stop the lookup.
type Stack struct {
	layers []*Layer
}

// Compile-time interface check.
var _ Loader = (*Stack)(nil)

// NewStack returns the embedded layer alone when customDir is empty, and
// customDir in front of it otherwise.
func NewStack(customDir string) (*Stack, error) {
	if customDir == "" {
		return &Stack{layers: []*Layer{Embedded()}}, nil
	}
	custom, err := OpenDir(customDir)
	if err != nil {
		return nil, err
	}
	return &Stack{layers: []*Layer{custom, Embedded()}}, nil
}

// Layers returns the layers in lookup order.
func (s *Stack) Layers() []*Layer {
	return slices.Clone(s.layers)
}

// Load returns the asset from the first layer that has it.
func (s *Stack) Load(kind Kind, name string) (string, error) {
	var err error
	for _, l := range s.layers {
		var content string
		content, err = l.Load(kind, name)
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, kind.errNotFound()) {
			return "", err
		}
	}
	return "", err
}

func (s *Stack) LoadStyle(name string) (string, error) {
	return s.Load(Style, name)
}

func (s *Stack) LoadTemplate(name string) (string, error) {
	return s.Load(Template, name)
}

// Names merges the names of kind across layers, sorted and deduplicated.
func (s *Stack) Names(kind Kind) []string {
	var names []string
	for _, l := range s.layers {
		names = append(names, l.Names(kind)...)
	}
	slices.Sort(names)
	return slices.Compact(names)
}
