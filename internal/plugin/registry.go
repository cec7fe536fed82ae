package plugin

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/alnah/go-md2slides/internal/deck"
)

// InitFunc builds a plugin's descriptor for one build.
type InitFunc func(meta deck.Metadata, caps *Capabilities) (*Descriptor, error)

// Definition is a compiled-in plugin.
type Definition struct {
	Name string
	// Root holds the dist tree and an optional locales.yaml.
	Root fs.FS
	Init InitFunc
}

// Registry maps plugin names to definitions. Names are unique.
type Registry struct {
	defs  map[string]Definition
	names []string
}

// NewRegistry indexes defs. Two definitions sharing a name are rejected
// before any of them is initialized.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{defs: make(map[string]Definition, len(defs))}
	for _, d := range defs {
		if d.Name == "" || d.Init == nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDefinition, d.Name)
		}
		if _, ok := r.defs[d.Name]; ok {
			return nil, fmt.Errorf("%w: %q is defined twice", ErrDuplicatePlugin, d.Name)
		}
		r.defs[d.Name] = d
		r.names = append(r.names, d.Name)
	}
	return r, nil
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// Names returns every registered name, sorted.
func (r *Registry) Names() []string {
	names := append([]string(nil), r.names...)
	sort.Strings(names)
	return names
}
