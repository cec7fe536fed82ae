package plugin

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"slices"

	"golang.org/x/text/language"

	"github.com/alnah/go-md2slides/internal/bundle"
	"github.com/alnah/go-md2slides/internal/deck"
	"github.com/alnah/go-md2slides/internal/yamlutil"
)

// LocalesFile is the optional per-plugin string table, keyed by language
// then by message key.
const LocalesFile = "locales.yaml"

// Loaded is an initialized plugin.
type Loaded struct {
	Name       string
	Root       fs.FS
	Descriptor *Descriptor
}

// Loader initializes plugins against one build's metadata and bundle.
// Each plugin is initialized at most once; failures are memoized too.
type Loader struct {
	registry *Registry
	bundle   *bundle.Bundle
	meta     deck.Metadata
	logger   *slog.Logger

	loaded map[string]*Loaded
	failed map[string]error
}

// NewLoader creates a Loader for one build.
func NewLoader(registry *Registry, b *bundle.Bundle, meta deck.Metadata, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{
		registry: registry,
		bundle:   b,
		meta:     meta,
		logger:   logger,
		loaded:   make(map[string]*Loaded),
		failed:   make(map[string]error),
	}
}

// Load returns the initialized plugin name, calling its Init on first use.
func (l *Loader) Load(name string) (*Loaded, error) {
	if p, ok := l.loaded[name]; ok {
		return p, nil
	}
	if err, ok := l.failed[name]; ok {
		return nil, err
	}

	p, err := l.load(name)
	if err != nil {
		l.failed[name] = err
		return nil, err
	}
	l.loaded[name] = p
	return p, nil
}

// Loaded reports how many plugins have been initialized.
func (l *Loader) Loaded() int {
	return len(l.loaded)
}

func (l *Loader) load(name string) (*Loaded, error) {
	def, ok := l.registry.Lookup(name)
	if !ok {
		return nil, unknownPlugin(name, l.registry)
	}

	l.logger.Info("loading plugin", "plugin", name)

	table, err := loadLocale(def.Root, l.meta.String(deck.KeyLang, deck.DefaultLang))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPluginInit, name, err)
	}

	inst, err := l.bundle.PluginInstance(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPluginInit, name, err)
	}

	caps := &Capabilities{
		Bundle:  inst,
		Logger:  l.logger.With("plugin", name),
		strings: table,
	}

	desc, err := def.Init(l.meta, caps)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrPluginInit, name, err)
	}
	if desc == nil {
		desc = &Descriptor{}
	}
	return &Loaded{Name: name, Root: def.Root, Descriptor: desc}, nil
}

// loadLocale returns the table best matching lang, or nil when the plugin
// has no locales file or no language close enough.
func loadLocale(root fs.FS, lang string) (map[string]string, error) {
	if root == nil {
		return nil, nil
	}
	data, err := fs.ReadFile(root, LocalesFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var tables map[string]map[string]string
	if err := yamlutil.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("%s: %w", LocalesFile, err)
	}
	if t, ok := tables[lang]; ok {
		return t, nil
	}

	var tags []language.Tag
	var keys []string
	for _, k := range slices.Sorted(maps.Keys(tables)) {
		tag, err := language.Parse(k)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		keys = append(keys, k)
	}
	if len(tags) == 0 {
		return nil, nil
	}
	want, err := language.Parse(lang)
	if err != nil {
		return nil, nil
	}
	_, index, confidence := language.NewMatcher(tags).Match(want)
	if confidence == language.No {
		return nil, nil
	}
	return tables[keys[index]], nil
}
