package md2slides

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-md2slides/internal/pipeline"
	"github.com/alnah/go-md2slides/internal/plugins"
	"github.com/alnah/go-md2slides/internal/plugins/rustc"
)

// Result describes a finished build.
type Result struct {
	// BuildID identifies the build in log records.
	BuildID string
	// Input is the resolved markdown path.
	Input string
	// OutputDir is the bundle root.
	OutputDir string
	// Output is the path of the written HTML page.
	Output string
	// Title is the deck title.
	Title string
	// Slides counts the slides after extension, subslides included.
	Slides   int
	Duration time.Duration
}

// Builder turns one markdown document into a slide deck with the built-in
// plugins. Builds of one Builder are sequential.
type Builder struct {
	cfg    builderConfig
	driver *pipeline.Driver
}

// NewBuilder creates a Builder for input. A path without extension gets
// ".md". The file is read on each build, not here.
func NewBuilder(input string, opts ...Option) (*Builder, error) {
	if input == "" {
		return nil, ErrEmptyInput
	}

	var cfg builderConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	loader := cfg.assetLoader
	if loader == nil {
		var err error
		loader, err = NewAssetLoader(cfg.assetPath)
		if err != nil {
			return nil, err
		}
	}

	registry, err := plugins.Registry()
	if err != nil {
		return nil, fmt.Errorf("built-in plugins: %w", err)
	}
	phases, err := plugins.DefaultPhases()
	if err != nil {
		return nil, err
	}

	driver, err := pipeline.NewDriver(pipeline.Options{
		Input:     input,
		OutputDir: cfg.outputDir,
		Debug:     cfg.debug,
		NoCache:   cfg.noCache,
		Defaults:  cfg.metadataDefaults(),
		Registry:  registry,
		Plugins:   phases,
		Assets:    loader,
		Logger:    cfg.logger,
	})
	if err != nil {
		return nil, err
	}
	return &Builder{cfg: cfg, driver: driver}, nil
}

// metadataDefaults lists the front matter defaults in option order, the
// runner timeout first.
func (c builderConfig) metadataDefaults() yaml.MapSlice {
	var items yaml.MapSlice
	if c.runnerTimeout > 0 {
		items = append(items, yaml.MapItem{Key: rustc.KeyTimeout, Value: c.runnerTimeout.String()})
	}
	for _, d := range c.defaults {
		items = append(items, yaml.MapItem{Key: d.key, Value: d.value})
	}
	return items
}

// Input returns the resolved input path.
func (b *Builder) Input() string {
	return b.driver.Input()
}

// Build runs one full build.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	res, err := b.driver.Build(ctx)
	if err != nil {
		return nil, err
	}
	return toResult(res), nil
}

// Watch builds once, then rebuilds whenever the input changes, until ctx is
// cancelled. Failed builds are reported to onBuild and do not stop watching.
// onBuild may be nil.
func (b *Builder) Watch(ctx context.Context, onBuild func(*Result, error)) error {
	w := pipeline.NewWatcher(b.driver,
		pipeline.WithDebounce(b.cfg.debounce),
		pipeline.WithBuildFunc(func(res *pipeline.Result, err error) {
			if onBuild == nil {
				return
			}
			if err != nil {
				onBuild(nil, err)
				return
			}
			onBuild(toResult(res), nil)
		}),
	)
	return w.Run(ctx)
}

// Build creates a Builder for input and runs it once.
func Build(ctx context.Context, input string, opts ...Option) (*Result, error) {
	b, err := NewBuilder(input, opts...)
	if err != nil {
		return nil, err
	}
	return b.Build(ctx)
}

// PluginNames lists the built-in plugins a document may name.
func PluginNames() []string {
	registry, err := plugins.Registry()
	if err != nil {
		return nil
	}
	return registry.Names()
}

func toResult(res *pipeline.Result) *Result {
	return &Result{
		BuildID:   res.BuildID,
		Input:     res.Input,
		OutputDir: res.OutputDir,
		Output:    res.Output,
		Title:     res.Title,
		Slides:    res.Slides,
		Duration:  res.Duration,
	}
}
