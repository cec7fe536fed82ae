package pipeline

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"

	"github.com/alnah/go-md2slides/internal/assets"
	"github.com/alnah/go-md2slides/internal/bundle"
	"github.com/alnah/go-md2slides/internal/deck"
	"github.com/alnah/go-md2slides/internal/fileutil"
	"github.com/alnah/go-md2slides/internal/plugin"
)

// DefaultExtension is appended to an input path that has none.
const DefaultExtension = ".md"

// State is the position of a Driver in its build cycle.
type State int

// Build states, in order. Any state may move to StateFailed; StateDone goes
// back to StateParsedInput on the next watch-mode build.
const (
	StateIdle State = iota
	StateParsedInput
	StateParsedMetadata
	StatePluginsLoaded
	StateRendered
	StateBundled
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateIdle:           "idle",
	StateParsedInput:    "parsed-input",
	StateParsedMetadata: "parsed-metadata",
	StatePluginsLoaded:  "plugins-loaded",
	StateRendered:       "rendered",
	StateBundled:        "bundled",
	StateDone:           "done",
	StateFailed:         "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Options configures a Driver.
type Options struct {
	// Input is the markdown file. ".md" is appended when it has no extension.
	Input string
	// OutputDir overrides the document's output-dir key.
	OutputDir string
	// Debug keeps intermediate files: cleanup-phase plugins are not run.
	Debug bool
	// NoCache wipes the persisted cache before building.
	NoCache bool
	// Defaults fill metadata keys the document leaves out.
	Defaults yaml.MapSlice

	// Registry holds every plugin a document may name.
	Registry *plugin.Registry
	// Plugins is the phase map used when the document has no plugins key.
	Plugins plugin.PhaseConfig
	// Assets loads the deck template and themes. Nil uses the embedded set.
	Assets assets.Loader
	// Logger receives progress messages. Nil discards them.
	Logger *slog.Logger
}

// Result describes a finished build.
type Result struct {
	BuildID   string
	Input     string
	OutputDir string
	// Output is the path of the written HTML page.
	Output   string
	Title    string
	Slides   int
	Duration time.Duration
}

// Driver runs builds of one input document. Builds are sequential.
type Driver struct {
	opts   Options
	input  string
	logger *slog.Logger

	mu    sync.Mutex
	state State
}

// NewDriver validates opts and resolves the input path.
func NewDriver(opts Options) (*Driver, error) {
	if opts.Registry == nil {
		return nil, fmt.Errorf("%w: nil plugin registry", ErrInvalidOptions)
	}
	if opts.Input == "" {
		return nil, fmt.Errorf("%w: empty input path", ErrInvalidOptions)
	}
	if opts.Assets == nil {
		opts.Assets = assets.Embedded()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Driver{
		opts:   opts,
		input:  ResolveInput(opts.Input),
		logger: logger,
	}, nil
}

// ResolveInput appends DefaultExtension to a path without extension.
func ResolveInput(path string) string {
	return fileutil.WithDefaultExt(path, DefaultExtension)
}

// Input returns the resolved input path.
func (d *Driver) Input() string { return d.input }

// State returns the current state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Driver) setState(s State) {
	d.mu.Lock()
	d.state = s
	d.mu.Unlock()
}

// Build runs the full cycle once: parse, load plugins, extend, render,
// assemble, populate the bundle, write the page, then clean up.
func (d *Driver) Build(ctx context.Context) (*Result, error) {
	start := time.Now()
	buildID := uuid.NewString()
	logger := d.logger.With("build", buildID)

	res, err := d.build(ctx, logger)
	if err != nil {
		d.setState(StateFailed)
		logger.Debug("build failed", "error", err)
		return nil, err
	}

	res.BuildID = buildID
	res.Duration = time.Since(start)
	d.setState(StateDone)
	logger.Info("done", "output", res.Output, "slides", res.Slides, "duration", res.Duration.Round(time.Millisecond))
	return res, nil
}

func (d *Driver) build(ctx context.Context, logger *slog.Logger) (*Result, error) {
	// ParseInput
	raw, err := os.ReadFile(d.input) // #nosec G304 -- user-provided input path
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadInput, d.input, err)
	}
	doc, err := deck.ParseInput(normalizeLineEndings(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.input, err)
	}
	d.setState(StateParsedInput)

	// ParseMetadata
	meta, err := deck.ParseMetadata(doc.FrontMatter, yaml.MapSlice{
		{Key: deck.KeyDebug, Value: d.opts.Debug},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.input, err)
	}
	meta = meta.WithDefaults(d.opts.Defaults)
	settings := deck.SettingsFrom(meta)
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", d.input, err)
	}
	cfg, err := d.phaseConfig(meta)
	if err != nil {
		return nil, err
	}
	d.setState(StateParsedMetadata)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// LoadPlugins / RoutePhases
	outputDir := d.outputDir(settings)
	b, err := bundle.New(outputDir,
		bundle.WithLogger(logger),
		bundle.WithFreshCache(d.opts.NoCache),
	)
	if err != nil {
		return nil, err
	}
	loader := plugin.NewLoader(d.opts.Registry, b, meta, logger)
	routes, err := plugin.NewRouter(d.opts.Registry, loader, b, logger).Route(cfg)
	if err != nil {
		return nil, err
	}
	d.setState(StatePluginsLoaded)

	// Cleanup runs whatever happens after plugins are initialized.
	cleanup := func() {
		if d.opts.Debug {
			logger.Debug("debug mode, skipping cleanup")
			return
		}
		if err := routes.RunCleanup(); err != nil {
			logger.Warn("cleanup failed", "error", err)
		}
	}

	res, err := d.render(ctx, logger, doc, meta, settings, b, routes)
	cleanup()
	if err != nil {
		return nil, err
	}
	res.OutputDir = outputDir
	return res, nil
}

func (d *Driver) render(
	ctx context.Context,
	logger *slog.Logger,
	doc *deck.Document,
	meta deck.Metadata,
	settings deck.Settings,
	b *bundle.Bundle,
	routes *plugin.Routes,
) (*Result, error) {
	// Extend
	slides, err := routes.ExtendSlides(ctx, doc.Slides())
	if err != nil {
		return nil, err
	}

	// Render
	logger.Info("parsing slides", "count", len(slides))
	conv := NewConverter(routes)
	var body strings.Builder
	for i, s := range slides {
		html, err := conv.ToHTML(ctx, s.Content)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		body.WriteString(renderSlide(html, s))
	}
	d.setState(StateRendered)

	// PostProcess
	content, err := b.HTMLImages(body.String(), filepath.Dir(d.input))
	if err != nil {
		return nil, err
	}

	// Assemble
	asm, err := NewAssembler(d.opts.Assets, settings.Theme)
	if err != nil {
		return nil, err
	}
	page, err := asm.Assemble(ctx, DeckData{
		Lang:      settings.Lang,
		Title:     settings.Title,
		Generator: Generator,
		Meta:      metaTags(meta),
		Links:     template.HTML(b.HTMLLinks()), // #nosec G203 -- tags built from validated resource names
		Slides:    template.HTML(content),       // #nosec G203 -- rendered slide HTML
	})
	if err != nil {
		return nil, err
	}

	// Bundle
	logger.Info("populating bundle", "namespaces", b.Namespaces())
	if err := b.Populate(ctx); err != nil {
		return nil, err
	}
	out, err := b.Dir().WriteFile(settings.OutputFile, []byte(page))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	d.setState(StateBundled)
	logger.Info("presentation", "title", settings.Title, "path", out)

	return &Result{
		Input:  d.input,
		Output: out,
		Title:  settings.Title,
		Slides: len(slides),
	}, nil
}

// phaseConfig reads the document's plugins key, or falls back to the
// configured default map.
func (d *Driver) phaseConfig(meta deck.Metadata) (plugin.PhaseConfig, error) {
	v, ok := meta.Get(deck.KeyPlugins)
	if !ok || v == nil {
		if d.opts.Plugins == nil {
			return nil, fmt.Errorf("%w: no default phase map", ErrInvalidOptions)
		}
		return d.opts.Plugins, nil
	}
	cfg, err := plugin.ParsePhaseConfig(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.input, err)
	}
	return cfg, nil
}

// outputDir picks the CLI override, else the document's output-dir resolved
// against the input's directory.
func (d *Driver) outputDir(settings deck.Settings) string {
	if d.opts.OutputDir != "" {
		return d.opts.OutputDir
	}
	if filepath.IsAbs(settings.OutputDir) {
		return settings.OutputDir
	}
	return filepath.Join(filepath.Dir(d.input), settings.OutputDir)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(content)
}

// IsInputError reports whether err comes from reading or parsing the input
// document rather than from a plugin or the output directory.
func IsInputError(err error) bool {
	return errors.Is(err, ErrReadInput) ||
		errors.Is(err, deck.ErrEmptyDocument) ||
		errors.Is(err, deck.ErrInvalidFrontMatter)
}
