package md2slides

import (
	"log/slog"
	"time"
)

// builderConfig holds Builder settings.
type builderConfig struct {
	outputDir     string
	debug         bool
	noCache       bool
	assetPath     string
	assetLoader   AssetLoader
	logger        *slog.Logger
	runnerTimeout time.Duration
	debounce      time.Duration
	defaults      []metadataDefault
}

type metadataDefault struct {
	key   string
	value any
}

// Option configures a Builder.
type Option func(*builderConfig)

// WithOutputDir writes the deck to dir instead of the document's output-dir.
func WithOutputDir(dir string) Option {
	return func(c *builderConfig) {
		c.outputDir = dir
	}
}

// WithDebug keeps intermediate files: cleanup hooks do not run.
func WithDebug(debug bool) Option {
	return func(c *builderConfig) {
		c.debug = debug
	}
}

// WithNoCache discards persisted plugin caches before each build.
func WithNoCache(noCache bool) Option {
	return func(c *builderConfig) {
		c.noCache = noCache
	}
}

// WithAssetPath sets a directory of custom themes and templates.
// Missing assets fall back to the embedded set.
func WithAssetPath(path string) Option {
	return func(c *builderConfig) {
		c.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader. It takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *builderConfig) {
		c.assetLoader = loader
	}
}

// WithLogger sets the logger receiving progress messages.
// Without it, messages are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(c *builderConfig) {
		c.logger = logger
	}
}

// WithRunnerTimeout sets the default per-block timeout of plugins running
// external programs. A document's rustc-timeout key still wins.
func WithRunnerTimeout(d time.Duration) Option {
	return func(c *builderConfig) {
		if d > 0 {
			c.runnerTimeout = d
		}
	}
}

// WithDebounce sets the quiet period watch mode waits for after a change.
func WithDebounce(d time.Duration) Option {
	return func(c *builderConfig) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// WithMetadataDefault fills a front matter key the document leaves out.
func WithMetadataDefault(key string, value any) Option {
	return func(c *builderConfig) {
		c.defaults = append(c.defaults, metadataDefault{key: key, value: value})
	}
}
