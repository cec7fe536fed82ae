package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	md2slides "github.com/alnah/go-md2slides"
	"github.com/alnah/go-md2slides/internal/config"
	"github.com/alnah/go-md2slides/internal/export"
	"github.com/alnah/go-md2slides/internal/hints"
	"github.com/alnah/go-md2slides/internal/logging"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrTooManyInputs  = errors.New("build takes a single input")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// runBuildCmd parses build flags and runs the build.
func runBuildCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positionalArgs, err := parseBuildFlags(args)
	if err != nil {
		return err
	}
	return runBuild(ctx, positionalArgs, flags, env)
}

// runBuild orchestrates one build, or a watch session with --watch.
func runBuild(ctx context.Context, positionalArgs []string, flags *buildFlags, env *Environment) error {
	input, err := resolveInput(positionalArgs)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadConfig(flags.common.config, envCfg, env)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)

	timeout, err := resolveTimeout(flags.pipeline.timeout, cfg)
	if err != nil {
		return err
	}

	logger, err := newLogger(flags, cfg, env)
	if err != nil {
		return err
	}
	defer logger.Close()

	builder, err := md2slides.NewBuilder(input, builderOptions(flags, cfg, timeout, logger.Logger)...)
	if err != nil {
		return withHint(err)
	}

	var exporter PDFExporter
	if flags.output.pdf {
		exporter = env.NewExporter(cfg.Export.Timeout.Std(), logger.Logger)
		defer exporter.Close()
	}

	if flags.watch {
		return runWatch(ctx, builder, exporter, flags, env)
	}

	res, err := builder.Build(ctx)
	if err != nil {
		return withHint(err)
	}
	printBuilt(env.Stdout, res, flags.common.quiet, flags.common.verbose)
	return exportPDF(ctx, exporter, res, flags.common.quiet, env)
}

// runWatch rebuilds until ctx is cancelled. Build and export failures are
// printed and do not end the session.
func runWatch(ctx context.Context, builder *md2slides.Builder, exporter PDFExporter, flags *buildFlags, env *Environment) error {
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Watching %s (Ctrl+C to stop)\n", builder.Input())
	}

	err := builder.Watch(ctx, func(res *md2slides.Result, err error) {
		if err != nil {
			printError(env.Stderr, withHint(err))
			return
		}
		printBuilt(env.Stdout, res, flags.common.quiet, flags.common.verbose)
		if err := exportPDF(ctx, exporter, res, flags.common.quiet, env); err != nil {
			printError(env.Stderr, err)
		}
	})
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}

// exportPDF prints the deck next to its HTML page. A nil exporter is a no-op.
func exportPDF(ctx context.Context, exporter PDFExporter, res *md2slides.Result, quiet bool, env *Environment) error {
	if exporter == nil {
		return nil
	}
	path, err := exporter.Export(ctx, res.Output, export.PDFPath(res.Output))
	if err != nil {
		return withHint(fmt.Errorf("exporting %s: %w", res.Output, err))
	}
	printExported(env.Stdout, path, quiet)
	return nil
}

// resolveInput returns the single positional input.
func resolveInput(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", ErrNoInput
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w, got %d", ErrTooManyInputs, len(args))
	}
}

// loadConfig loads the config named by the flag, else by MD2SLIDES_CONFIG,
// else returns a copy of the environment's config.
func loadConfig(flagName string, envCfg *envConfig, env *Environment) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		if env.Config == nil {
			return config.DefaultConfig(), nil
		}
		cfg := *env.Config
		return &cfg, nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		err = fmt.Errorf("loading config: %w", err)
		if errors.Is(err, config.ErrConfigNotFound) {
			err = fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, err
	}
	return cfg, nil
}

// resolveTimeout returns the runner timeout: flag, then config. Zero keeps
// the plugin default.
func resolveTimeout(flagValue string, cfg *config.Config) (time.Duration, error) {
	if flagValue == "" {
		return cfg.Runner.Timeout.Std(), nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

// resolveLogLevel picks the terminal log level: --log-level, then
// --quiet/--verbose, then the config, then warn.
func resolveLogLevel(flags *buildFlags, cfg *config.Config) (slog.Level, error) {
	switch {
	case flags.log.level != "":
		return logging.ParseLevel(flags.log.level)
	case flags.common.quiet:
		return slog.LevelError, nil
	case flags.common.verbose:
		return slog.LevelInfo, nil
	case cfg.Log.Level != "":
		return logging.ParseLevel(cfg.Log.Level)
	}
	return slog.LevelWarn, nil
}

// newLogger builds the build logger on the environment's stderr.
func newLogger(flags *buildFlags, cfg *config.Config, env *Environment) (*logging.Logger, error) {
	level, err := resolveLogLevel(flags, cfg)
	if err != nil {
		return nil, err
	}
	file := flags.log.file
	if file == "" {
		file = cfg.Log.File
	}
	return logging.New(logging.Options{Writer: env.Stderr, Level: level, File: file})
}

// builderOptions merges flags over config into library options.
func builderOptions(flags *buildFlags, cfg *config.Config, timeout time.Duration, logger *slog.Logger) []md2slides.Option {
	opts := []md2slides.Option{
		md2slides.WithLogger(logger),
		md2slides.WithDebug(flags.pipeline.debug),
		md2slides.WithNoCache(flags.pipeline.noCache),
		md2slides.WithRunnerTimeout(timeout),
		md2slides.WithDebounce(cfg.Watch.Debounce.Std()),
	}

	outputDir := flags.output.dir
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}
	if outputDir != "" {
		opts = append(opts, md2slides.WithOutputDir(outputDir))
	}

	assetPath := flags.pipeline.assetPath
	if assetPath == "" {
		assetPath = cfg.Assets.BasePath
	}
	if assetPath != "" {
		opts = append(opts, md2slides.WithAssetPath(assetPath))
	}

	return opts
}

// withHint appends an actionable hint to errors users can fix themselves.
func withHint(err error) error {
	var hint string
	switch {
	case errors.Is(err, md2slides.ErrUnknownPlugin):
		hint = hints.ForUnknownPlugin(md2slides.PluginNames())
	case errors.Is(err, md2slides.ErrThemeNotFound):
		hint = hints.ForThemeNotFound(md2slides.Themes())
	case errors.Is(err, md2slides.ErrReadInput):
		hint = hints.ForInputNotFound()
	case errors.Is(err, md2slides.ErrCreateDir):
		hint = hints.ForOutputDirectory()
	case errors.Is(err, export.ErrBrowserConnect):
		hint = hints.ForBrowserConnect()
	case errors.Is(err, export.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		hint = hints.ForTimeout()
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}
