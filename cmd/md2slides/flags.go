package main

import (
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

// ErrInvalidFlags wraps command-line parse errors.
var ErrInvalidFlags = errors.New("invalid flags")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// outputFlags holds where and what a build writes.
type outputFlags struct {
	dir string
	pdf bool
}

// pipelineFlags holds flags handed to the build pipeline.
type pipelineFlags struct {
	debug     bool
	noCache   bool
	timeout   string
	assetPath string
}

// logFlags holds logging flags.
type logFlags struct {
	level string
	file  string
}

// buildFlags holds every flag of the build command.
type buildFlags struct {
	common   commonFlags
	output   outputFlags
	pipeline pipelineFlags
	log      logFlags
	watch    bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show progress and timing")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.dir, "output", "o", "", "output directory (default: output-dir metadata, else \"output\")")
	fs.BoolVar(&f.pdf, "pdf", false, "also print the deck to PDF with headless Chrome")
}

// addPipelineFlags adds pipeline flags to a FlagSet.
func addPipelineFlags(fs *flag.FlagSet, f *pipelineFlags) {
	fs.BoolVar(&f.debug, "debug", false, "keep intermediate files (skip cleanup)")
	fs.BoolVar(&f.noCache, "no-cache", false, "discard plugin caches before building")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "default timeout per external run (e.g., 10s, 1m)")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory of custom themes and templates")
}

// addLogFlags adds logging flags to a FlagSet.
func addLogFlags(fs *flag.FlagSet, f *logFlags) {
	fs.StringVar(&f.level, "log-level", "", "terminal log level: debug, info, warn, error")
	fs.StringVar(&f.file, "log-file", "", "append JSON logs at debug level to this file")
}

// newBuildFlagSet registers every build flag on a fresh FlagSet.
// Completion scripts are generated from the same FlagSet.
func newBuildFlagSet(f *buildFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)

	fs.BoolVarP(&f.watch, "watch", "w", false, "rebuild when the input changes")

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addPipelineFlags(fs, &f.pipeline)
	addLogFlags(fs, &f.log)

	return fs
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newBuildFlagSet(f)
	fs.Usage = func() { printBuildUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidFlags, err)
	}

	return f, fs.Args(), nil
}
