package main

import (
	"fmt"
	"io"
	"strings"

	md2slides "github.com/alnah/go-md2slides"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2slides <command> [flags] [args]")
	fmt.Fprintln(w, "       md2slides <input.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build       Build a markdown document into an HTML slide deck")
	fmt.Fprintln(w, "  doctor      Check the Rust toolchain and Chrome setup")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2slides help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2slides build <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build a markdown document into an HTML slide deck.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file; a path without extension is read as .md")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --pdf                 Also print the deck to PDF")
	fmt.Fprintln(w, "  -w, --watch               Rebuild when the input changes")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pipeline:")
	fmt.Fprintln(w, "      --debug               Keep intermediate files")
	fmt.Fprintln(w, "      --no-cache            Discard plugin caches before building")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Default timeout per external run (e.g., 10s)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom themes and templates directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logging:")
	fmt.Fprintln(w, "      --log-level <level>   Terminal log level: debug, info, warn, error")
	fmt.Fprintln(w, "      --log-file <path>     Append JSON logs to a file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show progress and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Plugins:")
	fmt.Fprintf(w, "  %s\n", strings.Join(md2slides.PluginNames(), ", "))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Themes:")
	fmt.Fprintf(w, "  %s\n", strings.Join(md2slides.Themes(), ", "))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2SLIDES_CONFIG, MD2SLIDES_OUTPUT_DIR, MD2SLIDES_ASSET_PATH,")
	fmt.Fprintln(w, "  MD2SLIDES_TIMEOUT, MD2SLIDES_LOG_LEVEL, MD2SLIDES_LOG_FILE")
	fmt.Fprintln(w, "  Flags win; environment variables fill what the config file leaves empty.")
	fmt.Fprintln(w, "  A .env file in the working directory is loaded first.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2slides doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that cargo and rustc can run Rust code blocks and that")
	fmt.Fprintln(w, "Chrome is available for --pdf.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2slides version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2slides help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
