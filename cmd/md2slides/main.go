package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/joho/godotenv"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-md2slides/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// A .env file in the working directory provides MD2SLIDES_* defaults.
	// Variables already set in the environment win; a missing file is fine.
	_ = godotenv.Load()

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// hasVerboseFlag reports whether -v or --verbose appears before a "--".
func hasVerboseFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--":
			return false
		case "-v", "--verbose":
			return true
		}
	}
	return false
}

// runMain dispatches args[1] and returns the process exit code.
// A first argument that looks like a markdown file runs build.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	switch {
	case cmd == "build":
		return exitWith(env, runBuildCmd(ctx, rest, env))
	case cmd == "doctor":
		return runDoctorCmd(rest, env)
	case cmd == "completion":
		return exitWith(env, runCompletion(rest, env))
	case cmd == "version" || cmd == "--version":
		fmt.Fprintf(env.Stdout, "md2slides %s\n", Version)
		return ExitSuccess
	case cmd == "help" || cmd == "-h" || cmd == "--help":
		runHelp(rest, env)
		return ExitSuccess
	case looksLikeMarkdown(cmd):
		return exitWith(env, runBuildCmd(ctx, args[1:], env))
	}

	fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
	printUsage(env.Stderr)
	return ExitUsage
}

// exitWith prints err and maps it to an exit code. --help is a success.
func exitWith(env *Environment, err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	printError(env.Stderr, err)
	return exitCodeFor(err)
}

// looksLikeMarkdown reports whether arg names a markdown file rather than a
// command.
func looksLikeMarkdown(arg string) bool {
	return fileutil.HasExt(arg, ".md", ".markdown")
}
