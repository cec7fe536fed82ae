package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	md2slides "github.com/alnah/go-md2slides"
)

// Status labels. fatih/color drops the escapes when NO_COLOR is set or the
// output is not a terminal.
var (
	okColor   = color.New(color.FgGreen, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	errColor  = color.New(color.FgRed, color.Bold)
)

func okLabel(s string) string { return okColor.Sprint(s) }

func warnLabel() string { return warnColor.Sprint("warning:") }

func errLabel() string { return errColor.Sprint("error:") }

// printBuilt reports a finished build on w.
func printBuilt(w io.Writer, res *md2slides.Result, quiet, verbose bool) {
	if quiet {
		return
	}
	if verbose {
		fmt.Fprintf(w, "%s %s -> %s (%d slides, %v)\n",
			okLabel("Built"), res.Input, res.Output, res.Slides, res.Duration.Round(time.Millisecond))
		return
	}
	fmt.Fprintf(w, "%s %s\n", okLabel("Built"), res.Output)
}

// printExported reports a written PDF on w.
func printExported(w io.Writer, path string, quiet bool) {
	if quiet {
		return
	}
	fmt.Fprintf(w, "%s %s\n", okLabel("Exported"), path)
}

// printError writes err to w with its hints, if any.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errLabel(), err)
}
