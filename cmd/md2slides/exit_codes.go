package main

import (
	"errors"
	"os"

	md2slides "github.com/alnah/go-md2slides"
	"github.com/alnah/go-md2slides/internal/config"
	"github.com/alnah/go-md2slides/internal/export"
	"github.com/alnah/go-md2slides/internal/logging"
)

// Exit codes for md2slides CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful build
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, document settings or plugin setup
	ExitIO      = 3 // File not found, permission denied, unwritable output
	ExitBrowser = 4 // Browser/Chrome errors during --pdf
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, export.ErrBrowserConnect) ||
		errors.Is(err, export.ErrPageCreate) ||
		errors.Is(err, export.ErrPageLoad) ||
		errors.Is(err, export.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, md2slides.ErrReadInput) ||
		errors.Is(err, md2slides.ErrWriteOutput) ||
		errors.Is(err, md2slides.ErrCreateDir) ||
		errors.Is(err, md2slides.ErrResourceCopy) ||
		errors.Is(err, export.ErrWritePDF) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, logging.ErrInvalidLevel) ||
		errors.Is(err, md2slides.ErrEmptyDocument) ||
		errors.Is(err, md2slides.ErrInvalidFrontMatter) ||
		errors.Is(err, md2slides.ErrInvalidSettings) ||
		errors.Is(err, md2slides.ErrDuplicatePlugin) ||
		errors.Is(err, md2slides.ErrInvalidPhase) ||
		errors.Is(err, md2slides.ErrInvalidPhaseConfig) ||
		errors.Is(err, md2slides.ErrUnknownPlugin) ||
		errors.Is(err, md2slides.ErrInvalidMarkup) ||
		errors.Is(err, md2slides.ErrInvalidResource) ||
		errors.Is(err, md2slides.ErrResourceConflict) ||
		errors.Is(err, md2slides.ErrThemeNotFound) ||
		errors.Is(err, md2slides.ErrTemplateNotFound) ||
		errors.Is(err, md2slides.ErrInvalidAssetPath) ||
		errors.Is(err, md2slides.ErrEmptyInput) ||
		errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrTooManyInputs) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
