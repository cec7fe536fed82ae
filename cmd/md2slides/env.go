package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alnah/go-md2slides/internal/config"
	"github.com/alnah/go-md2slides/internal/export"
)

// PDFExporter prints a built deck page to PDF.
type PDFExporter interface {
	Export(ctx context.Context, htmlPath, pdfPath string) (string, error)
	Close() error
}

// Compile-time interface implementation check.
var _ PDFExporter = (*export.Exporter)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, configuration, and the PDF exporter factory.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	Config      *config.Config // Replaced when --config or MD2SLIDES_CONFIG names a file
	NewExporter func(timeout time.Duration, logger *slog.Logger) PDFExporter
}

// DefaultEnv returns the production environment: real streams and headless
// Chrome for --pdf.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Config: config.DefaultConfig(),
		NewExporter: func(timeout time.Duration, logger *slog.Logger) PDFExporter {
			return export.New(timeout, export.WithLogger(logger))
		},
	}
}
