package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-md2slides/internal/config"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment and exporter doubles
// ---------------------------------------------------------------------------

// fakeExporter records exports and writes a stub PDF.
type fakeExporter struct {
	mu      sync.Mutex
	err     error
	pages   []string
	timeout time.Duration
	closed  bool
}

func (f *fakeExporter) Export(_ context.Context, htmlPath, pdfPath string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.pages = append(f.pages, htmlPath)
	if f.err != nil {
		return "", f.err
	}
	if err := os.WriteFile(pdfPath, []byte("%PDF-1.7 stub"), 0o644); err != nil {
		return "", err
	}
	return pdfPath, nil
}

func (f *fakeExporter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// newTestEnv returns an Environment writing to buffers, with exporter
// standing in for headless Chrome.
func newTestEnv(exporter *fakeExporter) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Environment{
		Now:    func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) },
		Stdout: stdout,
		Stderr: stderr,
		Config: config.DefaultConfig(),
		NewExporter: func(timeout time.Duration, _ *slog.Logger) PDFExporter {
			if exporter == nil {
				exporter = &fakeExporter{}
			}
			exporter.timeout = timeout
			return exporter
		},
	}
	return env, stdout, stderr
}

// writeDeck writes a markdown document into a fresh directory and returns
// its path.
func writeDeck(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "talk.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing deck: %v", err)
	}
	return path
}

const simpleDeck = `---
title: Demo
---

# Hello

First slide.

---

# Bye
`
