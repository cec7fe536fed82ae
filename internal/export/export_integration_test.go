//go:build integration

package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRodRenderer_Integration(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "index.html")
	html := `<!DOCTYPE html><html><body><div class="slide">one</div><div class="slide">two</div></body></html>`
	if err := os.WriteFile(page, []byte(html), 0o644); err != nil {
		t.Fatal(err)
	}

	e := New(0)
	defer e.Close()

	out, err := e.Export(t.Context(), page, PDFPath(page))
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output is not a PDF, prefix %q", data[:min(10, len(data))])
	}
}
