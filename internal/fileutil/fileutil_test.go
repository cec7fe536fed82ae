package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-md2slides/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestFileExists - File existence check
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()

	testFile := filepath.Join(tempDir, "talk.md")
	if err := os.WriteFile(testFile, []byte("# One"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	testDir := filepath.Join(tempDir, "output")
	if err := os.Mkdir(testDir, 0o755); err != nil {
		t.Fatalf("failed to create test dir: %v", err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"existing file returns true", testFile, true},
		{"directory returns false", testDir, false},
		{"nonexistent path returns false", filepath.Join(tempDir, "nonexistent"), false},
		{"empty path returns false", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsFilePath - Name versus path
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"work", false},
		{"work.yaml", false},
		{"my-config", false},
		{"", false},
		{"./work.yaml", true},
		{"../shared/work.yaml", true},
		{"/etc/md2slides/work.yaml", true},
		{`C:\configs\work.yaml`, true},
		{"D:/configs/work.yaml", true},
	}

	for _, tt := range tests {
		if got := fileutil.IsFilePath(tt.input); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestHasExt / TestWithDefaultExt - Extensions
// ---------------------------------------------------------------------------

func TestHasExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		exts []string
		want bool
	}{
		{"talk.md", []string{".md", ".markdown"}, true},
		{"TALK.MD", []string{".md"}, true},
		{"notes.markdown", []string{".md", ".markdown"}, true},
		{"index.html", []string{".md"}, false},
		{"talk", []string{".md"}, false},
		{"talk.md", nil, false},
	}

	for _, tt := range tests {
		if got := fileutil.HasExt(tt.path, tt.exts...); got != tt.want {
			t.Errorf("HasExt(%q, %v) = %v, want %v", tt.path, tt.exts, got, tt.want)
		}
	}
}

func TestWithDefaultExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"talk", "talk.md"},
		{"slides/talk", "slides/talk.md"},
		{"talk.md", "talk.md"},
		{"talk.txt", "talk.txt"},
	}

	for _, tt := range tests {
		if got := fileutil.WithDefaultExt(tt.path, ".md"); got != tt.want {
			t.Errorf("WithDefaultExt(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestIsLocalPath - Link targets
// ---------------------------------------------------------------------------

func TestIsLocalPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ref  string
		want bool
	}{
		{"img/logo.png", true},
		{"./logo.png", true},
		{"/abs/logo.png", true},
		{`C:\img\logo.png`, true},
		{"logo%zz.png", true},
		{"", false},
		{"#slide-3", false},
		{"//cdn.example.com/logo.png", false},
		{"https://example.com/logo.png", false},
		{"data:image/png;base64,AAAA", false},
		{"file:///tmp/logo.png", false},
	}

	for _, tt := range tests {
		if got := fileutil.IsLocalPath(tt.ref); got != tt.want {
			t.Errorf("IsLocalPath(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}
