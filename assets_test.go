package md2slides

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestNewAssetLoader_EmptyPath(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader(\"\") error = %v", err)
	}

	css, err := loader.LoadStyle(DefaultTheme)
	if err != nil {
		t.Errorf("LoadStyle(%q) error = %v", DefaultTheme, err)
	}
	if css == "" {
		t.Error("LoadStyle returned empty CSS for default theme")
	}

	tmpl, err := loader.LoadTemplate(DeckTemplate)
	if err != nil {
		t.Fatalf("LoadTemplate(%q) error = %v", DeckTemplate, err)
	}
	if !strings.Contains(tmpl, "{{") {
		t.Error("deck template has no template actions")
	}
}

func TestNewAssetLoader_InvalidPath(t *testing.T) {
	t.Parallel()

	_, err := NewAssetLoader("/nonexistent/path/to/assets")
	if err == nil {
		t.Fatal("NewAssetLoader() expected error for invalid path, got nil")
	}
	if !errors.Is(err, ErrInvalidAssetPath) {
		t.Errorf("NewAssetLoader() error = %v, want ErrInvalidAssetPath", err)
	}
}

func TestNewAssetLoader_FallbackToEmbedded(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader(t.TempDir())
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}

	css, err := loader.LoadStyle(DefaultTheme)
	if err != nil {
		t.Errorf("LoadStyle with fallback error = %v", err)
	}
	if css == "" {
		t.Error("Fallback to embedded theme failed")
	}
}

func TestNewAssetLoader_CustomThemeOverride(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	stylesDir := filepath.Join(tmpDir, "styles")
	if err := os.MkdirAll(stylesDir, 0o755); err != nil {
		t.Fatalf("failed to create styles dir: %v", err)
	}
	customCSS := "/* custom override */ body { color: red; }"
	if err := os.WriteFile(filepath.Join(stylesDir, "default.css"), []byte(customCSS), 0o644); err != nil {
		t.Fatalf("failed to write custom CSS: %v", err)
	}

	loader, err := NewAssetLoader(tmpDir)
	if err != nil {
		t.Fatalf("NewAssetLoader(%q) error = %v", tmpDir, err)
	}

	css, err := loader.LoadStyle(DefaultTheme)
	if err != nil {
		t.Errorf("LoadStyle error = %v", err)
	}
	if css != customCSS {
		t.Errorf("LoadStyle = %q, want custom CSS %q", css, customCSS)
	}
}

func TestAssetLoader_Errors(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader error = %v", err)
	}

	tests := []struct {
		name    string
		load    func() error
		wantErr error
	}{
		{
			name: "unknown theme",
			load: func() error {
				_, err := loader.LoadStyle("nonexistent-theme")
				return err
			},
			wantErr: ErrThemeNotFound,
		},
		{
			name: "traversal in theme name",
			load: func() error {
				_, err := loader.LoadStyle("../secrets")
				return err
			},
			wantErr: ErrThemeNotFound,
		},
		{
			name: "unknown template",
			load: func() error {
				_, err := loader.LoadTemplate("nonexistent")
				return err
			},
			wantErr: ErrTemplateNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.load()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestErrorWrapping_PreservesMessage(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader error = %v", err)
	}

	_, err = loader.LoadStyle("missing-theme")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "missing-theme") {
		t.Errorf("error message %q should name the theme", err)
	}
}

func TestConvertAssetError_Nil(t *testing.T) {
	t.Parallel()

	if err := convertAssetError(nil); err != nil {
		t.Errorf("convertAssetError(nil) = %v, want nil", err)
	}
}

func TestThemes(t *testing.T) {
	t.Parallel()

	themes := Themes()
	if !slices.Contains(themes, DefaultTheme) {
		t.Errorf("Themes() = %v, want it to contain %q", themes, DefaultTheme)
	}
	if !slices.IsSorted(themes) {
		t.Errorf("Themes() = %v, want sorted", themes)
	}
}
