package assets

import (
	"errors"
	"testing"
)

func TestValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain", "default", false},
		{"dash and digits", "dark-2", false},
		{"empty", "", true},
		{"slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"traversal", "..", true},
		{"extension", "dark.css", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateName(tt.input)
			if tt.wantErr && !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("ValidateName(%q) = %v, want ErrInvalidAssetName", tt.input, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateName(%q) unexpected error: %v", tt.input, err)
			}
		})
	}
}

func TestKind_Path(t *testing.T) {
	t.Parallel()

	if got := Style.path("dark"); got != "styles/dark.css" {
		t.Errorf("Style.path = %q", got)
	}
	if got := Template.path("deck"); got != "templates/deck.html" {
		t.Errorf("Template.path = %q", got)
	}
}
