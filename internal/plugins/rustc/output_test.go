package rustc

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestSourceHash(t *testing.T) {
	t.Parallel()

	a := sourceHash("", "fn main() {}")
	if !isHash(a) {
		t.Fatalf("sourceHash() = %q, want 40 hex digits", a)
	}
	if a != sourceHash("", "fn main() {}") {
		t.Error("sourceHash() should be deterministic")
	}
	if a == sourceHash("v2", "fn main() {}") {
		t.Error("a salt should change the hash")
	}
	if a == sourceHash("", "fn main() { }") {
		t.Error("different sources should differ")
	}
}

func TestFormatOutput(t *testing.T) {
	t.Parallel()

	project := filepath.Join(string(filepath.Separator)+"home", "me", "deck", "resources", "rustc")
	binPath := filepath.Join(project, srcDir, binDir) + string(filepath.Separator)

	tests := []struct {
		name    string
		raw     string
		want    []string
		notWant []string
	}{
		{
			name: "empty",
			raw:  " \n ",
		},
		{
			name:    "abort summary cut",
			raw:     "error: boom\n --> src/bin/main_1.rs:1:1\n\nerror: aborting due to 1 previous error\n",
			want:    []string{"error: boom", " main_1.rs:1:1"},
			notWant: []string{"aborting", "src/bin"},
		},
		{
			name:    "absolute paths stripped",
			raw:     "thread 'main' panicked at " + binPath + "main_1.rs:2:5",
			want:    []string{"panicked at main_1.rs:2:5"},
			notWant: []string{project},
		},
		{
			name:    "colors rendered",
			raw:     "\x1b[31merror\x1b[0m: x",
			want:    []string{"<span", "error</span>"},
			notWant: []string{"\x1b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := formatOutput([]byte(tt.raw), project)
			if len(tt.want) == 0 && got != "" {
				t.Errorf("formatOutput() = %q, want empty", got)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("formatOutput() = %q, should contain %q", got, w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(got, nw) {
					t.Errorf("formatOutput() = %q, should not contain %q", got, nw)
				}
			}
		})
	}
}

func TestCopySource(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"fn main() {}", "fn main() {}"},
		{"// norun\nfn main() {}", "fn main() {}"},
		{"// only a comment", ""},
	}
	for _, tt := range tests {
		if got := copySource(tt.in); got != tt.want {
			t.Errorf("copySource(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
