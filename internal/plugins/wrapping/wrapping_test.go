package wrapping

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-md2slides/internal/bundle"
	"github.com/alnah/go-md2slides/internal/dateutil"
	"github.com/alnah/go-md2slides/internal/deck"
	"github.com/alnah/go-md2slides/internal/plugin"
)

var fixedNow = time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)

func TestTitleContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		meta yaml.MapSlice
		want string
	}{
		{
			name: "title only",
			meta: yaml.MapSlice{{Key: "title", Value: "Rust 101"}},
			want: "# Rust 101",
		},
		{
			name: "default title",
			want: "# " + deck.DefaultTitle,
		},
		{
			name: "description and literal date",
			meta: yaml.MapSlice{
				{Key: "title", Value: "Rust 101"},
				{Key: "description", Value: "Ownership"},
				{Key: "date", Value: "May 2024"},
			},
			want: "# Rust 101\n### Ownership\n### May 2024",
		},
		{
			name: "auto date",
			meta: yaml.MapSlice{{Key: "title", Value: "T"}, {Key: "date", Value: "auto:long"}},
			want: "# T\n### March 4, 2026",
		},
		{
			name: "auto date in deck language",
			meta: yaml.MapSlice{{Key: "title", Value: "T"}, {Key: "lang", Value: "fr"}, {Key: "date", Value: "auto:long"}},
			want: "# T\n### 4 mars 2026",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := TitleContent(deck.NewMetadata(tt.meta), fixedNow)
			if err != nil {
				t.Fatalf("TitleContent() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("TitleContent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTitleContent_BadDate(t *testing.T) {
	t.Parallel()

	_, err := TitleContent(deck.NewMetadata(yaml.MapSlice{{Key: "date", Value: "auto:[oops"}}), fixedNow)
	if !errors.Is(err, dateutil.ErrInvalidDateFormat) {
		t.Errorf("TitleContent() error = %v, want ErrInvalidDateFormat", err)
	}
}

// ---------------------------------------------------------------------------
// Extend through the loader, so locales are resolved
// ---------------------------------------------------------------------------

func extend(t *testing.T, meta yaml.MapSlice) []*deck.Slide {
	t.Helper()

	b, err := bundle.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	reg, err := plugin.NewRegistry(definition(func() time.Time { return fixedNow }))
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := plugin.NewLoader(reg, b, deck.NewMetadata(meta), nil).Load(Name)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	slides, err := loaded.Descriptor.Extend(context.Background(), []*deck.Slide{deck.NewSlide("body", nil)})
	if err != nil {
		t.Fatalf("Extend() unexpected error: %v", err)
	}
	if len(slides) != 3 {
		t.Fatalf("Extend() returned %d slides, want 3", len(slides))
	}
	if slides[1].Content != "body" {
		t.Errorf("original slide moved: %q", slides[1].Content)
	}
	if slides[0].Class() != TitleClass || slides[2].Class() != QnAClass {
		t.Errorf("classes = %q, %q", slides[0].Class(), slides[2].Class())
	}
	return slides
}

func TestExtend_QnA(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		meta yaml.MapSlice
		want string
	}{
		{"default", nil, "# Q&A"},
		{"localized", yaml.MapSlice{{Key: "lang", Value: "fr"}}, "# Questions ?"},
		{"closest locale", yaml.MapSlice{{Key: "lang", Value: "de-AT"}}, "# Fragen?"},
		{"unknown language", yaml.MapSlice{{Key: "lang", Value: "ja"}}, "# Q&A"},
		{"metadata wins", yaml.MapSlice{{Key: "lang", Value: "fr"}, {Key: KeyQnA, Value: "Merci"}}, "# Merci"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			slides := extend(t, tt.meta)
			if got := slides[2].Content; got != tt.want {
				t.Errorf("closing slide = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInit_BadDateFails(t *testing.T) {
	t.Parallel()

	_, err := initAt(deck.NewMetadata(yaml.MapSlice{{Key: "date", Value: "autox"}}), &plugin.Capabilities{}, fixedNow)
	if err == nil {
		t.Error("initAt() should fail on an invalid auto date")
	}
}
