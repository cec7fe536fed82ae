package deck_test

import (
	"reflect"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-md2slides/internal/deck"
)

func TestMetadata_Accessors(t *testing.T) {
	t.Parallel()

	m := deck.NewMetadata(yaml.MapSlice{
		{Key: "title", Value: "Demo"},
		{Key: "count", Value: uint64(3)},
		{Key: "flag", Value: "true"},
		{Key: "empty", Value: ""},
		{Key: "null", Value: nil},
		{Key: "deps", Value: []any{"rand = \"0.8\"", "serde = \"1\""}},
		{Key: "single", Value: "only"},
		{Key: "title", Value: "Override"},
	})

	if got := m.String("title", "x"); got != "Override" {
		t.Errorf("String(title) = %q, want %q", got, "Override")
	}
	if got := m.String("count", "x"); got != "3" {
		t.Errorf("String(count) = %q, want %q", got, "3")
	}
	if got := m.String("empty", "def"); got != "def" {
		t.Errorf("String(empty) = %q, want %q", got, "def")
	}
	if got := m.String("null", "def"); got != "def" {
		t.Errorf("String(null) = %q, want %q", got, "def")
	}
	if !m.Has("null") {
		t.Error("Has(null) = false, want true")
	}
	if !m.Bool("flag") {
		t.Error("Bool(flag) = false, want true")
	}
	if m.Bool("title") {
		t.Error("Bool(title) = true, want false")
	}
	if got := m.Strings("deps"); !reflect.DeepEqual(got, []string{"rand = \"0.8\"", "serde = \"1\""}) {
		t.Errorf("Strings(deps) = %q", got)
	}
	if got := m.Strings("single"); !reflect.DeepEqual(got, []string{"only"}) {
		t.Errorf("Strings(single) = %q", got)
	}
	if got := m.Strings("missing"); got != nil {
		t.Errorf("Strings(missing) = %q, want nil", got)
	}
	if m.Len() != 7 {
		t.Errorf("Len() = %d, want 7", m.Len())
	}
}

func TestMetadata_WithDoesNotMutate(t *testing.T) {
	t.Parallel()

	base := deck.NewMetadata(yaml.MapSlice{{Key: "title", Value: "Demo"}})
	derived := base.With(yaml.MapSlice{{Key: "title", Value: "Other"}, {Key: "lang", Value: "fr"}})

	if got := base.String("title", ""); got != "Demo" {
		t.Errorf("base title = %q, want %q", got, "Demo")
	}
	if base.Has("lang") {
		t.Error("base gained key lang")
	}
	if got := derived.String("title", ""); got != "Other" {
		t.Errorf("derived title = %q, want %q", got, "Other")
	}
}

func TestMetadata_WithDefaults(t *testing.T) {
	t.Parallel()

	base := deck.NewMetadata(yaml.MapSlice{
		{Key: "title", Value: "Demo"},
		{Key: "rustc-timeout", Value: nil},
	})
	m := base.WithDefaults(yaml.MapSlice{
		{Key: "title", Value: "Ignored"},
		{Key: "rustc-timeout", Value: "9s"},
		{Key: "lang", Value: "fr"},
	})

	if got := m.String("title", ""); got != "Demo" {
		t.Errorf("title = %q, want document value", got)
	}
	if got := m.String("rustc-timeout", "unset"); got != "unset" {
		t.Errorf("rustc-timeout = %q, an explicit null should not be filled", got)
	}
	if got := m.String("lang", ""); got != "fr" {
		t.Errorf("lang = %q, want default %q", got, "fr")
	}
	if want := []string{"title", "rustc-timeout", "lang"}; !reflect.DeepEqual(m.Keys(), want) {
		t.Errorf("Keys() = %v, want %v", m.Keys(), want)
	}
	if base.Has("lang") {
		t.Error("base gained key lang")
	}
}

func TestMetadata_ZeroValue(t *testing.T) {
	t.Parallel()

	var m deck.Metadata
	if m.Len() != 0 || m.Has("x") || m.String("x", "d") != "d" {
		t.Error("zero Metadata should behave as empty")
	}
}

func TestSlide_Attrs(t *testing.T) {
	t.Parallel()

	s := deck.NewSlide("# One", nil)
	if s.IsSubslide() {
		t.Error("new slide should not be a subslide")
	}

	s.Set(deck.SubslideKey, true)
	s.Set("order", 1)
	s.Set(deck.SubslideKey, true)
	if !s.IsSubslide() {
		t.Error("IsSubslide() = false after Set(subslide, true)")
	}
	if len(s.Attrs) != 2 {
		t.Errorf("len(Attrs) = %d, want 2", len(s.Attrs))
	}

	clone := s.Clone()
	clone.Set("order", 2)
	if v, _ := s.Get("order"); v != 1 {
		t.Errorf("original order = %v after clone mutation, want 1", v)
	}
}
