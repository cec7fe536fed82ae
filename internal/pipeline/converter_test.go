package pipeline_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/yuin/goldmark/extension"

	"github.com/alnah/go-md2slides/internal/pipeline"
	"github.com/alnah/go-md2slides/internal/plugin"
)

func rewrite(name string, phase plugin.Phase, pattern string, fn plugin.ReplaceFunc) plugin.Extension {
	return plugin.Extension{
		Plugin:  name,
		Phase:   phase,
		Rewrite: &plugin.Rewrite{Pattern: regexp.MustCompile(pattern), Replace: fn},
	}
}

func constant(s string) plugin.ReplaceFunc {
	return func(context.Context, plugin.Match) (string, bool, error) { return s, true, nil }
}

// ---------------------------------------------------------------------------
// TestConverter_ToHTML - Rewrites around goldmark
// ---------------------------------------------------------------------------

func TestConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		routes       *plugin.Routes
		input        string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "plain markdown",
			input:        "# One\n\ntext",
			wantContains: []string{`<h1>One</h1>`, "<p>text</p>"},
		},
		{
			name:         "gfm table",
			input:        "| a | b |\n|---|---|\n| 1 | 2 |\n",
			wantContains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:         "raw html kept",
			input:        "<div class=\"x\">raw</div>\n",
			wantContains: []string{`<div class="x">raw</div>`},
		},
		{
			name: "before rewrite sees markdown",
			routes: &plugin.Routes{Extensions: []plugin.Extension{
				rewrite("b", plugin.PhaseBefore, `(?m)^!!(.*)$`, func(_ context.Context, m plugin.Match) (string, bool, error) {
					return "## " + strings.TrimSpace(m.Group(1)), true, nil
				}),
			}},
			input:        "!! shout",
			wantContains: []string{`<h2>shout</h2>`},
		},
		{
			name: "after rewrite sees html",
			routes: &plugin.Routes{Extensions: []plugin.Extension{
				rewrite("a", plugin.PhaseAfter, `<p>`, constant(`<p class="lead">`)),
			}},
			input:        "hello",
			wantContains: []string{`<p class="lead">hello</p>`},
		},
		{
			name: "before rewrites chain in order",
			routes: &plugin.Routes{Extensions: []plugin.Extension{
				rewrite("first", plugin.PhaseBefore, `x`, constant("y")),
				rewrite("second", plugin.PhaseBefore, `y`, constant("z")),
			}},
			input:        "x",
			wantContains: []string{"<p>z</p>"},
		},
		{
			name: "declined replacement keeps text",
			routes: &plugin.Routes{Extensions: []plugin.Extension{
				rewrite("noop", plugin.PhaseBefore, `keep`, func(context.Context, plugin.Match) (string, bool, error) {
					return "gone", false, nil
				}),
			}},
			input:        "keep me",
			wantContains: []string{"<p>keep me</p>"},
			wantExcludes: []string{"gone"},
		},
		{
			name: "external extension",
			routes: &plugin.Routes{Extensions: []plugin.Extension{
				{Plugin: "deflist", Phase: plugin.PhaseExternal, External: extension.DefinitionList},
			}},
			input:        "Term\n: Meaning\n",
			wantContains: []string{"<dl>", "<dt>Term</dt>", "<dd>Meaning</dd>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := pipeline.NewConverter(tt.routes).ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() unexpected error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() should contain %q, got:\n%s", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("ToHTML() should not contain %q, got:\n%s", exclude, got)
				}
			}
		})
	}
}

func TestConverter_ToHTML_RewriteError(t *testing.T) {
	t.Parallel()

	conv := pipeline.NewConverter(&plugin.Routes{Extensions: []plugin.Extension{
		rewrite("tables", plugin.PhaseBefore, `@@`, func(context.Context, plugin.Match) (string, bool, error) {
			return "", false, plugin.ErrInvalidMarkup
		}),
	}})

	_, err := conv.ToHTML(context.Background(), "@@")
	if !errors.Is(err, plugin.ErrInvalidMarkup) {
		t.Errorf("ToHTML() error = %v, want ErrInvalidMarkup", err)
	}
}

func TestConverter_ToHTML_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pipeline.NewConverter(nil).ToHTML(ctx, "# x")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}
