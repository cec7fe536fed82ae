package codeblock

import (
	"context"
	"strings"
	"testing"

	"github.com/alnah/go-md2slides/internal/deck"
)

// Notes:
// - The rewrite is tested on fixed HTML strings; the pairing with real
//   highlighter output is covered by the pipeline tests.

func TestCountLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		block string
		want  int
	}{
		{"plain", "<pre><code>a\nb\nc\n</code></pre>", 3},
		{"highlighted", `<pre class="chroma"><code><span class="line"><span class="cl">a
</span></span><span class="line"><span class="cl">b
</span></span></code></pre>`, 2},
		{"empty", "<pre><code></code></pre>", 1},
		{"single line", "<pre><code>x</code></pre>", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := countLines(tt.block); got != tt.want {
				t.Errorf("countLines() = %d, want %d", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Rewrite
// ---------------------------------------------------------------------------

func apply(t *testing.T, html string) string {
	t.Helper()
	desc, err := Init(deck.Metadata{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	out, err := desc.After.Apply(context.Background(), html)
	if err != nil {
		t.Fatalf("Apply() unexpected error: %v", err)
	}
	return out
}

func TestRewrite_AddsLineNumbers(t *testing.T) {
	t.Parallel()

	got := apply(t, "<p>x</p>\n<pre><code class=\"language-go\">a\nb\n</code></pre>\n")

	for _, want := range []string{
		`<div class="code-block">`,
		`<span class="line-number">1</span>`,
		`<span class="line-number">2</span>`,
		`<pre><code class="language-go">a`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output should contain %q, got:\n%s", want, got)
		}
	}
	if strings.Contains(got, `line-number">3<`) {
		t.Errorf("output has too many line numbers:\n%s", got)
	}
	if strings.Contains(got, "rustc-container") {
		t.Errorf("no runner output should be paired:\n%s", got)
	}
}

func TestRewrite_PairsRunnerOutput(t *testing.T) {
	t.Parallel()

	html := "<pre><code>fn main() {}\n</code></pre>\n<pre><div class=\"rustc hljs\">rustc-cache(abc)</div></pre>\n<p>after</p>"
	got := apply(t, html)

	idx := strings.Index(got, `<div class="rustc-container">`)
	if idx < 0 {
		t.Fatalf("runner output should be wrapped, got:\n%s", got)
	}
	if !strings.Contains(got[idx:], "rustc-cache(abc)") {
		t.Errorf("placeholder should sit inside the container, got:\n%s", got)
	}
	if strings.Count(got, "rustc-cache(abc)") != 1 {
		t.Errorf("placeholder duplicated:\n%s", got)
	}
	if !strings.HasSuffix(got, "<p>after</p>") {
		t.Errorf("trailing content lost:\n%s", got)
	}
}

func TestRewrite_EachBlockFramed(t *testing.T) {
	t.Parallel()

	got := apply(t, "<pre><code>a\n</code></pre>\n<p>mid</p>\n<pre><code>b\n</code></pre>\n")
	if n := strings.Count(got, `<div class="code-block">`); n != 2 {
		t.Errorf("framed %d blocks, want 2:\n%s", n, got)
	}
}

func TestRewrite_NoCodeUnchanged(t *testing.T) {
	t.Parallel()

	const html = "<p>no code</p>\n"
	if got := apply(t, html); got != html {
		t.Errorf("Apply() = %q, want unchanged", got)
	}
}
