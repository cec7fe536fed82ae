package splitview_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-md2slides/internal/deck"
	"github.com/alnah/go-md2slides/internal/plugins/splitview"
)

func rewrite(t *testing.T, input string) string {
	t.Helper()
	desc, err := splitview.Init(deck.Metadata{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	out, err := desc.Before.Apply(context.Background(), input)
	if err != nil {
		t.Fatalf("Apply() unexpected error: %v", err)
	}
	return out
}

func TestRewrite_Columns(t *testing.T) {
	t.Parallel()

	got := rewrite(t, "# Title\n%%\nleft\n%%\nright\n%%\n")

	lhs := strings.Index(got, `<div class="lhs">`)
	rhs := strings.Index(got, `<div class="rhs">`)
	if lhs < 0 || rhs < 0 || lhs > rhs {
		t.Fatalf("columns missing or out of order:\n%s", got)
	}
	if !strings.Contains(got[lhs:rhs], "left") || !strings.Contains(got[rhs:], "right") {
		t.Errorf("column content misplaced:\n%s", got)
	}
	if strings.Contains(got, "%%") {
		t.Errorf("fences should be consumed:\n%s", got)
	}
}

func TestRewrite_Unterminated(t *testing.T) {
	t.Parallel()

	const input = "%%\nleft\n%%\nright\n"
	if got := rewrite(t, input); got != input {
		t.Errorf("Apply() = %q, want unchanged", got)
	}
}

func TestRewrite_ColumnsStayMarkdown(t *testing.T) {
	t.Parallel()

	md := goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe()))
	var buf bytes.Buffer
	if err := md.Convert([]byte(rewrite(t, "%%\n- **a**\n%%\n`b`\n%%")), &buf); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"<li><strong>a</strong></li>", "<code>b</code>"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("rendered output should contain %q, got:\n%s", want, buf.String())
		}
	}
}
