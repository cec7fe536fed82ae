package plugin

import (
	"context"
	"regexp"
	"strings"
)

// ReplaceFunc computes the replacement of one match. Returning ok=false keeps
// the matched text unchanged. An error aborts the build.
type ReplaceFunc func(ctx context.Context, m Match) (replacement string, ok bool, err error)

// Rewrite is a pattern and replace function pair applied to slide text.
type Rewrite struct {
	Pattern *regexp.Regexp
	Replace ReplaceFunc
}

// Match is one occurrence of a Rewrite pattern.
type Match struct {
	// Text is the full matched substring.
	Text string
	// Start and End are byte offsets of Text in the rewritten input.
	Start, End int

	groups  []string
	present []bool
}

// Group returns capture group i (1-based), or "" when the group did not
// participate in the match. Group(0) is Text.
func (m Match) Group(i int) string {
	if i == 0 {
		return m.Text
	}
	if i < 1 || i > len(m.groups) {
		return ""
	}
	return m.groups[i-1]
}

// Has reports whether capture group i participated in the match.
func (m Match) Has(i int) bool {
	if i == 0 {
		return true
	}
	return i >= 1 && i <= len(m.present) && m.present[i-1]
}

// NumGroups returns the number of capture groups of the pattern.
func (m Match) NumGroups() int {
	return len(m.groups)
}

// Apply replaces every non-overlapping match of the pattern in text, left to
// right. Replace sees matches in source order and is called once per match.
func (r *Rewrite) Apply(ctx context.Context, text string) (string, error) {
	locs := r.Pattern.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return text, nil
	}

	var out strings.Builder
	out.Grow(len(text))
	last := 0
	for _, loc := range locs {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		m := newMatch(text, loc)
		replacement, ok, err := r.Replace(ctx, m)
		if err != nil {
			return "", err
		}

		out.WriteString(text[last:m.Start])
		if ok {
			out.WriteString(replacement)
		} else {
			out.WriteString(m.Text)
		}
		last = m.End
	}
	out.WriteString(text[last:])
	return out.String(), nil
}

func newMatch(text string, loc []int) Match {
	n := len(loc)/2 - 1
	m := Match{
		Text:    text[loc[0]:loc[1]],
		Start:   loc[0],
		End:     loc[1],
		groups:  make([]string, n),
		present: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		s, e := loc[2*(i+1)], loc[2*(i+1)+1]
		if s < 0 {
			continue
		}
		m.groups[i] = text[s:e]
		m.present[i] = true
	}
	return m
}
