// Package dateutil formats the dates shown on title slides.
//
// A date value is either literal text, kept as is, or "auto" optionally
// followed by ":FORMAT" or ":preset", which formats the build time. Month and
// weekday names follow the deck language.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when "auto" is specified without a format.
const DefaultDateFormat = "YYYY-MM-DD"

// PresetLong names the language's own long format.
const PresetLong = "long"

// DatePresets provides named shortcuts for common date formats. "long"
// is not listed: it depends on the language.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
}

// token is one date field of a format.
type token int

const (
	tokYear4 token = iota + 1
	tokYear2
	tokMonthName
	tokMonthAbbr
	tokMonth2
	tokMonth
	tokDay2
	tokDay
	tokWeekdayName
	tokWeekdayAbbr
)

// tokens are matched longest first.
var tokens = []struct {
	text string
	tok  token
}{
	{"YYYY", tokYear4},
	{"MMMM", tokMonthName},
	{"dddd", tokWeekdayName},
	{"MMM", tokMonthAbbr},
	{"ddd", tokWeekdayAbbr},
	{"YY", tokYear2},
	{"MM", tokMonth2},
	{"DD", tokDay2},
	{"M", tokMonth},
	{"D", tokDay},
}

// part is a literal run or a field.
type part struct {
	literal string
	tok     token
}

// Layout is a parsed date format.
type Layout struct {
	parts []part
}

// ParseLayout parses a user-friendly format.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, dddd (weekday), ddd.
// Brackets escape literal text: [de] stays "de". Other characters are kept.
// Returns ErrInvalidDateFormat if the format is empty, too long, or has
// unclosed brackets.
func ParseLayout(format string) (Layout, error) {
	if format == "" {
		return Layout{}, fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return Layout{}, fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var l Layout
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			l.parts = append(l.parts, part{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end == -1 {
				return Layout{}, fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			lit.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for _, t := range tokens {
			if strings.HasPrefix(format[i:], t.text) {
				flush()
				l.parts = append(l.parts, part{tok: t.tok})
				i += len(t.text)
				matched = true
				break
			}
		}
		if !matched {
			lit.WriteByte(format[i])
			i++
		}
	}
	flush()
	return l, nil
}

// Format renders t with the names of loc.
func (l Layout) Format(t time.Time, loc Locale) string {
	var b strings.Builder
	for _, p := range l.parts {
		switch p.tok {
		case 0:
			b.WriteString(p.literal)
		case tokYear4:
			b.WriteString(strconv.Itoa(t.Year()))
		case tokYear2:
			fmt.Fprintf(&b, "%02d", t.Year()%100)
		case tokMonthName:
			b.WriteString(loc.Months[t.Month()-1])
		case tokMonthAbbr:
			b.WriteString(loc.MonthsShort[t.Month()-1])
		case tokMonth2:
			fmt.Fprintf(&b, "%02d", int(t.Month()))
		case tokMonth:
			b.WriteString(strconv.Itoa(int(t.Month())))
		case tokDay2:
			fmt.Fprintf(&b, "%02d", t.Day())
		case tokDay:
			b.WriteString(strconv.Itoa(t.Day()))
		case tokWeekdayName:
			b.WriteString(loc.Weekdays[t.Weekday()])
		case tokWeekdayAbbr:
			b.WriteString(loc.WeekdaysShort[t.Weekday()])
		}
	}
	return b.String()
}

// ResolveDate handles "auto" and "auto:FORMAT" syntax for date values.
//   - "auto" → t in YYYY-MM-DD
//   - "auto:FORMAT" → t in a custom format (e.g., "auto:DD/MM/YYYY")
//   - "auto:preset" → t in a named preset (iso, european, us, long)
//   - any other value → returned unchanged
//
// lang is a BCP 47 tag choosing month and weekday names; unknown languages
// use English.
func ResolveDate(value string, t time.Time, lang string) (string, error) {
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, "auto") {
		return value, nil
	}

	format := DefaultDateFormat
	switch {
	case lower == "auto":
	case strings.HasPrefix(lower, "auto:"):
		format = value[len("auto:"):]
		if format == "" {
			return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
		}
	default:
		return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
	}

	loc := LocaleFor(lang)
	if name := strings.ToLower(format); name == PresetLong {
		format = loc.Long
	} else if preset, ok := DatePresets[name]; ok {
		format = preset
	}

	layout, err := ParseLayout(format)
	if err != nil {
		return "", err
	}
	return layout.Format(t, loc), nil
}
