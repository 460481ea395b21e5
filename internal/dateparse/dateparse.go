// Package dateparse converts date strings from heterogeneous bank exports
// into time.Time values. Sources disagree on format, so parsing is
// best-effort: a miss is reported as absence, never as an error.
package dateparse

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// layouts are tried in priority order.
var layouts = []string{
	"2006-01-02T15:04:05.000000",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02.01.2006",
	"2006-01-02 15:04:05",
}

// DisplayLayout renders dates the way record summaries show them.
const DisplayLayout = "02.01.2006"

var embeddedDate = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// Parse attempts each known layout against s and reports whether one
// matched. Fractional seconds beyond microsecond precision are truncated
// first. As a last resort an embedded YYYY-MM-DD substring is used.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	s = truncateFraction(s)

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if m := embeddedDate.FindString(s); m != "" {
		if t, err := time.Parse("2006-01-02", m); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// truncateFraction trims a fractional-seconds component to at most 6 digits.
// Some exports carry nanosecond precision the layouts do not accept.
func truncateFraction(s string) string {
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return s
	}

	end := dot + 1
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end-dot-1 <= 6 {
		return s
	}
	return s[:dot+7] + s[end:]
}

// FormatDisplay renders t as DD.MM.YYYY.
func FormatDisplay(t time.Time) string {
	return t.Format(DisplayLayout)
}

// Display parses a date string and re-renders it as DD.MM.YYYY. Unlike
// Parse, an unrecognized input is an error: this is for fields that must
// carry a date.
func Display(s string) (string, error) {
	t, ok := Parse(s)
	if !ok {
		return "", fmt.Errorf("unrecognized date format: %q", s)
	}
	return FormatDisplay(t), nil
}
