// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sanitize normalizes raw extracted PDF text: whitespace, layout
// artifacts, and encoding noise. Sanitize is a pure function over its input;
// it performs no I/O and never fails.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	hyphenBreak    = regexp.MustCompile(`(\w)-[ \t]*\n\s*(\w)`)
	pageMarker     = regexp.MustCompile(`(?i)\bpage\s+\d+\b`)
	captionMarker  = regexp.MustCompile(`(?i)\b(figure|table)\s+\d+\b`)
	horizontalRuns = regexp.MustCompile(`[ \t]+`)
	blankLineRuns  = regexp.MustCompile(`\n\s*\n+`)
)

// Sanitize returns the normalized form of raw. It maps tabs to spaces and
// carriage returns to newlines, drops other control characters below code
// point 32, joins hyphenation line breaks ("exam-\nple" becomes "example"),
// strips page-number and figure/table caption markers, collapses runs of
// spaces to a single space, and collapses blank-line runs to a single
// newline. Line breaks are preserved so the segmenter can still scan
// line-wise. Empty input yields "".
//
// Control characters are handled before the hyphen join so CRLF line
// endings cannot hide a break from the hyphenation pattern.
//
// Sanitize is idempotent: applying it to its own output is a no-op.
func Sanitize(raw string) string {
	if raw == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r == '\t':
			b.WriteRune(' ')
		case r == '\r':
			b.WriteRune('\n')
		case r >= 32 || r == '\n':
			b.WriteRune(r)
		}
	}
	text := b.String()

	text = hyphenBreak.ReplaceAllString(text, "$1$2")

	text = pageMarker.ReplaceAllString(text, "")
	text = captionMarker.ReplaceAllString(text, "")
	text = horizontalRuns.ReplaceAllString(text, " ")
	text = blankLineRuns.ReplaceAllString(text, "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
