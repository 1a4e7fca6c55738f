// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment locates section boundaries inside normalized paper text
// using heading-keyword heuristics and slices the content between them.
package segment

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/meshintel/paperlens/pkg/types"
)

// Default thresholds for SegmentConfig zero values.
const (
	defaultMinDocumentChars = 500
	defaultMaxHeadingChars  = 200
	defaultMinSectionChars  = 200
	defaultMaxSectionChars  = 5000
	defaultAbstractWindow   = 2500
	defaultFullTextPrefix   = 20000
)

// sectionKeywords maps each body section to the heading keywords that open it.
var sectionKeywords = map[types.SectionName][]string{
	types.SectionAbstract:     {"abstract", "summary"},
	types.SectionIntroduction: {"introduction", "background"},
	types.SectionMethods:      {"method", "methodology", "experiment"},
	types.SectionResults:      {"results", "findings"},
	types.SectionConclusion:   {"conclusion", "discussion"},
	types.SectionReferences:   {"references", "bibliography"},
}

// headingPatterns holds one compiled pattern per section, matching an
// optional numbering prefix (arabic or roman) followed by a keyword.
var headingPatterns = buildHeadingPatterns()

func buildHeadingPatterns() map[types.SectionName]*regexp.Regexp {
	patterns := make(map[types.SectionName]*regexp.Regexp, len(sectionKeywords))
	for name, keys := range sectionKeywords {
		pattern := fmt.Sprintf(`^(\d+\.?|[ivx]+\.)?\s*(%s)`, strings.Join(keys, "|"))
		patterns[name] = regexp.MustCompile(pattern)
	}
	return patterns
}

// boundary records where a section's heading line was first seen.
type boundary struct {
	section types.SectionName
	line    int
}

// Segment slices normalized text into a SectionMap. Heading detection scans
// line by line: a trimmed lowercase line below the heading-length guard that
// matches a section pattern marks that section's boundary, first occurrence
// winning. Sections are sliced between consecutive boundaries; spans below
// the minimum content threshold are discarded as false-positive matches.
// Text shorter than the minimum document length short-circuits to an
// all-empty map except full_text.
func Segment(text string, cfg types.SegmentConfig) types.SectionMap {
	applyDefaults(&cfg)

	var sections types.SectionMap
	sections.FullText = prefix(text, cfg.FullTextPrefix)

	if len(text) < cfg.MinDocumentChars {
		return sections
	}

	lines := strings.Split(text, "\n")
	boundaries := findBoundaries(lines, cfg)

	abstractLocated := false
	for i, b := range boundaries {
		if b.section == types.SectionAbstract {
			abstractLocated = true
		}
		end := len(lines)
		if i+1 < len(boundaries) {
			end = boundaries[i+1].line
		}
		content := strings.TrimSpace(strings.Join(lines[b.line+1:end], "\n"))
		if len(content) >= cfg.MinSectionChars {
			sections.Set(b.section, prefix(content, cfg.MaxSectionChars))
		}
	}

	// The substring fallback applies only when no abstract heading line was
	// located at all; a located-but-discarded span stays empty.
	if !abstractLocated {
		sections.Abstract = fallbackAbstract(text, cfg)
	}

	sections.Title = findTitle(lines)

	return sections
}

// findBoundaries returns the first matching line per section, ordered by
// line index. Duplicate headings later in the document are ignored.
func findBoundaries(lines []string, cfg types.SegmentConfig) []boundary {
	firstLine := make(map[types.SectionName]int)

	for i, line := range lines {
		trimmed := strings.ToLower(strings.TrimSpace(line))
		if trimmed == "" || len(trimmed) > cfg.MaxHeadingChars {
			continue
		}
		for section, pattern := range headingPatterns {
			if _, seen := firstLine[section]; seen {
				continue
			}
			if pattern.MatchString(trimmed) {
				firstLine[section] = i
			}
		}
	}

	boundaries := make([]boundary, 0, len(firstLine))
	for section, line := range firstLine {
		boundaries = append(boundaries, boundary{section: section, line: line})
	}
	sort.Slice(boundaries, func(i, j int) bool {
		return boundaries[i].line < boundaries[j].line
	})
	return boundaries
}

// fallbackAbstract recovers an abstract when no heading line matched but the
// literal word appears in running text. The window extends to the first
// "introduction" occurrence after it, or a fixed length when absent.
func fallbackAbstract(text string, cfg types.SegmentConfig) string {
	lower := strings.ToLower(text)
	start := strings.Index(lower, "abstract")
	if start < 0 {
		return ""
	}
	end := strings.Index(lower[start+len("abstract"):], "introduction")
	if end >= 0 {
		end += start + len("abstract")
	} else {
		end = start + cfg.AbstractWindow
		if end > len(text) {
			end = len(text)
		}
	}
	return strings.TrimSpace(text[start:end])
}

// findTitle returns the first line among the first ten whose trimmed length
// lies strictly between 20 and 200 characters.
func findTitle(lines []string) string {
	limit := 10
	if len(lines) < limit {
		limit = len(lines)
	}
	for _, line := range lines[:limit] {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) > 20 && len(trimmed) < 200 {
			return trimmed
		}
	}
	return ""
}

// prefix truncates s to at most n bytes without splitting a rune.
func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// TooShort reports whether text is below the minimum length for heading
// detection. Callers use it to classify a document as an extraction failure
// before segmenting.
func TooShort(text string, cfg types.SegmentConfig) bool {
	applyDefaults(&cfg)
	return len(text) < cfg.MinDocumentChars
}

func applyDefaults(cfg *types.SegmentConfig) {
	if cfg.MinDocumentChars <= 0 {
		cfg.MinDocumentChars = defaultMinDocumentChars
	}
	if cfg.MaxHeadingChars <= 0 {
		cfg.MaxHeadingChars = defaultMaxHeadingChars
	}
	if cfg.MinSectionChars <= 0 {
		cfg.MinSectionChars = defaultMinSectionChars
	}
	if cfg.MaxSectionChars <= 0 {
		cfg.MaxSectionChars = defaultMaxSectionChars
	}
	if cfg.AbstractWindow <= 0 {
		cfg.AbstractWindow = defaultAbstractWindow
	}
	if cfg.FullTextPrefix <= 0 {
		cfg.FullTextPrefix = defaultFullTextPrefix
	}
}
