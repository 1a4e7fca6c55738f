// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package draft

import (
	"fmt"

	"github.com/meshintel/paperlens/pkg/types"
)

// Critique thresholds.
const (
	minReadingEase    = 40.0
	maxGradeLevel     = 14.0
	maxSentenceLength = 25.0
	minKeyTerms       = 3
	minDraftChars     = 300
	minSectionChars   = 40
)

// Critique reviews each draft against the readability and completeness
// heuristics and returns one critique per draft. Flags are appended in a
// fixed detection order with a parallel suggestion per flag.
func Critique(drafts []types.Draft) []types.Critique {
	critiques := make([]types.Critique, len(drafts))
	for i, d := range drafts {
		critiques[i] = critiqueOne(d)
	}
	return critiques
}

func critiqueOne(d types.Draft) types.Critique {
	c := types.Critique{
		PaperID: d.PaperID,
		Title:   d.Title,
	}
	flag := func(name, suggestion string) {
		c.Flags = append(c.Flags, name)
		c.Suggestions = append(c.Suggestions, suggestion)
	}

	if d.Stats.FleschReadingEase != 0 && d.Stats.FleschReadingEase < minReadingEase {
		flag("hard_to_read", "Improve readability (shorter sentences, simpler words).")
	}
	if d.Stats.FleschKincaidGrade > maxGradeLevel {
		flag("high_grade_level", "Lower grade level: shorter sentences, simpler phrasing.")
	}
	if d.Stats.AvgSentenceLength > maxSentenceLength {
		flag("long_sentences", "Split long sentences to improve clarity.")
	}
	if len(d.KeyTerms) < minKeyTerms {
		flag("thin_keywords", "Highlight more domain-specific terms.")
	}
	if d.Abstract == "" {
		flag("missing_abstract", "Add an abstract excerpt to ground the draft.")
	}
	if len(d.Text) < minDraftChars {
		flag("draft_too_short", "Expand the draft with contribution, method, results.")
	}

	for _, sec := range []struct {
		name    string
		content string
	}{
		{"contribution", d.Sections.Contribution},
		{"method", d.Sections.Method},
		{"results", d.Sections.Results},
	} {
		switch {
		case sec.content == "":
			flag("missing_"+sec.name, fmt.Sprintf("Add a concise %s summary.", sec.name))
		case len(sec.content) < minSectionChars:
			flag("weak_"+sec.name, fmt.Sprintf("Strengthen the %s section with specifics.", sec.name))
		}
	}

	return c
}
