// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DraftSections holds the templated summary sections of a draft entry.
type DraftSections struct {
	Contribution string `json:"contribution" yaml:"contribution"`
	Method       string `json:"method" yaml:"method"`
	Results      string `json:"results" yaml:"results"`
}

// Draft is a heuristic prose entry generated for one processed paper.
type Draft struct {
	// PaperID identifies the source document record.
	PaperID string `json:"paper_id" yaml:"paper_id"`

	// Title is the paper title, from metadata or the extracted title section.
	Title string `json:"title" yaml:"title"`

	// Year is the publication year; zero when unknown.
	Year int `json:"year" yaml:"year"`

	// Citations is the citation count from search metadata.
	Citations int `json:"citations" yaml:"citations"`

	// Abstract is the abstract text grounding the draft.
	Abstract string `json:"abstract" yaml:"abstract"`

	// KeyTerms are the top terms woven into the narrative.
	KeyTerms []string `json:"key_terms" yaml:"key_terms"`

	// Strengths are one-line observations drawn from the readability stats.
	Strengths []string `json:"strengths" yaml:"strengths"`

	// Text is the composed narrative paragraph.
	Text string `json:"draft_text" yaml:"draft_text"`

	// Sections are the templated contribution/method/results summaries.
	Sections DraftSections `json:"sections" yaml:"sections"`

	// Stats carries the readability stats the draft was built from.
	Stats ReadabilityStats `json:"stats" yaml:"stats"`
}

// Critique is the heuristic review of one draft entry.
type Critique struct {
	// PaperID identifies the reviewed draft.
	PaperID string `json:"paper_id" yaml:"paper_id"`

	// Title is the reviewed draft's title.
	Title string `json:"title" yaml:"title"`

	// Flags are short machine-readable problem labels in detection order.
	Flags []string `json:"flags" yaml:"flags"`

	// Suggestions are human-readable remediation hints, parallel to Flags.
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
}
