// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SectionName identifies one of the fixed section slots extracted from a paper.
type SectionName string

const (
	SectionTitle        SectionName = "title"
	SectionAbstract     SectionName = "abstract"
	SectionIntroduction SectionName = "introduction"
	SectionMethods      SectionName = "methods"
	SectionResults      SectionName = "results"
	SectionConclusion   SectionName = "conclusion"
	SectionReferences   SectionName = "references"
	SectionFullText     SectionName = "full_text"
)

// SectionNames lists the body sections in canonical order. Title and
// full_text are handled separately by the segmenter.
var SectionNames = []SectionName{
	SectionAbstract,
	SectionIntroduction,
	SectionMethods,
	SectionResults,
	SectionConclusion,
	SectionReferences,
}

// SectionMap holds the extracted content for each section slot. Unmatched
// sections are empty strings, never absent, so downstream concatenation
// is always safe.
type SectionMap struct {
	Title        string `json:"title" yaml:"title"`
	Abstract     string `json:"abstract" yaml:"abstract"`
	Introduction string `json:"introduction" yaml:"introduction"`
	Methods      string `json:"methods" yaml:"methods"`
	Results      string `json:"results" yaml:"results"`
	Conclusion   string `json:"conclusion" yaml:"conclusion"`
	References   string `json:"references" yaml:"references"`
	FullText     string `json:"full_text" yaml:"full_text"`
}

// Get returns the content stored under name. Unknown names return "".
func (m *SectionMap) Get(name SectionName) string {
	switch name {
	case SectionTitle:
		return m.Title
	case SectionAbstract:
		return m.Abstract
	case SectionIntroduction:
		return m.Introduction
	case SectionMethods:
		return m.Methods
	case SectionResults:
		return m.Results
	case SectionConclusion:
		return m.Conclusion
	case SectionReferences:
		return m.References
	case SectionFullText:
		return m.FullText
	}
	return ""
}

// Set stores content under name. Unknown names are ignored.
func (m *SectionMap) Set(name SectionName, content string) {
	switch name {
	case SectionTitle:
		m.Title = content
	case SectionAbstract:
		m.Abstract = content
	case SectionIntroduction:
		m.Introduction = content
	case SectionMethods:
		m.Methods = content
	case SectionResults:
		m.Results = content
	case SectionConclusion:
		m.Conclusion = content
	case SectionReferences:
		m.References = content
	case SectionFullText:
		m.FullText = content
	}
}

// Present returns the body sections with non-empty content, in canonical order.
func (m *SectionMap) Present() []SectionName {
	var found []SectionName
	for _, name := range SectionNames {
		if m.Get(name) != "" {
			found = append(found, name)
		}
	}
	return found
}

// Document is the immutable per-paper text unit the pipeline operates on.
// RawText and NormalizedText are never rewritten after creation; later
// stages attach derived structures to the DocumentRecord instead.
type Document struct {
	// ID is a stable key derived from the source filename or paper ID.
	ID string `json:"id" yaml:"id"`

	// RawText is the text as produced by PDF extraction.
	RawText string `json:"-" yaml:"-"`

	// NormalizedText is the sanitized form of RawText.
	NormalizedText string `json:"-" yaml:"-"`

	// TotalChars is the character count of RawText.
	TotalChars int `json:"total_characters" yaml:"total_characters"`
}

// Keyword is a term with its observed frequency.
type Keyword struct {
	Term  string `json:"term" yaml:"term"`
	Count int    `json:"count" yaml:"count"`
}

// KeywordSet is an ordered sequence of unique keywords, descending by
// frequency with ties broken by first occurrence in the source text.
type KeywordSet []Keyword

// Terms returns just the term strings, preserving order.
func (ks KeywordSet) Terms() []string {
	terms := make([]string, len(ks))
	for i, k := range ks {
		terms[i] = k.Term
	}
	return terms
}

// ReadabilityStats bundles the lexical statistics computed from normalized
// text. All fields are derived; the struct is recomputed, never persisted
// independent of its source document.
type ReadabilityStats struct {
	Characters         int       `json:"characters" yaml:"characters"`
	Words              int       `json:"words" yaml:"words"`
	Sentences          int       `json:"sentences" yaml:"sentences"`
	AvgWordLength      float64   `json:"avg_word_length" yaml:"avg_word_length"`
	AvgSentenceLength  float64   `json:"avg_sentence_length" yaml:"avg_sentence_length"`
	TypeTokenRatio     float64   `json:"type_token_ratio" yaml:"type_token_ratio"`
	FleschReadingEase  float64   `json:"flesch_reading_ease" yaml:"flesch_reading_ease"`
	FleschKincaidGrade float64   `json:"flesch_kincaid_grade" yaml:"flesch_kincaid_grade"`
	TopTerms           []Keyword `json:"top_terms" yaml:"top_terms"`
	TopBigrams         []Keyword `json:"top_bigrams" yaml:"top_bigrams"`
	TopTrigrams        []Keyword `json:"top_trigrams" yaml:"top_trigrams"`
	NounPhrases        []string  `json:"noun_phrases" yaml:"noun_phrases"`
}

// ValidationResult records the outcome of the validation gate for one document.
type ValidationResult struct {
	// Passed is the logical AND of all checks.
	Passed bool `json:"passed" yaml:"passed"`

	// Checks maps check name (has_abstract, has_methods, has_results,
	// sufficient_length) to its boolean outcome.
	Checks map[string]bool `json:"checks" yaml:"checks"`
}

// FailedChecks returns the names of failing checks in sorted order.
func (v ValidationResult) FailedChecks() []string {
	var failed []string
	for _, name := range []string{"has_abstract", "has_methods", "has_results", "sufficient_length"} {
		if ok, present := v.Checks[name]; present && !ok {
			failed = append(failed, name)
		}
	}
	return failed
}

// ProcessingStatus classifies the outcome of a document's pipeline pass.
type ProcessingStatus string

const (
	// StatusProcessed means the full sanitize→segment→analyze→validate
	// chain ran. Validation may still have failed; see ValidationResult.
	StatusProcessed ProcessingStatus = "processed"

	// StatusExtractionFailed means raw text was absent, empty, or below
	// the minimum length for segmentation. The record carries an
	// all-empty SectionMap and the run continues.
	StatusExtractionFailed ProcessingStatus = "extraction_failed"
)

// DocumentRecord is the per-document structured output of a pipeline run.
type DocumentRecord struct {
	Document     Document         `json:"document" yaml:"document"`
	Sections     SectionMap       `json:"sections" yaml:"sections"`
	Keywords     KeywordSet       `json:"keywords" yaml:"keywords"`
	SalientTerms []string         `json:"salient_terms" yaml:"salient_terms"`
	Findings     []string         `json:"key_findings" yaml:"key_findings"`
	Stats        ReadabilityStats `json:"stats" yaml:"stats"`
	Validation   ValidationResult `json:"validation" yaml:"validation"`

	// Status distinguishes a processed document from an extraction failure.
	Status ProcessingStatus `json:"status" yaml:"status"`

	// Error holds the failure detail when Status is not StatusProcessed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// ComparisonRecord holds the pairwise similarity between two documents.
// Pairs are materialized once per unordered pair with IDA < IDB; the IDs
// are lookup references, not ownership.
type ComparisonRecord struct {
	IDA string `json:"paper_a" yaml:"paper_a"`
	IDB string `json:"paper_b" yaml:"paper_b"`

	// CosineSimilarity is the TF-IDF cosine similarity of the two
	// abstracts, in [0,1], rounded to 3 decimals.
	CosineSimilarity float64 `json:"cosine_similarity" yaml:"cosine_similarity"`

	// KeywordOverlap is the Jaccard ratio of the two keyword sets,
	// in [0,1], rounded to 3 decimals.
	KeywordOverlap float64 `json:"keyword_overlap" yaml:"keyword_overlap"`
}
