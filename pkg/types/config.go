package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paperlens/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of results to return (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// EnableArxiv controls whether the arXiv backend is used.
	EnableArxiv bool `json:"enable_arxiv" yaml:"enable_arxiv"`

	// EnableSemanticScholar controls whether the Semantic Scholar backend is used.
	EnableSemanticScholar bool `json:"enable_semantic_scholar" yaml:"enable_semantic_scholar"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`
}

// FetchConfig holds settings for the PDF download stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// DownloadsPerSecond caps the download rate (default 1).
	DownloadsPerSecond float64 `json:"downloads_per_second" yaml:"downloads_per_second"`

	// PapersDir is the base directory for papers (contains raw/, metadata/).
	PapersDir string `json:"papers_dir" yaml:"papers_dir"`
}

// ExtractConfig holds settings for PDF text extraction.
type ExtractConfig struct {
	// MaxPages caps the number of pages read per PDF (default 50).
	MaxPages int `json:"max_pages" yaml:"max_pages"`
}

// SegmentConfig holds the section segmentation thresholds.
type SegmentConfig struct {
	// MinDocumentChars is the minimum normalized text length for heading
	// search; shorter documents short-circuit to an all-empty SectionMap
	// (default 500).
	MinDocumentChars int `json:"min_document_chars" yaml:"min_document_chars"`

	// MaxHeadingChars is the maximum trimmed line length considered a
	// heading candidate (default 200).
	MaxHeadingChars int `json:"max_heading_chars" yaml:"max_heading_chars"`

	// MinSectionChars is the minimum span length for a discovered section;
	// shorter spans are treated as false-positive heading matches
	// (default 200).
	MinSectionChars int `json:"min_section_chars" yaml:"min_section_chars"`

	// MaxSectionChars caps the stored content per section (default 5000).
	MaxSectionChars int `json:"max_section_chars" yaml:"max_section_chars"`

	// AbstractWindow is the fallback window size when "abstract" is found
	// in running text but "introduction" is not (default 2500).
	AbstractWindow int `json:"abstract_window" yaml:"abstract_window"`

	// FullTextPrefix is the length of the full_text slice (default 20000).
	FullTextPrefix int `json:"full_text_prefix" yaml:"full_text_prefix"`
}

// AnalyzeConfig holds keyword, findings, and validation settings.
type AnalyzeConfig struct {
	// TopKeywords is the keyword set size (default 15).
	TopKeywords int `json:"top_keywords" yaml:"top_keywords"`

	// TopSalientTerms is the salient-term list size (default 10).
	TopSalientTerms int `json:"top_salient_terms" yaml:"top_salient_terms"`

	// MaxFindings is the key-finding sentence cap (default 3).
	MaxFindings int `json:"max_findings" yaml:"max_findings"`

	// MinValidChars is the sufficient_length threshold (default 3000).
	MinValidChars int `json:"min_valid_chars" yaml:"min_valid_chars"`
}

// CompareConfig holds cross-document comparison settings.
type CompareConfig struct {
	// MinAbstractChars is the minimum abstract length for a document to
	// qualify for comparison (default 200).
	MinAbstractChars int `json:"min_abstract_chars" yaml:"min_abstract_chars"`
}

// ProcessConfig groups the per-document stage settings and the run fanout.
type ProcessConfig struct {
	Segment SegmentConfig `json:"segment" yaml:"segment"`
	Analyze AnalyzeConfig `json:"analyze" yaml:"analyze"`
	Compare CompareConfig `json:"compare" yaml:"compare"`

	// Workers is the number of documents processed concurrently (default 4).
	Workers int `json:"workers" yaml:"workers"`
}

// StoreConfig holds settings for the record store.
type StoreConfig struct {
	// DataDir is the base directory for pipeline output (contains index/, export/).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// DraftConfig holds settings for draft generation.
type DraftConfig struct {
	// OutputDir is the directory for generated drafts (e.g. "output/drafts/").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// KeyTerms is the number of top terms woven into a draft (default 5).
	KeyTerms int `json:"key_terms" yaml:"key_terms"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Search  SearchConfig  `json:"search" yaml:"search"`
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch"`
	Extract ExtractConfig `json:"extract" yaml:"extract"`
	Process ProcessConfig `json:"process" yaml:"process"`
	Store   StoreConfig   `json:"store" yaml:"store"`
	Draft   DraftConfig   `json:"draft" yaml:"draft"`
}
