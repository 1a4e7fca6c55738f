// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paperlens pipeline:
// search results, paper metadata, per-document analysis records, and the
// per-stage configuration objects passed into stage constructors.
package types

// SearchResult represents a candidate paper returned by an academic API query.
type SearchResult struct {
	// Identifier is the canonical ID from the source (Semantic Scholar
	// paper ID, arXiv ID, or DOI).
	Identifier string `json:"identifier" yaml:"identifier"`

	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the paper abstract or summary.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Year is the publication year; zero when the source did not report one.
	Year int `json:"year" yaml:"year"`

	// CitationCount is the citation count reported by the source.
	CitationCount int `json:"citation_count" yaml:"citation_count"`

	// PDFURL is the open-access PDF location, empty when none is available.
	PDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`

	// Source identifies which backend found this result (e.g. "semantic_scholar", "arxiv").
	Source string `json:"source" yaml:"source"`

	// RelevanceScore is a value between 0.0 and 1.0 indicating relevance to the query.
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`
}
