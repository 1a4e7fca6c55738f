// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FetchStatus indicates the state of PDF download for a paper.
type FetchStatus string

const (
	FetchNone    FetchStatus = "none"
	FetchDone    FetchStatus = "downloaded"
	FetchMissing FetchStatus = "no_pdf"
	FetchFailed  FetchStatus = "failed"
)

// Paper holds metadata and file paths for a paper selected for processing:
// source URL, local PDF path, title, authors, year, abstract, citation
// count, and fetch status.
type Paper struct {
	// ID is a slug derived from the paper identifier or title.
	ID string `json:"id" yaml:"id"`

	// SourceURL is the open-access PDF URL, when one exists.
	SourceURL string `json:"source_url,omitempty" yaml:"source_url,omitempty"`

	// PDFPath is the local filesystem path to the downloaded PDF.
	PDFPath string `json:"pdf_path,omitempty" yaml:"pdf_path,omitempty"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year; zero when unknown.
	Year int `json:"year" yaml:"year"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// CitationCount is the citation count reported by the search backend.
	CitationCount int `json:"citation_count" yaml:"citation_count"`

	// Source identifies which backend supplied the record (e.g. "semantic_scholar", "arxiv").
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// FetchStatus tracks whether the PDF has been downloaded.
	FetchStatus FetchStatus `json:"fetch_status" yaml:"fetch_status"`
}
