// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/meshintel/paperlens/pkg/types"
)

// fakeBackend returns canned results or a canned error.
type fakeBackend struct {
	name    string
	results []types.SearchResult
	err     error
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Search(ctx context.Context, query Query, cfg types.SearchConfig) ([]types.SearchResult, error) {
	return f.results, f.err
}

func TestSearchEmptyQuery(t *testing.T) {
	backends := []Backend{&fakeBackend{name: "fake"}}
	_, err := Search(context.Background(), Query{}, backends, types.SearchConfig{}, &bytes.Buffer{})
	if err == nil {
		t.Error("expected error for empty query")
	}
}

func TestSearchNoBackends(t *testing.T) {
	_, err := Search(context.Background(), Query{FreeText: "x"}, nil, types.SearchConfig{}, &bytes.Buffer{})
	if err == nil {
		t.Error("expected error for no backends")
	}
}

func TestSearchMergesAndRanks(t *testing.T) {
	backends := []Backend{
		&fakeBackend{name: "one", results: []types.SearchResult{
			{Identifier: "2301.07041", Title: "Paper A", Source: "one", RelevanceScore: 0.9},
			{Identifier: "b1", Title: "Paper B", Source: "one", RelevanceScore: 0.5},
		}},
		&fakeBackend{name: "two", results: []types.SearchResult{
			{Identifier: "2301.07041", Title: "Paper A", Source: "two", RelevanceScore: 0.7, CitationCount: 42, PDFURL: "https://example.org/a.pdf"},
			{Identifier: "c1", Title: "Paper C", Source: "two", RelevanceScore: 0.95},
		}},
	}

	out, err := Search(context.Background(), Query{FreeText: "test"}, backends, types.SearchConfig{}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(out.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(out.Results))
	}
	if out.DupsRemoved != 1 {
		t.Errorf("DupsRemoved = %d, want 1", out.DupsRemoved)
	}
	if out.Results[0].Title != "Paper C" {
		t.Errorf("top result = %q, want Paper C", out.Results[0].Title)
	}
	// The merged duplicate keeps the higher score and fills empty fields.
	var merged types.SearchResult
	for _, r := range out.Results {
		if r.Identifier == "2301.07041" {
			merged = r
		}
	}
	if merged.RelevanceScore != 0.9 {
		t.Errorf("merged score = %v, want 0.9", merged.RelevanceScore)
	}
	if merged.CitationCount != 42 || merged.PDFURL == "" {
		t.Errorf("merge dropped fields: %+v", merged)
	}
}

func TestSearchDeduplicatesByTitle(t *testing.T) {
	backends := []Backend{
		&fakeBackend{name: "one", results: []types.SearchResult{
			{Identifier: "x1", Title: "Attention Is All You Need", Source: "one"},
		}},
		&fakeBackend{name: "two", results: []types.SearchResult{
			{Identifier: "y1", Title: "attention is all you need!", Source: "two"},
		}},
	}
	out, err := Search(context.Background(), Query{FreeText: "attention"}, backends, types.SearchConfig{}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(out.Results) != 1 || out.DupsRemoved != 1 {
		t.Errorf("got %d results (%d removed), want 1 (1 removed)", len(out.Results), out.DupsRemoved)
	}
}

func TestSearchBackendFailureDegrades(t *testing.T) {
	backends := []Backend{
		&fakeBackend{name: "broken", err: fmt.Errorf("boom")},
		&fakeBackend{name: "ok", results: []types.SearchResult{
			{Identifier: "a", Title: "Paper A", Source: "ok"},
		}},
	}
	var buf bytes.Buffer
	out, err := Search(context.Background(), Query{FreeText: "x"}, backends, types.SearchConfig{}, &buf)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(out.Results) != 1 {
		t.Errorf("got %d results, want 1", len(out.Results))
	}
	if len(out.BackendErrors) != 1 {
		t.Errorf("BackendErrors = %v, want one entry", out.BackendErrors)
	}
	if !strings.Contains(buf.String(), "warning: backend broken failed") {
		t.Errorf("missing warning output: %q", buf.String())
	}
}

func TestSearchAllBackendsFail(t *testing.T) {
	backends := []Backend{
		&fakeBackend{name: "a", err: fmt.Errorf("down")},
		&fakeBackend{name: "b", err: fmt.Errorf("down")},
	}
	_, err := Search(context.Background(), Query{FreeText: "x"}, backends, types.SearchConfig{}, &bytes.Buffer{})
	if err == nil {
		t.Error("expected error when all backends fail")
	}
}

func TestSearchRespectsMaxResults(t *testing.T) {
	var results []types.SearchResult
	for i := 0; i < 30; i++ {
		results = append(results, types.SearchResult{
			Identifier: fmt.Sprintf("id-%d", i),
			Title:      fmt.Sprintf("Paper %d", i),
			Source:     "fake",
		})
	}
	backends := []Backend{&fakeBackend{name: "fake", results: results}}
	out, err := Search(context.Background(), Query{FreeText: "x"}, backends, types.SearchConfig{MaxResults: 10}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(out.Results) != 10 {
		t.Errorf("got %d results, want 10", len(out.Results))
	}
}

func TestFormatTable(t *testing.T) {
	out := Output{
		Results: []types.SearchResult{
			{Title: "Paper A", Authors: []string{"Ada Lovelace", "Alan Turing"}, Year: 2024, CitationCount: 12, PDFURL: "https://example.org/a.pdf", Source: "semantic_scholar", RelevanceScore: 0.9},
		},
		DupsRemoved: 2,
	}
	var buf bytes.Buffer
	FormatTable(out, &buf)
	s := buf.String()
	for _, want := range []string{"Paper A", "Ada Lovelace et al.", "2024", "2 duplicates removed"} {
		if !strings.Contains(s, want) {
			t.Errorf("table missing %q:\n%s", want, s)
		}
	}
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(Output{}, &buf)
	if !strings.Contains(buf.String(), "No results found.") {
		t.Errorf("unexpected empty output: %q", buf.String())
	}
}

func TestFormatJSON(t *testing.T) {
	out := Output{Results: []types.SearchResult{{Identifier: "a", Title: "Paper A"}}}
	var buf bytes.Buffer
	if err := FormatJSON(out, &buf); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}
	var decoded []types.SearchResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Identifier != "a" {
		t.Errorf("round-trip mismatch: %+v", decoded)
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Attention Is All You Need!", "attention is all you need"},
		{"  spaced   out  ", "spaced out"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeTitle(tt.in); got != tt.want {
			t.Errorf("normalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
