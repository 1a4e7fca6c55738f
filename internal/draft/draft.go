// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package draft composes heuristic draft summaries for processed papers and
// reviews them. Drafts are templated prose built from analysis output and
// paper metadata; no generative model is involved.
package draft

import (
	"fmt"
	"strings"

	"github.com/meshintel/paperlens/pkg/types"
)

const defaultKeyTerms = 5

// Generate builds one Draft per document record, joining each record to its
// paper metadata by ID. Records without metadata still get a draft; the
// metadata fields stay zero.
func Generate(records []types.DocumentRecord, papers map[string]*types.Paper, cfg types.DraftConfig) []types.Draft {
	keyTerms := cfg.KeyTerms
	if keyTerms <= 0 {
		keyTerms = defaultKeyTerms
	}

	var drafts []types.Draft
	for _, rec := range records {
		if rec.Status != types.StatusProcessed {
			continue
		}
		paper := papers[rec.Document.ID]
		if paper == nil {
			paper = &types.Paper{ID: rec.Document.ID}
		}
		drafts = append(drafts, makeDraft(rec, paper, keyTerms))
	}
	return drafts
}

func makeDraft(rec types.DocumentRecord, paper *types.Paper, keyTerms int) types.Draft {
	stats := rec.Stats
	terms := topTerms(stats, keyTerms)

	d := types.Draft{
		PaperID:   rec.Document.ID,
		Title:     paper.Title,
		Year:      paper.Year,
		Citations: paper.CitationCount,
		Abstract:  firstNonEmpty(paper.Abstract, rec.Sections.Abstract),
		KeyTerms:  terms,
		Stats:     stats,
	}
	if d.Title == "" {
		d.Title = rec.Sections.Title
	}

	d.Strengths = strengths(stats, terms)
	d.Sections = fillSections(rec, stats, terms)
	d.Text = composeNarrative(d, stats)

	return d
}

// topTerms returns the first k top-term strings from the stats.
func topTerms(stats types.ReadabilityStats, k int) []string {
	var terms []string
	for _, kw := range stats.TopTerms {
		terms = append(terms, kw.Term)
		if len(terms) == k {
			break
		}
	}
	return terms
}

// strengths lists one-line observations about the paper's text profile.
func strengths(stats types.ReadabilityStats, terms []string) []string {
	var out []string
	if stats.FleschReadingEase != 0 {
		out = append(out, fmt.Sprintf("Readable score: %.2f", stats.FleschReadingEase))
	}
	if stats.FleschKincaidGrade != 0 {
		out = append(out, fmt.Sprintf("Grade level: %.2f", stats.FleschKincaidGrade))
	}
	if stats.AvgSentenceLength != 0 {
		out = append(out, fmt.Sprintf("Avg sentence length: %.2f", stats.AvgSentenceLength))
	}
	if len(terms) > 0 {
		out = append(out, "Top terms: "+strings.Join(terms, ", "))
	}
	if len(stats.NounPhrases) > 0 {
		n := len(stats.NounPhrases)
		if n > 5 {
			n = 5
		}
		out = append(out, "Key noun phrases: "+strings.Join(stats.NounPhrases[:n], ", "))
	}
	return out
}

// fillSections builds the templated contribution/method/results summaries.
func fillSections(rec types.DocumentRecord, stats types.ReadabilityStats, terms []string) types.DraftSections {
	mainTerm := "the main topic"
	if len(stats.NounPhrases) > 0 {
		mainTerm = stats.NounPhrases[0]
	} else if len(terms) > 0 {
		mainTerm = terms[0]
	}

	var secondary []string
	if len(terms) > 1 {
		end := 3
		if end > len(terms) {
			end = len(terms)
		}
		secondary = terms[1:end]
	}

	contribution := fmt.Sprintf("Addresses %s.", mainTerm)
	if len(secondary) > 0 {
		contribution = fmt.Sprintf("Addresses %s with focus on %s.", mainTerm, strings.Join(secondary, ", "))
	}

	method := "Uses common NLP/deep learning techniques."
	if len(stats.TopBigrams) > 0 {
		n := len(stats.TopBigrams)
		if n > 2 {
			n = 2
		}
		var bigrams []string
		for _, kw := range stats.TopBigrams[:n] {
			bigrams = append(bigrams, kw.Term)
		}
		method = fmt.Sprintf("Method centers on %s.", strings.Join(bigrams, ", "))
	}

	results := "Results not explicitly provided; highlight key findings and evaluation metrics when available."
	if len(rec.Findings) > 0 {
		results = "Reported findings: " + strings.Join(rec.Findings, " ")
	}

	return types.DraftSections{
		Contribution: contribution,
		Method:       method,
		Results:      results,
	}
}

// composeNarrative joins title, metadata, text profile, key terms, and the
// abstract into a single paragraph.
func composeNarrative(d types.Draft, stats types.ReadabilityStats) string {
	title := d.Title
	if title == "" {
		title = "Untitled"
	}
	year := "N/A"
	if d.Year > 0 {
		year = fmt.Sprintf("%d", d.Year)
	}
	citeTxt := ""
	if d.Citations > 0 {
		citeTxt = fmt.Sprintf(" (citations: %d)", d.Citations)
	}

	var profileBits []string
	if stats.Words > 0 {
		profileBits = append(profileBits, fmt.Sprintf("~%d words", stats.Words))
	}
	if stats.AvgSentenceLength != 0 {
		profileBits = append(profileBits, fmt.Sprintf("avg sentence %.2f words", stats.AvgSentenceLength))
	}
	if stats.FleschReadingEase != 0 {
		profileBits = append(profileBits, fmt.Sprintf("Flesch %.2f", stats.FleschReadingEase))
	}

	termsTxt := "(no dominant terms)"
	if len(d.KeyTerms) > 0 {
		termsTxt = strings.Join(d.KeyTerms, ", ")
	}

	abstract := d.Abstract
	if abstract == "" {
		abstract = "Abstract not available."
	}

	return fmt.Sprintf("%s (%s)%s. Content profile: %s. Key terms: %s. Abstract: %s",
		title, year, citeTxt, strings.Join(profileBits, "; "), termsTxt, abstract)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
