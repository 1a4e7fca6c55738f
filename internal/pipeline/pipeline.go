// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates the per-document processing chain
// (sanitize, segment, analyze, validate) across a corpus and runs the
// cross-document comparison over the results.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/meshintel/paperlens/internal/analyze"
	"github.com/meshintel/paperlens/internal/compare"
	"github.com/meshintel/paperlens/internal/sanitize"
	"github.com/meshintel/paperlens/internal/segment"
	"github.com/meshintel/paperlens/pkg/types"
)

const defaultWorkers = 4

// BatchSummary holds counts from one pipeline run.
type BatchSummary struct {
	Processed        int
	ExtractionFailed int
	ValidationFailed int
}

// Total returns the number of documents seen.
func (s BatchSummary) Total() int {
	return s.Processed + s.ExtractionFailed
}

// HasFailures reports whether any document failed extraction.
func (s BatchSummary) HasFailures() bool {
	return s.ExtractionFailed > 0
}

// RunResult is the complete output of one pipeline run.
type RunResult struct {
	RunID       string                   `json:"run_id" yaml:"run_id"`
	Records     []types.DocumentRecord   `json:"records" yaml:"records"`
	Comparisons []types.ComparisonRecord `json:"comparisons" yaml:"comparisons"`
	Summary     BatchSummary             `json:"-" yaml:"-"`
}

// Pipeline runs the processing chain over document batches.
type Pipeline struct {
	cfg        types.ProcessConfig
	comparator *compare.Comparator

	mu  sync.Mutex
	out io.Writer
}

// New returns a Pipeline that reports progress to w. A zero Workers count
// falls back to 4.
func New(cfg types.ProcessConfig, w io.Writer) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	return &Pipeline{
		cfg:        cfg,
		comparator: compare.New(cfg.Compare),
		out:        w,
	}
}

// Run processes every document concurrently, then compares the corpus.
// Document records come back sorted by ID regardless of completion order.
// A document that cannot be processed becomes an extraction-failure record;
// it never aborts the batch. Run returns an error only when the context is
// cancelled.
func (p *Pipeline) Run(ctx context.Context, docs []types.Document) (*RunResult, error) {
	result := &RunResult{
		RunID:   uuid.NewString(),
		Records: make([]types.DocumentRecord, len(docs)),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)

	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec := p.process(doc)
			result.Records[i] = rec
			p.report(rec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Documents are keyed by ID downstream; keep output order stable.
	sortRecords(result.Records)

	for _, rec := range result.Records {
		switch rec.Status {
		case types.StatusProcessed:
			result.Summary.Processed++
			if !rec.Validation.Passed {
				result.Summary.ValidationFailed++
			}
		default:
			result.Summary.ExtractionFailed++
		}
	}

	result.Comparisons = p.comparator.Compare(result.Records)
	fmt.Fprintf(p.out, "compared %d pairs across %d documents\n", len(result.Comparisons), len(docs))

	return result, nil
}

// process runs the full chain for one document.
func (p *Pipeline) process(doc types.Document) types.DocumentRecord {
	rec := types.DocumentRecord{Document: doc}

	if doc.RawText == "" {
		rec.Status = types.StatusExtractionFailed
		rec.Error = "no raw text"
		return rec
	}

	rec.Document.NormalizedText = sanitize.Sanitize(doc.RawText)
	rec.Document.TotalChars = len(doc.RawText)

	if segment.TooShort(rec.Document.NormalizedText, p.cfg.Segment) {
		rec.Status = types.StatusExtractionFailed
		rec.Error = fmt.Sprintf("text too short to segment (%d chars)", len(rec.Document.NormalizedText))
		return rec
	}

	rec.Sections = segment.Segment(rec.Document.NormalizedText, p.cfg.Segment)

	text := rec.Document.NormalizedText
	rec.Keywords = analyze.Keywords(text, p.cfg.Analyze.TopKeywords)
	rec.SalientTerms = analyze.SalientTerms(text, p.cfg.Analyze.TopSalientTerms)
	// Findings scan the whole document, not just the results section;
	// heading detection misses too often on real PDFs to gate on it.
	rec.Findings = analyze.Findings(text, p.cfg.Analyze.MaxFindings)
	rec.Stats = analyze.Score(text)
	rec.Validation = analyze.Validate(rec.Sections, rec.Document.TotalChars, p.cfg.Analyze.MinValidChars)
	rec.Status = types.StatusProcessed

	return rec
}

// report writes one progress line per finished document.
func (p *Pipeline) report(rec types.DocumentRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch rec.Status {
	case types.StatusProcessed:
		if rec.Validation.Passed {
			fmt.Fprintf(p.out, "processed %s (%d chars, %d keywords)\n",
				rec.Document.ID, rec.Document.TotalChars, len(rec.Keywords))
		} else {
			fmt.Fprintf(p.out, "processed %s (validation failed: %v)\n",
				rec.Document.ID, rec.Validation.FailedChecks())
		}
	default:
		fmt.Fprintf(p.out, "failed  %s: %s\n", rec.Document.ID, rec.Error)
	}
}

func sortRecords(records []types.DocumentRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Document.ID < records[j].Document.ID
	})
}
