// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ExportJSON writes every stored document record to
// dataDir/export/records.json.
func (s *Store) ExportJSON(ctx context.Context) error {
	records, err := s.Records(ctx)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	outDir := filepath.Join(s.dataDir, exportDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(filepath.Join(outDir, "records.json"), data, 0o644)
}

// ExportCSV writes two spreadsheets to dataDir/export/: summary.csv with one
// row per document and similarity.csv with one row per compared pair.
func (s *Store) ExportCSV(ctx context.Context) error {
	records, err := s.Records(ctx)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	comparisons, err := s.Comparisons(ctx)
	if err != nil {
		return fmt.Errorf("querying comparisons for export: %w", err)
	}

	outDir := filepath.Join(s.dataDir, exportDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	summary := [][]string{{
		"id", "title", "total_chars", "status", "validation_passed",
		"flesch_reading_ease", "flesch_kincaid_grade", "keywords", "key_findings",
	}}
	for _, rec := range records {
		summary = append(summary, []string{
			rec.Document.ID,
			rec.Sections.Title,
			strconv.Itoa(rec.Document.TotalChars),
			string(rec.Status),
			strconv.FormatBool(rec.Validation.Passed),
			strconv.FormatFloat(rec.Stats.FleschReadingEase, 'f', 2, 64),
			strconv.FormatFloat(rec.Stats.FleschKincaidGrade, 'f', 2, 64),
			strings.Join(rec.Keywords.Terms(), "; "),
			strings.Join(rec.Findings, "; "),
		})
	}
	if err := writeCSV(filepath.Join(outDir, "summary.csv"), summary); err != nil {
		return err
	}

	similarity := [][]string{{"paper_a", "paper_b", "cosine_similarity", "keyword_overlap"}}
	for _, cmp := range comparisons {
		similarity = append(similarity, []string{
			cmp.IDA,
			cmp.IDB,
			strconv.FormatFloat(cmp.CosineSimilarity, 'f', 3, 64),
			strconv.FormatFloat(cmp.KeywordOverlap, 'f', 3, 64),
		})
	}
	return writeCSV(filepath.Join(outDir, "similarity.csv"), similarity)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
