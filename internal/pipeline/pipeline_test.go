// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/meshintel/paperlens/pkg/types"
)

// paperText builds a plausible paper body long enough to pass every gate.
func paperText(topic string) string {
	var b strings.Builder
	b.WriteString("A Measurement Study of " + topic + " Systems in Practice\n\n")
	b.WriteString("Abstract\n")
	b.WriteString(strings.Repeat("This paper examines "+topic+" behavior under varied workload conditions and summarizes the tradeoffs involved. ", 4))
	b.WriteString("\nIntroduction\n")
	b.WriteString(strings.Repeat("Prior work on "+topic+" leaves several measurement questions unanswered and motivates this study directly. ", 6))
	b.WriteString("\nMethods\n")
	b.WriteString(strings.Repeat("We instrument a "+topic+" deployment and capture traces across three separate configurations for analysis. ", 6))
	b.WriteString("\nResults\n")
	b.WriteString("We found throughput doubled under the tuned configuration. ")
	b.WriteString(strings.Repeat("Latency distributions for "+topic+" remained stable across every repetition of the trial runs. ", 6))
	b.WriteString("\nConclusion\n")
	b.WriteString(strings.Repeat("These observations suggest "+topic+" tuning generalizes beyond the configurations measured here. ", 4))
	return b.String()
}

func TestRunProcessesBatch(t *testing.T) {
	docs := []types.Document{
		{ID: "paper-b", RawText: paperText("cache")},
		{ID: "paper-a", RawText: paperText("scheduler")},
	}
	var buf bytes.Buffer
	p := New(types.ProcessConfig{}, &buf)

	result, err := p.Run(context.Background(), docs)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.RunID == "" {
		t.Error("empty RunID")
	}
	if len(result.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(result.Records))
	}
	// Sorted by ID despite input order.
	if result.Records[0].Document.ID != "paper-a" || result.Records[1].Document.ID != "paper-b" {
		t.Errorf("records not sorted: %s, %s", result.Records[0].Document.ID, result.Records[1].Document.ID)
	}
	for _, rec := range result.Records {
		if rec.Status != types.StatusProcessed {
			t.Errorf("%s status = %s, want processed (error: %s)", rec.Document.ID, rec.Status, rec.Error)
		}
		if rec.Sections.Abstract == "" {
			t.Errorf("%s has no abstract", rec.Document.ID)
		}
		if len(rec.Keywords) == 0 {
			t.Errorf("%s has no keywords", rec.Document.ID)
		}
		if rec.Stats.Words == 0 {
			t.Errorf("%s has zero word count", rec.Document.ID)
		}
	}
	if result.Summary.Processed != 2 || result.Summary.ExtractionFailed != 0 {
		t.Errorf("summary = %+v", result.Summary)
	}
	if !strings.Contains(buf.String(), "processed paper-a") {
		t.Errorf("progress output missing: %q", buf.String())
	}
}

func TestRunFindingsWithoutResultsHeading(t *testing.T) {
	// Heading detection often misses on real PDFs; finding sentences in
	// the body still count.
	var b strings.Builder
	b.WriteString("A Study of Cache Behavior Under Synthetic Workloads\n\n")
	b.WriteString(strings.Repeat("This paper examines cache behavior under varied workload conditions and summarizes the tradeoffs involved. ", 4))
	b.WriteString("We found throughput doubled under the tuned configuration. ")
	b.WriteString(strings.Repeat("The instrumented deployment captures traces across three separate configurations for later analysis. ", 8))

	var buf bytes.Buffer
	p := New(types.ProcessConfig{}, &buf)
	result, err := p.Run(context.Background(), []types.Document{{ID: "no-headings", RawText: b.String()}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	rec := result.Records[0]
	if rec.Status != types.StatusProcessed {
		t.Fatalf("status = %s (error: %s)", rec.Status, rec.Error)
	}
	if rec.Sections.Results != "" {
		t.Fatalf("unexpected results section: %q", rec.Sections.Results)
	}
	if len(rec.Findings) == 0 {
		t.Fatal("no findings despite reporting sentence in body")
	}
	if !strings.Contains(rec.Findings[0], "we found throughput doubled") {
		t.Errorf("findings[0] = %q", rec.Findings[0])
	}
}

func TestRunExtractionFailures(t *testing.T) {
	docs := []types.Document{
		{ID: "empty"},
		{ID: "tiny", RawText: "far too short to segment."},
		{ID: "good", RawText: paperText("compiler")},
	}
	var buf bytes.Buffer
	result, err := New(types.ProcessConfig{}, &buf).Run(context.Background(), docs)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Summary.ExtractionFailed != 2 || result.Summary.Processed != 1 {
		t.Fatalf("summary = %+v, want 2 failed, 1 processed", result.Summary)
	}
	for _, rec := range result.Records {
		if rec.Document.ID == "good" {
			continue
		}
		if rec.Status != types.StatusExtractionFailed {
			t.Errorf("%s status = %s, want extraction_failed", rec.Document.ID, rec.Status)
		}
		if rec.Error == "" {
			t.Errorf("%s has empty error detail", rec.Document.ID)
		}
	}
	if !result.Summary.HasFailures() {
		t.Error("HasFailures() = false, want true")
	}
	if result.Summary.Total() != 3 {
		t.Errorf("Total() = %d, want 3", result.Summary.Total())
	}
}

func TestRunComparesCorpus(t *testing.T) {
	docs := []types.Document{
		{ID: "a", RawText: paperText("database")},
		{ID: "b", RawText: paperText("database")},
		{ID: "c", RawText: paperText("network")},
	}
	result, err := New(types.ProcessConfig{}, &bytes.Buffer{}).Run(context.Background(), docs)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Comparisons) != 3 {
		t.Fatalf("got %d comparisons, want 3", len(result.Comparisons))
	}
	for _, cmp := range result.Comparisons {
		if cmp.IDA >= cmp.IDB {
			t.Errorf("pair (%s, %s) not ordered", cmp.IDA, cmp.IDB)
		}
	}
	// Identical abstracts must dominate the ranking.
	top := result.Comparisons[0]
	for _, cmp := range result.Comparisons[1:] {
		if cmp.CosineSimilarity > top.CosineSimilarity {
			top = cmp
		}
	}
	if top.IDA != "a" || top.IDB != "b" {
		t.Errorf("most similar pair = (%s, %s), want (a, b)", top.IDA, top.IDB)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	docs := make([]types.Document, 20)
	for i := range docs {
		docs[i] = types.Document{ID: fmt.Sprintf("doc-%02d", i), RawText: paperText("storage")}
	}
	if _, err := New(types.ProcessConfig{}, &bytes.Buffer{}).Run(ctx, docs); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestRunDeterministicOrder(t *testing.T) {
	var ids []string
	for i := 0; i < 12; i++ {
		ids = append(ids, fmt.Sprintf("doc-%02d", i))
	}
	docs := make([]types.Document, len(ids))
	for i, id := range ids {
		docs[len(ids)-1-i] = types.Document{ID: id, RawText: paperText("queue")}
	}

	result, err := New(types.ProcessConfig{Workers: 8}, &bytes.Buffer{}).Run(context.Background(), docs)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := make([]string, len(result.Records))
	for i, rec := range result.Records {
		got[i] = rec.Document.ID
	}
	if !sort.StringsAreSorted(got) {
		t.Errorf("records not sorted by ID: %v", got)
	}
}
