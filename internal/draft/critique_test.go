// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package draft

import (
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/meshintel/paperlens/pkg/types"
)

func cleanDraft() types.Draft {
	return types.Draft{
		PaperID:  "good",
		Title:    "A Fine Paper",
		Abstract: "A thorough abstract grounding the draft in its source material.",
		KeyTerms: []string{"index", "learned", "storage"},
		Text:     strings.Repeat("A well developed draft paragraph with plenty of substance. ", 8),
		Sections: types.DraftSections{
			Contribution: "Addresses learned index structures with focus on storage, latency tradeoffs.",
			Method:       "Method centers on learned index, index structures and their evaluation.",
			Results:      "Reported findings: throughput doubled against the tuned baseline configuration.",
		},
		Stats: types.ReadabilityStats{
			FleschReadingEase:  55.0,
			FleschKincaidGrade: 11.0,
			AvgSentenceLength:  18.0,
		},
	}
}

func TestCritiqueCleanDraft(t *testing.T) {
	critiques := Critique([]types.Draft{cleanDraft()})
	if len(critiques) != 1 {
		t.Fatalf("got %d critiques, want 1", len(critiques))
	}
	if len(critiques[0].Flags) != 0 {
		t.Errorf("clean draft flagged: %v", critiques[0].Flags)
	}
}

func TestCritiqueFlags(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.Draft)
		want   string
	}{
		{"hard to read", func(d *types.Draft) { d.Stats.FleschReadingEase = 22.0 }, "hard_to_read"},
		{"high grade level", func(d *types.Draft) { d.Stats.FleschKincaidGrade = 16.5 }, "high_grade_level"},
		{"long sentences", func(d *types.Draft) { d.Stats.AvgSentenceLength = 31.0 }, "long_sentences"},
		{"thin keywords", func(d *types.Draft) { d.KeyTerms = d.KeyTerms[:2] }, "thin_keywords"},
		{"missing abstract", func(d *types.Draft) { d.Abstract = "" }, "missing_abstract"},
		{"short draft", func(d *types.Draft) { d.Text = "Too brief." }, "draft_too_short"},
		{"missing method", func(d *types.Draft) { d.Sections.Method = "" }, "missing_method"},
		{"weak results", func(d *types.Draft) { d.Sections.Results = "Fine." }, "weak_results"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := cleanDraft()
			tt.mutate(&d)
			c := Critique([]types.Draft{d})[0]
			found := false
			for _, f := range c.Flags {
				if f == tt.want {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("flags = %v, want %q", c.Flags, tt.want)
			}
			if len(c.Flags) != len(c.Suggestions) {
				t.Errorf("flags and suggestions not parallel: %d vs %d", len(c.Flags), len(c.Suggestions))
			}
		})
	}
}

func TestCritiqueFlagOrder(t *testing.T) {
	d := cleanDraft()
	d.Stats.FleschReadingEase = 20.0
	d.Stats.FleschKincaidGrade = 17.0
	d.Abstract = ""
	d.Sections.Results = ""

	c := Critique([]types.Draft{d})[0]
	want := []string{"hard_to_read", "high_grade_level", "missing_abstract", "missing_results"}
	if !reflect.DeepEqual(c.Flags, want) {
		t.Errorf("flags = %v, want %v", c.Flags, want)
	}
}

func TestWriteCritiques(t *testing.T) {
	dir := t.TempDir()
	d := cleanDraft()
	d.Abstract = ""
	critiques := Critique([]types.Draft{d})

	path, err := WriteCritiques(critiques, dir)
	if err != nil {
		t.Fatalf("WriteCritiques: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	out := string(data)
	if !strings.Contains(out, `"total": 1`) {
		t.Errorf("missing total in output: %s", out)
	}
	if !strings.Contains(out, "missing_abstract") {
		t.Errorf("missing flag in output: %s", out)
	}
}

func TestCritiqueZeroScoresNotFlagged(t *testing.T) {
	// A degenerate draft has zero stats; zero reading ease means "not
	// computed", not "hard to read".
	d := cleanDraft()
	d.Stats = types.ReadabilityStats{}
	c := Critique([]types.Draft{d})[0]
	for _, f := range c.Flags {
		if f == "hard_to_read" {
			t.Errorf("zero reading ease flagged as hard_to_read: %v", c.Flags)
		}
	}
}
