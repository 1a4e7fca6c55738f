// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compare

import (
	"math"
	"strings"
	"testing"

	"github.com/meshintel/paperlens/pkg/types"
)

func record(id, abstract string, keywords ...string) types.DocumentRecord {
	rec := types.DocumentRecord{
		Document: types.Document{ID: id},
		Status:   types.StatusProcessed,
	}
	rec.Sections.Abstract = abstract
	for _, kw := range keywords {
		rec.Keywords = append(rec.Keywords, types.Keyword{Term: kw, Count: 1})
	}
	return rec
}

// longAbstract pads a sentence past the qualification threshold.
func longAbstract(sentence string) string {
	return strings.Repeat(sentence+" ", 1+220/len(sentence))
}

func TestCompareTooFewQualifying(t *testing.T) {
	records := []types.DocumentRecord{
		record("a", longAbstract("neural networks classify images well.")),
		record("b", "too short"),
	}
	if got := New(types.CompareConfig{}).Compare(records); got != nil {
		t.Errorf("Compare with one qualifying doc = %v, want nil", got)
	}
}

func TestCompareIdenticalAbstracts(t *testing.T) {
	abstract := longAbstract("transformer models dominate language benchmarks today.")
	records := []types.DocumentRecord{
		record("a", abstract, "transformer", "language"),
		record("b", abstract, "transformer", "language"),
	}
	got := New(types.CompareConfig{}).Compare(records)
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if math.Abs(got[0].CosineSimilarity-1.0) > 1e-9 {
		t.Errorf("identical abstracts cosine = %v, want 1.0", got[0].CosineSimilarity)
	}
	if got[0].KeywordOverlap != 1.0 {
		t.Errorf("identical keyword sets overlap = %v, want 1.0", got[0].KeywordOverlap)
	}
}

func TestCompareDisjointAbstracts(t *testing.T) {
	records := []types.DocumentRecord{
		record("a", longAbstract("quantum entanglement protocols secure communication channels."), "quantum"),
		record("b", longAbstract("soil microbiome diversity affects crop yield outcomes."), "soil"),
	}
	got := New(types.CompareConfig{}).Compare(records)
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].CosineSimilarity >= 0.5 {
		t.Errorf("disjoint abstracts cosine = %v, want low", got[0].CosineSimilarity)
	}
	if got[0].KeywordOverlap != 0 {
		t.Errorf("disjoint keyword sets overlap = %v, want 0", got[0].KeywordOverlap)
	}
}

func TestComparePairOrdering(t *testing.T) {
	a1 := longAbstract("graph algorithms traverse sparse networks efficiently.")
	a2 := longAbstract("distributed consensus tolerates partial node failures.")
	a3 := longAbstract("compiler optimizations reduce generated code size.")
	records := []types.DocumentRecord{
		record("charlie", a1),
		record("alpha", a2),
		record("bravo", a3),
	}
	got := New(types.CompareConfig{}).Compare(records)
	if len(got) != 3 {
		t.Fatalf("got %d records, want 3", len(got))
	}
	wantPairs := [][2]string{
		{"alpha", "bravo"},
		{"alpha", "charlie"},
		{"bravo", "charlie"},
	}
	for i, pair := range wantPairs {
		if got[i].IDA != pair[0] || got[i].IDB != pair[1] {
			t.Errorf("pair[%d] = (%s, %s), want (%s, %s)", i, got[i].IDA, got[i].IDB, pair[0], pair[1])
		}
		if got[i].IDA >= got[i].IDB {
			t.Errorf("pair[%d] not ordered: %s >= %s", i, got[i].IDA, got[i].IDB)
		}
	}
}

func TestCompareRoundsToThreeDecimals(t *testing.T) {
	records := []types.DocumentRecord{
		record("a", longAbstract("neural models learn word embeddings from corpora."), "neural", "models", "embeddings"),
		record("b", longAbstract("neural decoders reconstruct signals from recordings."), "neural", "decoders"),
	}
	got := New(types.CompareConfig{}).Compare(records)
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	for name, v := range map[string]float64{
		"CosineSimilarity": got[0].CosineSimilarity,
		"KeywordOverlap":   got[0].KeywordOverlap,
	} {
		if math.Round(v*1000)/1000 != v {
			t.Errorf("%s = %v, not rounded to 3 decimals", name, v)
		}
		if v < 0 || v > 1 {
			t.Errorf("%s = %v, out of [0,1]", name, v)
		}
	}
}

func TestKeywordOverlap(t *testing.T) {
	a := types.KeywordSet{{Term: "x"}, {Term: "y"}, {Term: "z"}}
	b := types.KeywordSet{{Term: "y"}, {Term: "z"}, {Term: "w"}}
	if got := keywordOverlap(a, b); got != 0.5 {
		t.Errorf("keywordOverlap = %v, want 0.5", got)
	}
	if got := keywordOverlap(nil, nil); got != 0 {
		t.Errorf("keywordOverlap(nil, nil) = %v, want 0", got)
	}
}
