// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compare

import (
	"math"
	"sort"

	"github.com/meshintel/paperlens/pkg/types"
)

// defaultMinAbstractChars is the minimum abstract length for a document to
// participate in corpus comparison.
const defaultMinAbstractChars = 200

// Comparator computes pairwise similarity records across a document corpus.
type Comparator struct {
	cfg types.CompareConfig
}

// New returns a Comparator. Zero config fields fall back to defaults.
func New(cfg types.CompareConfig) *Comparator {
	if cfg.MinAbstractChars <= 0 {
		cfg.MinAbstractChars = defaultMinAbstractChars
	}
	return &Comparator{cfg: cfg}
}

// Compare builds one ComparisonRecord per unordered pair of qualifying
// documents. A document qualifies when its abstract exceeds the configured
// minimum length. Fewer than two qualifying documents yields no records.
// Pairs are emitted with IDA < IDB, ordered lexicographically.
func (c *Comparator) Compare(records []types.DocumentRecord) []types.ComparisonRecord {
	var qualifying []types.DocumentRecord
	for _, rec := range records {
		if len(rec.Sections.Abstract) > c.cfg.MinAbstractChars {
			qualifying = append(qualifying, rec)
		}
	}
	if len(qualifying) < 2 {
		return nil
	}
	sort.Slice(qualifying, func(i, j int) bool {
		return qualifying[i].Document.ID < qualifying[j].Document.ID
	})

	docs := make([][]string, len(qualifying))
	for i, rec := range qualifying {
		docs[i] = stemTokens(rec.Sections.Abstract)
	}
	vectors := buildVectors(docs)

	var out []types.ComparisonRecord
	for i := 0; i < len(qualifying); i++ {
		for j := i + 1; j < len(qualifying); j++ {
			out = append(out, types.ComparisonRecord{
				IDA:              qualifying[i].Document.ID,
				IDB:              qualifying[j].Document.ID,
				CosineSimilarity: round3(cosine(vectors[i], vectors[j])),
				KeywordOverlap:   round3(keywordOverlap(qualifying[i].Keywords, qualifying[j].Keywords)),
			})
		}
	}
	return out
}

// keywordOverlap is the Jaccard ratio of two keyword sets: the size of the
// term intersection over the size of the union. Two empty sets overlap 0.
func keywordOverlap(a, b types.KeywordSet) float64 {
	seen := make(map[string]struct{}, len(a))
	for _, kw := range a {
		seen[kw.Term] = struct{}{}
	}
	union := len(seen)
	inter := 0
	for _, kw := range b {
		if _, ok := seen[kw.Term]; ok {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
