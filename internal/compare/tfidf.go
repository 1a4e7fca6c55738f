// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compare builds TF-IDF vectors over document abstracts and
// computes pairwise similarity across a processed corpus.
package compare

import (
	"math"

	"github.com/kljensen/snowball/english"

	"github.com/meshintel/paperlens/internal/analyze"
)

// vector is a sparse term-weight map for one document.
type vector map[string]float64

// stemTokens tokenizes text, drops stopwords, and stems what remains.
func stemTokens(text string) []string {
	var stems []string
	for _, tok := range analyze.Tokenize(text) {
		if analyze.IsStopword(tok) {
			continue
		}
		stems = append(stems, english.Stem(tok, false))
	}
	return stems
}

// buildVectors converts one token list per document into L2-normalized
// TF-IDF vectors. IDF is smoothed, ln((1+N)/(1+df))+1, so terms shared by
// every document keep non-zero weight and two identical documents score a
// cosine of exactly 1.
func buildVectors(docs [][]string) []vector {
	df := make(map[string]int)
	tfs := make([]map[string]int, len(docs))
	for i, tokens := range docs {
		tf := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}
		tfs[i] = tf
		for term := range tf {
			df[term]++
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log((1+n)/(1+float64(count))) + 1
	}

	vectors := make([]vector, len(docs))
	for i, tf := range tfs {
		v := make(vector, len(tf))
		var norm float64
		for term, count := range tf {
			w := float64(count) * idf[term]
			v[term] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for term := range v {
				v[term] /= norm
			}
		}
		vectors[i] = v
	}
	return vectors
}

// cosine returns the dot product of two L2-normalized sparse vectors.
func cosine(a, b vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for term, wa := range a {
		if wb, ok := b[term]; ok {
			dot += wa * wb
		}
	}
	return dot
}
