// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze computes per-document analytics over normalized text:
// keyword sets, salient terms, key-finding sentences, readability stats,
// and the validation gate. Every function is pure and CPU-bound.
package analyze

import (
	"regexp"
	"sort"
	"strings"

	"github.com/meshintel/paperlens/pkg/types"
)

// Defaults for AnalyzeConfig zero values.
const (
	defaultTopKeywords     = 15
	defaultTopSalientTerms = 10
	defaultMaxFindings     = 3
	defaultMinValidChars   = 3000

	// minKeywordLen filters short function-word noise from keyword counts.
	minKeywordLen = 4

	// minSalientChars is the minimum text length for salient-term
	// extraction; shorter inputs return nothing.
	minSalientChars = 300
)

// tokenPattern extracts lowercase alphabetic runs, apostrophes allowed.
var tokenPattern = regexp.MustCompile(`[a-zA-Z']+`)

// Tokenize lowercases text and returns its alphabetic word tokens.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// termCount accumulates frequency and first-occurrence order for a term.
type termCount struct {
	term  string
	count int
	first int
}

// rankTerms orders counts by descending frequency, ties broken by first
// occurrence, and returns the top k.
func rankTerms(counts map[string]*termCount, k int) types.KeywordSet {
	ordered := make([]*termCount, 0, len(counts))
	for _, tc := range counts {
		ordered = append(ordered, tc)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].count != ordered[j].count {
			return ordered[i].count > ordered[j].count
		}
		return ordered[i].first < ordered[j].first
	})
	if k > 0 && len(ordered) > k {
		ordered = ordered[:k]
	}
	set := make(types.KeywordSet, len(ordered))
	for i, tc := range ordered {
		set[i] = types.Keyword{Term: tc.term, Count: tc.count}
	}
	return set
}

func countTerms(terms []string) map[string]*termCount {
	counts := make(map[string]*termCount)
	for i, term := range terms {
		if tc, ok := counts[term]; ok {
			tc.count++
			continue
		}
		counts[term] = &termCount{term: term, count: 1, first: i}
	}
	return counts
}

// Keywords returns the document's keyword set: tokens of at least four
// letters with stopwords removed, ranked by frequency with first-occurrence
// tie-break, capped at topK (default 15).
func Keywords(text string, topK int) types.KeywordSet {
	if topK <= 0 {
		topK = defaultTopKeywords
	}
	var kept []string
	for _, tok := range Tokenize(text) {
		if len(tok) < minKeywordLen || IsStopword(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return rankTerms(countTerms(kept), topK)
}

// SalientTerms returns the top unigrams and bigrams of the text with
// stopwords removed, ranked by raw frequency. With a single document there
// is no corpus-level document-frequency signal, so TF-IDF degenerates to
// term frequency; corpus-wide weighting lives in the compare package.
// Text shorter than 300 characters yields no terms.
func SalientTerms(text string, topK int) []string {
	if topK <= 0 {
		topK = defaultTopSalientTerms
	}
	if len(text) < minSalientChars {
		return nil
	}

	var kept []string
	for _, tok := range Tokenize(text) {
		if IsStopword(tok) {
			continue
		}
		kept = append(kept, tok)
	}

	grams := make([]string, 0, len(kept)*2)
	grams = append(grams, kept...)
	for i := 0; i+1 < len(kept); i++ {
		grams = append(grams, kept[i]+" "+kept[i+1])
	}

	ranked := rankTerms(countTerms(grams), topK)
	return ranked.Terms()
}

// NGrams returns the top-k n-grams of the token sequence by frequency,
// ties broken by first occurrence.
func NGrams(tokens []string, n, topK int) types.KeywordSet {
	if n <= 0 || len(tokens) < n {
		return nil
	}
	grams := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		grams = append(grams, strings.Join(tokens[i:i+n], " "))
	}
	return rankTerms(countTerms(grams), topK)
}

// NounPhrases returns up to topK bigram/trigram candidates whose words are
// all alphabetic, longer than two characters, and not stopwords.
func NounPhrases(tokens []string, topK int) []string {
	var candidates []string
	for _, n := range []int{2, 3} {
		for i := 0; i+n <= len(tokens); i++ {
			gram := tokens[i : i+n]
			if phraseCandidate(gram) {
				candidates = append(candidates, strings.Join(gram, " "))
			}
		}
	}
	return rankTerms(countTerms(candidates), topK).Terms()
}

func phraseCandidate(gram []string) bool {
	for _, w := range gram {
		if len(w) <= 2 || IsStopword(w) || !alphabetic(w) {
			return false
		}
	}
	return true
}

func alphabetic(w string) bool {
	for _, r := range w {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
