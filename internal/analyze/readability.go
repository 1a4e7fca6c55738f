// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"math"
	"regexp"
	"strings"

	"github.com/meshintel/paperlens/pkg/types"
)

var sentenceSplit = regexp.MustCompile(`[.!?]+\s+`)

// CountSyllables estimates syllables in an English word by counting vowel
// groups, subtracting a silent trailing 'e', with a floor of one.
func CountSyllables(word string) int {
	word = strings.ToLower(word)
	const vowels = "aeiouy"
	count := 0
	prevVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune(vowels, r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}
	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

// Sentences splits text on terminal punctuation followed by whitespace, so
// decimals and abbreviation dots inside a sentence do not end it. A trailing
// fragment without terminal punctuation is not counted as a sentence.
func Sentences(text string) []string {
	parts := sentenceSplit.Split(strings.TrimSpace(text), -1)
	out := make([]string, 0, len(parts))
	for i, p := range parts {
		if i == len(parts)-1 {
			t := strings.TrimRight(p, ".!?")
			if t == p {
				continue
			}
			p = t
		}
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

// Score computes readability statistics for the text: Flesch reading ease,
// Flesch-Kincaid grade, word/sentence counts and derived averages, lexical
// diversity, plus top terms, bigrams, trigrams and noun phrases. Empty or
// unpunctuated input returns zeroed scores rather than an error.
func Score(text string) types.ReadabilityStats {
	words := Tokenize(text)
	sentences := Sentences(text)

	stats := types.ReadabilityStats{
		Characters: len(text),
		Words:      len(words),
		Sentences:  len(sentences),
	}
	if len(words) == 0 || len(sentences) == 0 {
		return stats
	}

	syllables := 0
	totalChars := 0
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		syllables += CountSyllables(w)
		totalChars += len(w)
		unique[w] = struct{}{}
	}

	wordsPerSentence := float64(len(words)) / float64(len(sentences))
	syllablesPerWord := float64(syllables) / float64(len(words))

	stats.AvgWordLength = round2(float64(totalChars) / float64(len(words)))
	stats.AvgSentenceLength = round2(wordsPerSentence)
	stats.TypeTokenRatio = round3(float64(len(unique)) / float64(len(words)))

	stats.FleschReadingEase = round2(206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord)
	stats.FleschKincaidGrade = round2(0.39*wordsPerSentence + 11.8*syllablesPerWord - 15.59)

	// Top terms are raw token frequencies; the stopword and length
	// filters apply only to the keyword set and noun-phrase candidates.
	stats.TopTerms = NGrams(words, 1, defaultTopSalientTerms)
	stats.TopBigrams = NGrams(words, 2, 5)
	stats.TopTrigrams = NGrams(words, 3, 5)
	stats.NounPhrases = NounPhrases(words, 5)

	return stats
}
