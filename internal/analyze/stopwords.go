// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import "strings"

// stopwordList is a generic English stopword list applied when selecting
// keywords and noun-phrase candidates. Raw top-term frequency counts in the
// readability stats are deliberately unfiltered.
var stopwordList = []string{
	"a", "about", "above", "after", "again", "against", "all", "also", "am",
	"an", "and", "any", "are", "aren't", "as", "at", "be", "because", "been",
	"before", "being", "below", "between", "both", "but", "by", "can",
	"cannot", "could", "did", "do", "does", "doing", "down", "during", "each",
	"few", "for", "from", "further", "had", "has", "have", "having", "he",
	"her", "here", "hers", "him", "his", "how", "however", "i", "if", "in",
	"into", "is", "it", "its", "itself", "just", "may", "me", "might", "more",
	"most", "must", "my", "no", "nor", "not", "of", "off", "on", "once",
	"only", "or", "other", "our", "ours", "out", "over", "own", "same",
	"shall", "she", "should", "so", "some", "such", "than", "that", "the",
	"their", "theirs", "them", "then", "there", "these", "they", "this",
	"those", "through", "thus", "to", "too", "under", "until", "up", "upon",
	"us", "very", "was", "we", "were", "what", "when", "where", "which",
	"while", "who", "whom", "why", "will", "with", "within", "without",
	"would", "you", "your", "yours",
}

var stopwords = buildStopwords()

func buildStopwords() map[string]struct{} {
	set := make(map[string]struct{}, len(stopwordList))
	for _, w := range stopwordList {
		set[w] = struct{}{}
	}
	return set
}

// IsStopword reports whether the lowercased word is on the generic list.
func IsStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(word)]
	return ok
}
