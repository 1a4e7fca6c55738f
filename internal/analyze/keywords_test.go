// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"lowercases", "Deep LEARNING Models", []string{"deep", "learning", "models"}},
		{"drops digits and punctuation", "model-2, v3.1 (beta)", []string{"model", "v", "beta"}},
		{"keeps apostrophes", "the model's output", []string{"the", "model's", "output"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestKeywords(t *testing.T) {
	text := "Neural networks learn representations. Neural networks generalize. " +
		"The networks need data and the data must be clean."

	got := Keywords(text, 15)
	if len(got) == 0 {
		t.Fatal("Keywords returned empty set")
	}
	if got[0].Term != "networks" || got[0].Count != 3 {
		t.Errorf("top keyword = %s (%d), want networks (3)", got[0].Term, got[0].Count)
	}
	for _, kw := range got {
		if len(kw.Term) < 4 {
			t.Errorf("keyword %q shorter than 4 chars", kw.Term)
		}
		if IsStopword(kw.Term) {
			t.Errorf("stopword %q survived filtering", kw.Term)
		}
	}
}

func TestKeywordsTieBreakByFirstOccurrence(t *testing.T) {
	got := Keywords("zebra apple zebra apple", 15)
	want := []string{"zebra", "apple"}
	if !reflect.DeepEqual(got.Terms(), want) {
		t.Errorf("Keywords tie order = %v, want %v", got.Terms(), want)
	}
}

func TestKeywordsRespectsTopK(t *testing.T) {
	text := "alpha bravo charlie delta echo foxtrot golf hotel india juliett kilo lima"
	got := Keywords(text, 5)
	if len(got) != 5 {
		t.Errorf("len(Keywords) = %d, want 5", len(got))
	}
}

func TestSalientTermsShortInput(t *testing.T) {
	if got := SalientTerms("short text about nothing", 10); got != nil {
		t.Errorf("SalientTerms on short input = %v, want nil", got)
	}
}

func TestSalientTermsBigrams(t *testing.T) {
	// "deep learning" appears five times; it must surface as a bigram.
	phrase := strings.Repeat("deep learning improves recognition accuracy substantially. ", 5) +
		strings.Repeat("unrelated filler sentence padding tokens everywhere around here. ", 3)

	got := SalientTerms(phrase, 10)
	if len(got) == 0 {
		t.Fatal("SalientTerms returned nothing")
	}
	found := false
	for _, term := range got {
		if term == "deep learning" {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("SalientTerms = %v, want to contain %q", got, "deep learning")
	}
}

func TestNGramsTopBigram(t *testing.T) {
	// A text mentioning "deep learning" five times ranks it first with
	// its exact count.
	text := strings.Repeat("deep learning improves recognition accuracy substantially. ", 5)
	bigrams := NGrams(Tokenize(text), 2, 5)
	if len(bigrams) == 0 {
		t.Fatal("NGrams returned nothing")
	}
	if bigrams[0].Term != "deep learning" || bigrams[0].Count != 5 {
		t.Errorf("top bigram = %+v, want {deep learning 5}", bigrams[0])
	}
}

func TestNGrams(t *testing.T) {
	tokens := []string{"a", "b", "c", "a", "b"}
	got := NGrams(tokens, 2, 5)
	if len(got) == 0 || got[0].Term != "a b" || got[0].Count != 2 {
		t.Errorf("NGrams top = %+v, want {a b 2}", got)
	}
	if NGrams([]string{"solo"}, 2, 5) != nil {
		t.Error("NGrams on too-short token list should be nil")
	}
}

func TestNounPhrases(t *testing.T) {
	tokens := Tokenize("gradient descent converges and gradient descent oscillates")
	got := NounPhrases(tokens, 5)
	if len(got) == 0 || got[0] != "gradient descent" {
		t.Errorf("NounPhrases = %v, want first %q", got, "gradient descent")
	}
	for _, p := range got {
		for _, w := range strings.Fields(p) {
			if IsStopword(w) {
				t.Errorf("phrase %q contains stopword %q", p, w)
			}
		}
	}
}
