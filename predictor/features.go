/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package predictor

import (
	"strings"
	"unicode"
)

// Feature names produced by ExtractFeatures.
const (
	FeatureWords              = "words"
	FeatureSentences          = "sentences"
	FeatureMeanWordLength     = "mean_word_length"
	FeatureMeanSentenceLength = "mean_sentence_length"
	FeatureTypeTokenRatio     = "type_token_ratio"
	FeatureLongWordRatio      = "long_word_ratio"
	FeatureSyllablesPerWord   = "syllables_per_word"
)

// FeatureNames lists every feature ExtractFeatures computes.
var FeatureNames = []string{
	FeatureWords,
	FeatureSentences,
	FeatureMeanWordLength,
	FeatureMeanSentenceLength,
	FeatureTypeTokenRatio,
	FeatureLongWordRatio,
	FeatureSyllablesPerWord,
}

// longWord is the length from which a word counts as long.
const longWord = 7

// ExtractFeatures computes the lexical features of text. Empty text yields
// all zeros.
func ExtractFeatures(text string) map[string]float64 {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})

	f := make(map[string]float64, len(FeatureNames))
	for _, name := range FeatureNames {
		f[name] = 0
	}
	if len(words) == 0 {
		return f
	}

	var letters, long, syllables int
	types := make(map[string]struct{}, len(words))
	for _, w := range words {
		n := len([]rune(strings.Trim(w, "'")))
		letters += n
		if n >= longWord {
			long++
		}
		syllables += countSyllables(w)
		types[w] = struct{}{}
	}
	sentences := max(1, countSentences(text))

	total := float64(len(words))
	f[FeatureWords] = total
	f[FeatureSentences] = float64(sentences)
	f[FeatureMeanWordLength] = float64(letters) / total
	f[FeatureMeanSentenceLength] = total / float64(sentences)
	f[FeatureTypeTokenRatio] = float64(len(types)) / total
	f[FeatureLongWordRatio] = float64(long) / total
	f[FeatureSyllablesPerWord] = float64(syllables) / total
	return f
}

// countSentences counts runs of sentence-ending punctuation.
func countSentences(text string) int {
	n, inRun := 0, false
	for _, r := range text {
		end := r == '.' || r == '!' || r == '?'
		if end && !inRun {
			n++
		}
		inRun = end
	}
	return n
}

// countSyllables estimates syllables as groups of vowels, ignoring a silent
// trailing e. Every word has at least one.
func countSyllables(word string) int {
	word = strings.Trim(word, "'")
	word = strings.TrimSuffix(word, "e")
	n, inGroup := 0, false
	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !inGroup {
			n++
		}
		inGroup = vowel
	}
	return max(1, n)
}
