// Package textstats extracts lexical statistics from plain text.
//
// Word characters are ASCII letters, digits and underscore. Whitespace is
// space, tab, newline, vertical tab, form feed and carriage return. The
// letter y is always a vowel.
package textstats

import (
	"regexp"

	"github.com/verte-zerg/readscore/internal/model"
)

const whitespace = ` \t\n\v\f\r`

var (
	// A sentence may end at end of input so an unterminated last sentence
	// is still counted once.
	sentencePattern = regexp.MustCompile(`[` + whitespace + `]*\w+[\w` + whitespace + `]*(?:[.?!]|$)`)
	wordPattern     = regexp.MustCompile(`\b[^` + whitespace + `]+\b`)
	vowelRunPattern = regexp.MustCompile(`[aeiouyAEIOUY]+`)
)

// Analyze computes the statistics of text. Empty input yields zero counts.
func Analyze(text string) model.TextStatistics {
	stats := model.TextStatistics{
		Characters: CountCharacters(text),
		Sentences:  CountSentences(text),
	}
	for _, word := range Words(text) {
		syllables := CountSyllables(word)
		stats.Words++
		stats.Syllables += syllables
		if IsPolysyllable(syllables) {
			stats.Polysyllables++
		}
	}
	return stats
}

// Words returns the word tokens of text in order.
func Words(text string) []string {
	return wordPattern.FindAllString(text, -1)
}

// CountWords returns the number of word tokens in text.
func CountWords(text string) int {
	return len(wordPattern.FindAllStringIndex(text, -1))
}

// CountSentences returns the number of disjoint sentence matches in text.
func CountSentences(text string) int {
	return len(sentencePattern.FindAllStringIndex(text, -1))
}

// CountCharacters returns the number of non-whitespace code points in text.
func CountCharacters(text string) int {
	n := 0
	for _, r := range text {
		if !isSpace(r) {
			n++
		}
	}
	return n
}

// CountSyllables returns the syllable count of a single word.
//
// One trailing e is dropped, then each run of vowels counts once. A word
// with no vowel run left counts as one syllable.
func CountSyllables(word string) int {
	if n := len(word); n > 0 && (word[n-1] == 'e' || word[n-1] == 'E') {
		word = word[:n-1]
	}
	runs := len(vowelRunPattern.FindAllStringIndex(word, -1))
	if runs == 0 {
		return 1
	}
	return runs
}

// IsPolysyllable reports whether a syllable count makes a word polysyllabic.
func IsPolysyllable(syllables int) bool {
	return syllables > 2
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
