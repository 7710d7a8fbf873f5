package composer

import (
	"slices"
	"strings"
	"unicode"
)

const (
	familyWhat  = "what"
	familyHow   = "how"
	familyWhy   = "why"
	familyOther = "other"

	defaultQuestionWord = "what"
	defaultAction       = "help"
)

// Checked in this order; the first word present in the utterance wins.
var (
	questionWords = []string{"what", "how", "why", "when", "where", "who", "which"}
	actionWords   = []string{"analyze", "create", "make", "generate", "explain", "summarize", "help"}
	firstPerson   = []string{"i", "i'm", "my", "me", "personally"}
)

func tokens(utterance string) []string {
	return strings.FieldsFunc(strings.ToLower(utterance), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

func firstPresent(utterance string, candidates []string, fallback string) string {
	toks := tokens(utterance)
	for _, w := range candidates {
		if slices.Contains(toks, w) {
			return w
		}
	}
	return fallback
}

// QuestionWord returns the interrogative the utterance is built around.
func QuestionWord(utterance string) string {
	return firstPresent(utterance, questionWords, defaultQuestionWord)
}

// ActionWord returns the verb a request is built around.
func ActionWord(utterance string) string {
	return firstPresent(utterance, actionWords, defaultAction)
}

// questionFamily groups question words into the opener families.
func questionFamily(word string) string {
	switch word {
	case familyWhat, familyHow, familyWhy:
		return word
	default:
		return familyOther
	}
}

func hasFirstPerson(utterance string) bool {
	for _, t := range tokens(utterance) {
		if slices.Contains(firstPerson, t) {
			return true
		}
	}
	return false
}
