package tracker

import (
	"strings"
	"unicode"
)

// PlaceholderTopic stands in when an utterance has no usable topic words.
const PlaceholderTopic = "this topic"

const maxTopicWords = 3

var stopWords = toSet(
	"a", "an", "the", "is", "are", "was", "were", "be", "been", "am", "do", "does", "did",
	"what", "how", "why", "when", "where", "who", "which", "whom", "whose",
	"can", "could", "would", "will", "should", "shall", "may", "might", "must",
	"you", "your", "me", "my", "we", "our", "they", "them", "their", "its", "this", "that", "these", "those",
	"there", "here", "of", "in", "on", "at", "to", "for", "with", "from", "by", "about", "as", "into",
	"and", "or", "but", "not", "so", "if", "then", "than", "too", "very", "just", "also",
	"please", "help", "need", "want", "like", "know", "tell", "give", "show", "let", "get",
	"some", "any", "all", "much", "many", "more", "most", "such", "only",
	"hello", "hey", "thanks", "thank", "think", "believe", "feel", "seems", "really",
	"good", "morning", "afternoon", "evening", "again", "everyone",
	"analyze", "create", "make", "generate", "explain", "summarize",
)

func toSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// Keywords lowercases the utterance, strips punctuation and returns the
// tokens that are neither stop words nor shorter than three characters.
func Keywords(utterance string) []string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, utterance)

	var out []string
	for _, tok := range strings.Fields(clean) {
		if len(tok) <= 2 || stopWords[tok] {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// TopicPhrase joins the first three keywords of the utterance, or returns
// PlaceholderTopic when none remain.
func TopicPhrase(utterance string) string {
	kw := Keywords(utterance)
	if len(kw) == 0 {
		return PlaceholderTopic
	}
	if len(kw) > maxTopicWords {
		kw = kw[:maxTopicWords]
	}
	return strings.Join(kw, " ")
}

// MergeTopics appends unseen topics in order and keeps only the most recent
// limit entries. Known topics keep their original position.
func MergeTopics(topics []string, limit int, incoming ...string) []string {
	out := append([]string{}, topics...)
	for _, t := range incoming {
		if t == "" || contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
