// Package tracker maintains the rolling per-conversation context: topics,
// tone, prior questions and the set of attachment categories seen.
package tracker

import (
	"regexp"
	"strings"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
)

type toneRule struct {
	tone    model.Tone
	pattern *regexp.Regexp
}

func words(list string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(?:` + list + `)\b`)
}

// toneRules are evaluated in order; an utterance matching none is friendly.
var toneRules = []toneRule{
	{model.ToneFormal, words(`please|thank you|kindly|appreciate|would you|could you|sir|madam|regards`)},
	{model.ToneCasual, words(`hey|yo|lol|gonna|wanna|cool|awesome|dude|btw|omg|yeah`)},
	{model.ToneTechnical, words(`code|function|api|algorithm|database|server|bug|deploy|error|compile|variable|query|recursion`)},
}

var interrogativeOpener = regexp.MustCompile(`(?i)^(?:what|how|why|when|where|who|which)\b`)

// DetectTone returns the tone of the first matching keyword family.
func DetectTone(utterance string) model.Tone {
	for _, r := range toneRules {
		if r.pattern.MatchString(utterance) {
			return r.tone
		}
	}
	return model.ToneFriendly
}

// IsQuestion reports whether the utterance contains '?' or opens with an interrogative.
func IsQuestion(utterance string) bool {
	u := strings.TrimSpace(utterance)
	return strings.Contains(u, "?") || interrogativeOpener.MatchString(u)
}

// Update returns the context after applying one user turn. The input
// context is not modified.
func Update(c model.ConversationContext, utterance string, attachments []model.Attachment) model.ConversationContext {
	next := c.Clone()

	if topic := TopicPhrase(utterance); topic != PlaceholderTopic {
		next.Topics = MergeTopics(next.Topics, model.MaxTopics, topic)
	}
	next.Tone = DetectTone(utterance)
	if IsQuestion(utterance) {
		next.PreviousQuestions = append(next.PreviousQuestions, strings.TrimSpace(utterance))
	}
	for _, a := range attachments {
		next.AttachmentCategoriesSeen[a.Category] = true
	}
	return next
}
