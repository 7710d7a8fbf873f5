// Package intent maps an utterance to one of a fixed set of intents using
// ordered pattern rules; the first matching rule wins.
package intent

import (
	"regexp"
	"strings"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
)

// Rule pairs an intent with the predicate that selects it.
type Rule struct {
	Intent model.Intent
	Match  func(utterance string) bool
}

func prefix(pattern string) func(string) bool {
	re := regexp.MustCompile(`(?i)^(?:` + pattern + `)`)
	return re.MatchString
}

func anywhere(pattern string) func(string) bool {
	re := regexp.MustCompile(`(?i)(?:` + pattern + `)`)
	return re.MatchString
}

var (
	greetingOpener = prefix(`hi|hello|hey|good\s+morning|good\s+afternoon|good\s+evening`)
	questionOpener = prefix(`what|how|why|when|where|who|which|can you|could you|will you|would you|are you|do you|did you|have you|is it|does it`)
	requestOpener  = prefix(`please|can you|could you|would you|help me|i need|i want|create|make|generate|write|explain|analyze|summarize`)
	analysisVerb   = anywhere(`analyze|review|examine|evaluate`)
	opinionOpener  = prefix(`i think|i believe|in my opinion|it seems|i feel|i noticed|i found`)
)

// Rules is the classification precedence. Question is evaluated before
// request, so "could you explain X?" classifies as a question.
var Rules = []Rule{
	{Intent: model.IntentGreeting, Match: greetingOpener},
	{Intent: model.IntentQuestion, Match: func(u string) bool { return strings.Contains(u, "?") || questionOpener(u) }},
	{Intent: model.IntentRequest, Match: requestOpener},
	{Intent: model.IntentAnalysis, Match: analysisVerb},
	{Intent: model.IntentOpinion, Match: opinionOpener},
}

// Classify returns the intent of the first matching rule, or conversation.
func Classify(utterance string) model.Intent {
	u := strings.TrimSpace(utterance)
	for _, r := range Rules {
		if r.Match(u) {
			return r.Intent
		}
	}
	return model.IntentConversation
}
