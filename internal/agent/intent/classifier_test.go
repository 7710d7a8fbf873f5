package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		utterance string
		want      model.Intent
	}{
		{"hi there", model.IntentGreeting},
		{"Hello, how are you?", model.IntentGreeting},
		{"hey", model.IntentGreeting},
		{"Good morning team", model.IntentGreeting},
		{"What is recursion?", model.IntentQuestion},
		{"tell me about go?", model.IntentQuestion},
		{"how does this work", model.IntentQuestion},
		{"Could you explain closures", model.IntentQuestion},
		{"Please summarize the meeting", model.IntentRequest},
		{"Help me write a cover letter", model.IntentRequest},
		{"generate a test plan", model.IntentRequest},
		{"Let's review the quarterly numbers", model.IntentAnalysis},
		{"time to evaluate the options", model.IntentAnalysis},
		{"I think tabs are better than spaces", model.IntentOpinion},
		{"In my opinion the design is solid", model.IntentOpinion},
		{"The weather is lovely today", model.IntentConversation},
		{"", model.IntentConversation},
		{"   ", model.IntentConversation},
	}
	for _, tc := range tests {
		t.Run(tc.utterance, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.utterance))
		})
	}
}

func TestClassify_GreetingPrefixAlwaysWins(t *testing.T) {
	for _, u := range []string{"hi?", "hello can you analyze this?", "hey, I think so", "hiking is fun"} {
		assert.Equal(t, model.IntentGreeting, Classify(u), u)
	}
}

func TestClassify_QuestionMarkBeatsLowerRules(t *testing.T) {
	for _, u := range []string{"please help?", "analyze this?", "I think so?", "ok?"} {
		assert.Equal(t, model.IntentQuestion, Classify(u), u)
	}
}

func TestClassify_AnalysisAfterRequest(t *testing.T) {
	assert.Equal(t, model.IntentRequest, Classify("analyze the report"))
	assert.Equal(t, model.IntentAnalysis, Classify("we should examine the logs"))
}
