package composer

import (
	"context"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
)

func first(int) int { return 0 }

func newTestComposer(t *testing.T, opts ...Option) *Composer {
	t.Helper()
	c, err := New(append([]Option{WithChooser(first)}, opts...)...)
	require.NoError(t, err)
	return c
}

func input(utterance string, intent model.Intent, topics ...string) model.ComposeInput {
	cc := model.NewConversationContext()
	cc.Topics = append(cc.Topics, topics...)
	return model.ComposeInput{Utterance: utterance, Intent: intent, Context: cc}
}

func TestDefaultTemplatesLoad(t *testing.T) {
	tpl, err := DefaultTemplates()
	require.NoError(t, err)
	assert.Len(t, tpl.Greeting.Openers, 4)
	assert.Len(t, tpl.Conversation.Openers, 4)
	for _, family := range []string{familyWhat, familyHow, familyWhy, familyOther} {
		assert.NotEmpty(t, tpl.Question.Openers[family], family)
	}
	for _, action := range actionWords {
		assert.NotEmpty(t, tpl.Request.Plans[action], action)
	}
}

func TestLoadTemplates_Invalid(t *testing.T) {
	_, err := LoadTemplates([]byte("greeting: [unterminated"))
	assert.Error(t, err)

	_, err = LoadTemplates([]byte("greeting:\n  callback: hi\n"))
	assert.ErrorContains(t, err, "no greeting openers")
}

func TestQuestion_WhatFamily(t *testing.T) {
	c := newTestComposer(t)
	reply := c.Compose(context.Background(), input("What is recursion?", model.IntentQuestion, "recursion"))

	assert.True(t, strings.HasPrefix(reply, "Great question! Let's look at what recursion is really about."), reply)
	assert.Contains(t, reply, "recursion")
	assert.NotContains(t, reply, "connects to")
}

func TestQuestion_CallbackToEarlierTopic(t *testing.T) {
	c := newTestComposer(t)
	in := input("Why does recursion need a base case?", model.IntentQuestion, "binary search trees", "recursion base case")
	reply := c.Compose(context.Background(), in)

	assert.True(t, strings.HasPrefix(reply, "The reasons behind recursion base case"), reply)
	assert.Contains(t, reply, "This also connects to binary search trees")
}

func TestQuestion_NoCallbackWithSingleTrackedTopic(t *testing.T) {
	c := newTestComposer(t)
	reply := c.Compose(context.Background(), input("Is it ok?", model.IntentQuestion, "recursion"))

	assert.Contains(t, reply, "this topic")
	assert.NotContains(t, reply, "connects to")
}

func TestQuestion_OtherFamily(t *testing.T) {
	c := newTestComposer(t)
	reply := c.Compose(context.Background(), input("Where is Lisbon?", model.IntentQuestion, "lisbon"))
	assert.True(t, strings.HasPrefix(reply, "Let me address your question about lisbon."), reply)
}

func TestGreeting(t *testing.T) {
	c := newTestComposer(t)

	t.Run("first turn", func(t *testing.T) {
		reply := c.Compose(context.Background(), input("Hello!", model.IntentGreeting))
		assert.True(t, strings.HasPrefix(reply, "Hello! It's great to hear from you."), reply)
		assert.Contains(t, reply, "Here's what I can help you with:")
		assert.NotContains(t, reply, "Welcome back")
	})

	t.Run("returning", func(t *testing.T) {
		in := input("Hi again", model.IntentGreeting, "quantum computing")
		in.Recent = []model.Turn{
			model.NewTurn(schema.User, "Tell me about quantum computing", nil),
			model.NewTurn(schema.Assistant, "Happy to chat about quantum computing.", nil),
		}
		reply := c.Compose(context.Background(), in)
		assert.True(t, strings.HasPrefix(reply, "Welcome back! Last time we were talking about quantum computing."), reply)
		assert.Contains(t, reply, "Hello! It's great to hear from you.")
	})
}

func TestGreeting_ChooserPicksOpener(t *testing.T) {
	c := newTestComposer(t, WithChooser(func(n int) int { return n - 1 }))
	reply := c.Compose(context.Background(), input("hey", model.IntentGreeting))
	assert.True(t, strings.HasPrefix(reply, "Greetings! I'm glad you reached out."), reply)
}

func TestRequestPlans(t *testing.T) {
	c := newTestComposer(t)
	tests := []struct {
		utterance string
		tone      model.Tone
		wantPlan  string
		wantClose string
	}{
		{"Can you explain closures in JavaScript?", model.ToneFriendly, "I'll explain closures javascript.", "Let me know where you'd like to start!"},
		{"Please summarize this report", model.ToneFormal, "I'll summarize report for you:", "Please let me know how you would like to proceed."},
		{"help me make a deploy script", model.ToneTechnical, "I can help make deploy script.", "Share any constraints"},
		{"Could you sort my list", model.ToneCasual, "I'm happy to help with sort list.", "Just say the word"},
	}
	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			in := input(tt.utterance, model.IntentRequest)
			in.Context.Tone = tt.tone
			reply := c.Compose(context.Background(), in)
			assert.True(t, strings.HasPrefix(reply, tt.wantPlan), reply)
			assert.Contains(t, reply, tt.wantClose)
			assert.Equal(t, 3, strings.Count(reply, "• "))
		})
	}
}

func TestAnalysisFramework(t *testing.T) {
	c := newTestComposer(t)
	reply := c.Compose(context.Background(), input("Break down the market trends", model.IntentAnalysis))

	assert.Contains(t, reply, "Let's analyze break down market systematically.")
	for _, step := range []string{"Context:", "Components:", "Evidence:", "Implications:"} {
		assert.Contains(t, reply, step)
	}
	assert.Contains(t, reply, "Findings: once each part is laid out, the key findings about break down market")
	assert.Contains(t, reply, "Insights: the most useful conclusions about break down market")
}

func TestOpinion(t *testing.T) {
	c := newTestComposer(t)

	reply := c.Compose(context.Background(), input("I think tabs are better", model.IntentOpinion))
	assert.True(t, strings.HasPrefix(reply, "Thank you for sharing your thoughts on tabs better."), reply)
	assert.Contains(t, reply, "real consideration")
	assert.Contains(t, reply, "What led you to that conclusion?")

	reply = c.Compose(context.Background(), input("Tabs are clearly superior", model.IntentOpinion))
	assert.NotContains(t, reply, "real consideration")
}

func TestConversation(t *testing.T) {
	c := newTestComposer(t)

	reply := c.Compose(context.Background(), input("my weekend plans", model.IntentConversation, "gardening", "weekend plans"))
	assert.True(t, strings.HasPrefix(reply, "That's interesting! Tell me more about weekend plans."), reply)
	assert.Contains(t, reply, "Does it relate to gardening from earlier?")

	reply = c.Compose(context.Background(), input("my weekend plans", model.IntentConversation, "weekend plans"))
	assert.NotContains(t, reply, "from earlier")
	assert.True(t, strings.HasSuffix(reply, "Where would you like to take it next?"), reply)
}

func TestConversation_CallbackUsesSecondMostRecentTopic(t *testing.T) {
	c := newTestComposer(t)

	reply := c.Compose(context.Background(), input("alpha", model.IntentConversation, "alpha", "beta", "gamma"))
	assert.Contains(t, reply, "Does it relate to beta from earlier?")

	reply = c.Compose(context.Background(), input("beta", model.IntentConversation, "alpha", "beta", "gamma"))
	assert.NotContains(t, reply, "from earlier")

	reply = c.Compose(context.Background(), input("ok", model.IntentConversation, "alpha", "beta"))
	assert.Contains(t, reply, "Does it relate to alpha from earlier?")
}

func TestSingleAttachment(t *testing.T) {
	c := newTestComposer(t)
	in := input("What is in this file?", model.IntentQuestion)
	in.Reports = []model.AttachmentReport{{Name: "notes.txt", Category: model.CategoryText, Report: "Words: 3\n"}}

	reply := c.Compose(context.Background(), in)
	assert.True(t, strings.HasPrefix(reply, "I've taken a look at notes.txt (text file). Here's what it contains"), reply)
	assert.Contains(t, reply, "Detailed analysis:")
	assert.True(t, strings.HasSuffix(reply, "--- Analysis of notes.txt (text file) ---\nWords: 3"), reply)
}

func TestSingleAttachment_NonQuestionUsesCategoryInsight(t *testing.T) {
	c := newTestComposer(t)
	in := input("", model.IntentConversation)
	in.Reports = []model.AttachmentReport{{Name: "main.go", Category: model.CategoryCode, Report: "Language: Go"}}

	reply := c.Compose(context.Background(), in)
	assert.Contains(t, reply, "I've taken a look at main.go (source code file). I've reviewed the language")
}

func TestMultipleAttachments(t *testing.T) {
	c := newTestComposer(t)
	in := input("Can you look at these?", model.IntentRequest)
	in.Reports = []model.AttachmentReport{
		{Name: "main.go", Category: model.CategoryCode, Report: "Language: Go"},
		{Name: "chart.png", Category: model.CategoryImage, Report: "Type: Chart or graph"},
	}

	reply := c.Compose(context.Background(), in)
	assert.True(t, strings.HasPrefix(reply, "I've received 2 files. Here's a quick overview:"), reply)
	assert.Contains(t, reply, "• main.go (source code file): source code I can review and explain")
	assert.Contains(t, reply, "• chart.png (image): an image I can describe and interpret")
	assert.Contains(t, reply, "• Review the code for bugs and readability")
	assert.Contains(t, reply, "• Describe what each image shows")
	assert.NotContains(t, reply, "Summarize the key points")
	assert.NotContains(t, reply, "Tell me what you'd like to do")
	assert.Contains(t, reply, "--- Analysis of main.go (source code file) ---")
	assert.Contains(t, reply, "--- Analysis of chart.png (image) ---")
}

func TestNextStepGroups(t *testing.T) {
	assert.Equal(t, []string{stepsDocuments}, nextStepGroups([]model.AttachmentReport{{Category: model.CategoryPDF}, {Category: model.CategoryText}}))
	assert.Equal(t, []string{stepsGeneral}, nextStepGroups([]model.AttachmentReport{{Category: model.CategoryPresentation}}))
}

func TestBrokenTemplateFallsBack(t *testing.T) {
	tpl, err := DefaultTemplates()
	require.NoError(t, err)
	tpl.Analysis.Framework = "{{.Topic"

	c := newTestComposer(t, WithTemplates(tpl))
	reply := c.Compose(context.Background(), input("analyze churn", model.IntentAnalysis))
	assert.Contains(t, Fallbacks, reply)
}

func TestUnknownIntentFallsBack(t *testing.T) {
	c := newTestComposer(t)
	reply := c.Compose(context.Background(), input("hmm", model.Intent("mystery")))
	assert.Contains(t, Fallbacks, reply)
}

func TestChooserOutOfRange(t *testing.T) {
	c := newTestComposer(t, WithChooser(func(n int) int { return n + 7 }))
	assert.Equal(t, Fallbacks[0], c.Fallback())
}

func TestQuestionAndActionWords(t *testing.T) {
	assert.Equal(t, "what", QuestionWord("Where and what?"))
	assert.Equal(t, "when", QuestionWord("When is the launch?"))
	assert.Equal(t, "what", QuestionWord("tell me more"))
	assert.Equal(t, "what", QuestionWord("whatever works"))

	assert.Equal(t, "make", ActionWord("help me make a plan"))
	assert.Equal(t, "help", ActionWord("fix the sink"))
	assert.Equal(t, "explain", ActionWord("Explain, please."))
}
