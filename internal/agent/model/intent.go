package model

// Intent is the classified communicative purpose of an utterance.
type Intent string

const (
	IntentGreeting     Intent = "greeting"
	IntentQuestion     Intent = "question"
	IntentRequest      Intent = "request"
	IntentAnalysis     Intent = "analysis"
	IntentOpinion      Intent = "opinion"
	IntentConversation Intent = "conversation"
)

func (i Intent) String() string {
	return string(i)
}
