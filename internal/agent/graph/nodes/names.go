package nodes

// Graph node keys.
const (
	NodeTurnRecorder       = "turn_recorder"
	NodeContextTracker     = "context_tracker"
	NodeAttachmentAnalyzer = "attachment_analyzer"
	NodeIntentClassifier   = "intent_classifier"
	NodeAttachmentComposer = "attachment_composer"
	NodeIntentComposer     = "intent_composer"
	NodeResponseRecorder   = "response_recorder"
)
