package model

// AppState stores per-invocation state for the Eino Graph.
// Concurrency model:
//   - Registered as Graph Local State via compose.WithGenLocalState, one per turn.
//   - Reads/writes happen only inside state handlers or compose.ProcessState.
//   - Conversation-wide state (history, context) lives in the repository, not here.
type AppState struct {
	ConversationID string
	Utterance      string
	Attachments    []Attachment
	Reports        []AttachmentReport
	Context        ConversationContext // snapshot taken after this turn's update
	Recent         []Turn              // look-back window, excluding the current user turn
}

// QueryInput represents the input for processing one user turn.
type QueryInput struct {
	ConversationID string       `json:"conversation_id"`
	Query          string       `json:"query"`
	Attachments    []Attachment `json:"attachments,omitempty"`
}

// ComposeInput is everything the response composer may read for one turn.
type ComposeInput struct {
	Utterance string
	Intent    Intent
	Reports   []AttachmentReport
	Context   ConversationContext
	// Recent holds up to LookBackTurns prior non-system turns, oldest first.
	Recent []Turn
}

// HasPriorTurns reports whether the conversation had exchanges before this turn.
func (in ComposeInput) HasPriorTurns() bool {
	return len(in.Recent) > 0
}
