package model

import (
	"context"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
)

// Turn is one immutable message in a conversation.
type Turn struct {
	ID          string          `json:"id"`
	Role        schema.RoleType `json:"role"`
	Content     string          `json:"content"`
	Attachments []Attachment    `json:"attachments,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewTurn creates a turn stamped with a fresh id and the current time.
// The attachment slice is copied so the caller cannot mutate the turn later.
func NewTurn(role schema.RoleType, content string, attachments []Attachment) Turn {
	var atts []Attachment
	if len(attachments) > 0 {
		atts = make([]Attachment, len(attachments))
		copy(atts, attachments)
	}
	return Turn{
		ID:          uuid.NewString(),
		Role:        role,
		Content:     content,
		Attachments: atts,
		CreatedAt:   time.Now().UTC(),
	}
}

// Clone returns a deep copy of the turn.
func (t Turn) Clone() Turn {
	c := t
	if len(t.Attachments) > 0 {
		c.Attachments = make([]Attachment, len(t.Attachments))
		copy(c.Attachments, t.Attachments)
	}
	return c
}

type ConversationRepository interface {
	// AddTurn appends a turn to the conversation history
	AddTurn(ctx context.Context, conversationID string, turn Turn) error

	// LoadHistory retrieves the conversation history for a conversation
	LoadHistory(ctx context.Context, conversationID string) (*ConversationHistory, error)

	// SaveContext replaces the stored conversation context
	SaveContext(ctx context.Context, conversationID string, c ConversationContext) error

	// LoadContext returns the stored context, or ok=false when none exists
	LoadContext(ctx context.Context, conversationID string) (c ConversationContext, ok bool, err error)

	// ClearHistory removes the history and context for a conversation
	ClearHistory(ctx context.Context, conversationID string) error

	// GetTurnCount returns the number of turns in the conversation
	GetTurnCount(ctx context.Context, conversationID string) (int, error)
}

// ConversationHistory represents loaded conversation data with metadata.
type ConversationHistory struct {
	ConversationID string
	Turns          []Turn
}
