package model

import "sort"

// MaxTopics caps ConversationContext.Topics; the oldest topic is evicted first.
const MaxTopics = 10

// LookBackTurns is how many recent non-system turns the composer may consult.
const LookBackTurns = 4

// Tone is the inferred conversational register of the latest utterance.
type Tone string

const (
	ToneFormal    Tone = "formal"
	ToneCasual    Tone = "casual"
	ToneTechnical Tone = "technical"
	ToneFriendly  Tone = "friendly"
)

// ConversationContext is the mutable per-conversation state carried across turns.
type ConversationContext struct {
	Topics                   []string          `json:"topics"`
	Tone                     Tone              `json:"tone"`
	PreviousQuestions        []string          `json:"previous_questions"`
	AttachmentCategoriesSeen map[Category]bool `json:"attachment_categories_seen"`
}

// NewConversationContext returns the default context of a fresh conversation.
func NewConversationContext() ConversationContext {
	return ConversationContext{
		Topics:                   []string{},
		Tone:                     ToneFriendly,
		PreviousQuestions:        []string{},
		AttachmentCategoriesSeen: map[Category]bool{},
	}
}

// Clone returns a deep copy so callers can never mutate stored state.
func (c ConversationContext) Clone() ConversationContext {
	out := ConversationContext{
		Topics:                   append([]string{}, c.Topics...),
		Tone:                     c.Tone,
		PreviousQuestions:        append([]string{}, c.PreviousQuestions...),
		AttachmentCategoriesSeen: make(map[Category]bool, len(c.AttachmentCategoriesSeen)),
	}
	if out.Tone == "" {
		out.Tone = ToneFriendly
	}
	for k, v := range c.AttachmentCategoriesSeen {
		if v {
			out.AttachmentCategoriesSeen[k] = true
		}
	}
	return out
}

// HasTopic reports whether topic is already tracked.
func (c ConversationContext) HasTopic(topic string) bool {
	for _, t := range c.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// Categories returns the seen categories in sorted order.
func (c ConversationContext) Categories() []Category {
	out := make([]Category, 0, len(c.AttachmentCategoriesSeen))
	for k, v := range c.AttachmentCategoriesSeen {
		if v {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
