package conversations

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
	errx "github.com/arudraviharbommana/intelli-nlp/internal/core/error"
)

// MessagesManager owns History and Context for conversations stored in a
// ConversationRepository.
type MessagesManager struct {
	conversationRepo model.ConversationRepository
	systemPrompt     string
	lookBack         int
}

func NewMessagesManager(conversationRepo model.ConversationRepository, config model.EngineConfig) *MessagesManager {
	return &MessagesManager{
		conversationRepo: conversationRepo,
		systemPrompt:     config.SystemPrompt,
		lookBack:         model.LookBackTurns,
	}
}

// Start seeds an empty conversation with the system turn and a default
// context. It is a no-op for conversations that already have turns.
func (cm *MessagesManager) Start(ctx context.Context, conversationID string) error {
	if conversationID == "" {
		return errx.Invalid("conversation id is empty")
	}
	n, err := cm.conversationRepo.GetTurnCount(ctx, conversationID)
	if err != nil {
		return errx.WrapStore("count turns", err)
	}
	if n > 0 {
		return nil
	}
	if err := cm.conversationRepo.AddTurn(ctx, conversationID, model.NewTurn(schema.System, cm.systemPrompt, nil)); err != nil {
		return errx.WrapStore("add system turn", err)
	}
	if err := cm.conversationRepo.SaveContext(ctx, conversationID, model.NewConversationContext()); err != nil {
		return errx.WrapStore("save context", err)
	}
	return nil
}

// Reset discards History and Context and starts the conversation over.
func (cm *MessagesManager) Reset(ctx context.Context, conversationID string) error {
	if err := cm.conversationRepo.ClearHistory(ctx, conversationID); err != nil {
		return errx.WrapStore("clear history", err)
	}
	return cm.Start(ctx, conversationID)
}

// =========== Turns ===========

func (cm *MessagesManager) RecordUserTurn(ctx context.Context, conversationID, utterance string, attachments []model.Attachment) (model.Turn, error) {
	turn := model.NewTurn(schema.User, utterance, attachments)
	if err := cm.conversationRepo.AddTurn(ctx, conversationID, turn); err != nil {
		return model.Turn{}, errx.WrapStore("add user turn", err)
	}
	return turn, nil
}

func (cm *MessagesManager) RecordAssistantTurn(ctx context.Context, conversationID, reply string) (model.Turn, error) {
	turn := model.NewTurn(schema.Assistant, reply, nil)
	if err := cm.conversationRepo.AddTurn(ctx, conversationID, turn); err != nil {
		return model.Turn{}, errx.WrapStore("add assistant turn", err)
	}
	return turn, nil
}

func (cm *MessagesManager) TurnCount(ctx context.Context, conversationID string) (int, error) {
	n, err := cm.conversationRepo.GetTurnCount(ctx, conversationID)
	if err != nil {
		return 0, errx.WrapStore("count turns", err)
	}
	return n, nil
}

// History returns every turn in order, the system turn first.
func (cm *MessagesManager) History(ctx context.Context, conversationID string) ([]model.Turn, error) {
	history, err := cm.conversationRepo.LoadHistory(ctx, conversationID)
	if err != nil {
		return nil, errx.WrapStore("load history", err)
	}
	return history.Turns, nil
}

// RecentTurns returns up to the look-back window of non-system turns that
// precede the latest turn, oldest first. The latest turn is the one being
// answered, so it is left out.
func (cm *MessagesManager) RecentTurns(ctx context.Context, conversationID string) ([]model.Turn, error) {
	turns, err := cm.History(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	prior := make([]model.Turn, 0, len(turns))
	for _, t := range turns {
		if t.Role != schema.System {
			prior = append(prior, t)
		}
	}
	if len(prior) > 0 {
		prior = prior[:len(prior)-1]
	}
	return trimTail(prior, cm.lookBack), nil
}

// =========== Context ===========

// LoadContext returns the stored context, or the default one when the
// conversation has none yet.
func (cm *MessagesManager) LoadContext(ctx context.Context, conversationID string) (model.ConversationContext, error) {
	c, ok, err := cm.conversationRepo.LoadContext(ctx, conversationID)
	if err != nil {
		return model.ConversationContext{}, errx.WrapStore("load context", err)
	}
	if !ok {
		return model.NewConversationContext(), nil
	}
	return c, nil
}

func (cm *MessagesManager) SaveContext(ctx context.Context, conversationID string, c model.ConversationContext) error {
	if err := cm.conversationRepo.SaveContext(ctx, conversationID, c); err != nil {
		return errx.WrapStore("save context", err)
	}
	return nil
}

// ====================== Helper function ======================
func trimTail(turns []model.Turn, maxTurns int) []model.Turn {
	if maxTurns < 0 {
		maxTurns = 0
	}
	source := turns
	if len(turns) > maxTurns {
		source = turns[len(turns)-maxTurns:]
	}
	result := make([]model.Turn, len(source))
	copy(result, source)
	return result
}
