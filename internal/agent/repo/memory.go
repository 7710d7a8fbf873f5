package repo

import (
	"context"
	"sync"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
)

type memoryConversation struct {
	turns      []model.Turn
	context    model.ConversationContext
	hasContext bool
}

// MemoryConversationRepository keeps conversations in process memory.
// Stored values are copied on the way in and out, so callers only ever see
// snapshots.
type MemoryConversationRepository struct {
	mu            sync.RWMutex
	conversations map[string]*memoryConversation
}

func NewMemoryConversationRepository() *MemoryConversationRepository {
	return &MemoryConversationRepository{conversations: make(map[string]*memoryConversation)}
}

func (r *MemoryConversationRepository) get(conversationID string) *memoryConversation {
	c, ok := r.conversations[conversationID]
	if !ok {
		c = &memoryConversation{}
		r.conversations[conversationID] = c
	}
	return c
}

func (r *MemoryConversationRepository) AddTurn(_ context.Context, conversationID string, turn model.Turn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.get(conversationID)
	c.turns = append(c.turns, turn.Clone())
	return nil
}

func (r *MemoryConversationRepository) LoadHistory(_ context.Context, conversationID string) (*model.ConversationHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	turns := []model.Turn{}
	if c, ok := r.conversations[conversationID]; ok {
		turns = make([]model.Turn, 0, len(c.turns))
		for _, t := range c.turns {
			turns = append(turns, t.Clone())
		}
	}
	return &model.ConversationHistory{ConversationID: conversationID, Turns: turns}, nil
}

func (r *MemoryConversationRepository) SaveContext(_ context.Context, conversationID string, cc model.ConversationContext) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.get(conversationID)
	c.context = cc.Clone()
	c.hasContext = true
	return nil
}

func (r *MemoryConversationRepository) LoadContext(_ context.Context, conversationID string) (model.ConversationContext, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conversations[conversationID]
	if !ok || !c.hasContext {
		return model.ConversationContext{}, false, nil
	}
	return c.context.Clone(), true, nil
}

func (r *MemoryConversationRepository) ClearHistory(_ context.Context, conversationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conversations, conversationID)
	return nil
}

func (r *MemoryConversationRepository) GetTurnCount(_ context.Context, conversationID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.conversations[conversationID]; ok {
		return len(c.turns), nil
	}
	return 0, nil
}

var _ model.ConversationRepository = (*MemoryConversationRepository)(nil)
