package engine

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/graph"
	"github.com/arudraviharbommana/intelli-nlp/internal/agent/graph/conversations"
	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
	errx "github.com/arudraviharbommana/intelli-nlp/internal/core/error"
)

// Sessions hands out one Engine per conversation id. All engines share the
// compiled graph and the repository; History and Context stay isolated by id.
type Sessions struct {
	runner   graph.Runner
	mm       *conversations.MessagesManager
	delay    time.Duration
	fallback func() string

	mu      sync.Mutex
	engines map[string]*Engine
}

func NewSessions(ctx context.Context, repo model.ConversationRepository, cfg model.EngineConfig, opts ...Option) (*Sessions, error) {
	o := options{fallback: randomFallback}
	for _, opt := range opts {
		opt(&o)
	}

	runner, mm, err := graph.BuildResponseGraph(ctx, graph.Config{
		Engine:           cfg,
		ConversationRepo: repo,
		ComposerOptions:  o.composer,
	})
	if err != nil {
		return nil, err
	}

	return &Sessions{
		runner:   runner,
		mm:       mm,
		delay:    cfg.ResponseDelay,
		fallback: o.fallback,
		engines:  make(map[string]*Engine),
	}, nil
}

// Get returns the engine for conversationID, starting the conversation when
// it has no stored History yet.
func (s *Sessions) Get(ctx context.Context, conversationID string) (*Engine, error) {
	if conversationID == "" {
		return nil, errx.Invalid("conversation id is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.engines[conversationID]; ok {
		return e, nil
	}

	if err := s.mm.Start(ctx, conversationID); err != nil {
		return nil, err
	}
	e := &Engine{
		conversationID: conversationID,
		runner:         s.runner,
		mm:             s.mm,
		delay:          s.delay,
		fallback:       s.fallback,
	}
	s.engines[conversationID] = e
	return e, nil
}

// Drop forgets the engine for conversationID. Stored History is kept.
func (s *Sessions) Drop(conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.engines, conversationID)
}

// IDs lists the conversations with a live engine, sorted.
func (s *Sessions) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.engines))
	for id := range s.engines {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
