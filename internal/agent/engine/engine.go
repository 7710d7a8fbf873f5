package engine

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/composer"
	"github.com/arudraviharbommana/intelli-nlp/internal/agent/graph"
	"github.com/arudraviharbommana/intelli-nlp/internal/agent/graph/conversations"
	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
	errx "github.com/arudraviharbommana/intelli-nlp/internal/core/error"
	logx "github.com/arudraviharbommana/intelli-nlp/pkg/logger"
)

// Engine answers the turns of a single conversation. Turns are processed one
// at a time; concurrent callers are serialized.
type Engine struct {
	conversationID string
	runner         graph.Runner
	mm             *conversations.MessagesManager
	delay          time.Duration
	fallback       func() string

	mu sync.Mutex
}

// Option configures the engines created by NewSessions or New.
type Option func(*options)

type options struct {
	composer []composer.Option
	fallback func() string
}

// WithComposerOptions forwards options to the response composer.
func WithComposerOptions(opts ...composer.Option) Option {
	return func(o *options) { o.composer = append(o.composer, opts...) }
}

// WithFallback replaces the picker for apologetic fallback replies.
func WithFallback(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.fallback = fn
		}
	}
}

func randomFallback() string {
	return composer.Fallbacks[rand.IntN(len(composer.Fallbacks))]
}

// New builds a standalone engine for one conversation over repo.
func New(ctx context.Context, conversationID string, repo model.ConversationRepository, cfg model.EngineConfig, opts ...Option) (*Engine, error) {
	s, err := NewSessions(ctx, repo, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, conversationID)
}

func (e *Engine) ConversationID() string {
	return e.conversationID
}

// ProcessMessage runs one full turn and returns the reply. It never fails:
// any error or panic along the way yields a fallback reply, and History
// still ends up with the user turn followed by that fallback.
func (e *Engine) ProcessMessage(ctx context.Context, utterance string, attachments []model.Attachment) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	log := logx.Conversation(e.conversationID)
	before, countErr := e.mm.TurnCount(ctx, e.conversationID)

	reply, err := e.invoke(ctx, utterance, attachments)
	if err == nil {
		if werr := wait(ctx, e.delay); werr != nil {
			log.Debug().Err(werr).Msg("response delay interrupted")
		}
		return reply
	}

	log.Error().Err(err).Int("status", errx.StatusOf(err)).Msg("turn failed, replying with fallback")
	reply = e.fallback()
	e.recordFallback(ctx, before, countErr, utterance, attachments, reply)
	return reply
}

func (e *Engine) invoke(ctx context.Context, utterance string, attachments []model.Attachment) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errx.Recover(r)
		}
	}()
	return e.runner.Invoke(ctx, model.QueryInput{
		ConversationID: e.conversationID,
		Query:          utterance,
		Attachments:    attachments,
	})
}

// recordFallback makes sure the failed turn is in History. The user turn is
// only added when the graph did not get to record it.
func (e *Engine) recordFallback(ctx context.Context, before int, countErr error, utterance string, attachments []model.Attachment, reply string) {
	log := logx.Conversation(e.conversationID)

	userRecorded := false
	if countErr == nil {
		if after, err := e.mm.TurnCount(ctx, e.conversationID); err == nil {
			userRecorded = after > before
		}
	}
	if !userRecorded {
		if _, err := e.mm.RecordUserTurn(ctx, e.conversationID, utterance, attachments); err != nil {
			log.Error().Err(err).Msg("failed to record user turn after failure")
		}
	}
	if _, err := e.mm.RecordAssistantTurn(ctx, e.conversationID, reply); err != nil {
		log.Error().Err(err).Msg("failed to record fallback reply")
	}
}

// ClearHistory resets History to the system turn and Context to its default.
func (e *Engine) ClearHistory(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.mm.Reset(ctx, e.conversationID); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	log := logx.Conversation(e.conversationID)
	log.Info().Msg("conversation cleared")
	return nil
}

// GetHistory returns a snapshot of every turn, system turn first.
func (e *Engine) GetHistory(ctx context.Context) ([]model.Turn, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mm.History(ctx, e.conversationID)
}

// GetContext returns a snapshot of the conversation context.
func (e *Engine) GetContext(ctx context.Context) (model.ConversationContext, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, err := e.mm.LoadContext(ctx, e.conversationID)
	if err != nil {
		return model.ConversationContext{}, err
	}
	return c.Clone(), nil
}

// wait pauses for d unless ctx ends first.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
