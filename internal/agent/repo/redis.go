package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
	errx "github.com/arudraviharbommana/intelli-nlp/internal/core/error"
	logx "github.com/arudraviharbommana/intelli-nlp/pkg/logger"
)

// RedisConversationRepository stores each conversation as two keys: a list of
// JSON encoded turns and a JSON encoded context. Both share one TTL that is
// refreshed on every write.
type RedisConversationRepository struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	prefix string
}

func NewRedisConversationRepository(rdb redis.Cmdable, ttl time.Duration, prefix string) *RedisConversationRepository {
	return &RedisConversationRepository{rdb: rdb, ttl: ttl, prefix: prefix}
}

func (r *RedisConversationRepository) key(conversationID, kind string) string {
	if r.prefix == "" {
		return fmt.Sprintf("conversation:%s:%s", conversationID, kind)
	}
	return fmt.Sprintf("%s:conversation:%s:%s", r.prefix, conversationID, kind)
}

func (r *RedisConversationRepository) turnsKey(conversationID string) string {
	return r.key(conversationID, "turns")
}

func (r *RedisConversationRepository) contextKey(conversationID string) string {
	return r.key(conversationID, "context")
}

func (r *RedisConversationRepository) touch(ctx context.Context, key string) error {
	if r.ttl <= 0 {
		return nil
	}
	ok, err := r.rdb.Expire(ctx, key, r.ttl).Result()
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
		return errx.WrapRedis(err)
	}
	if !ok {
		logx.Warn().Str("key", key).Dur("ttl", r.ttl).Msg("failed to set TTL on conversation key")
	}
	return nil
}

func (r *RedisConversationRepository) AddTurn(ctx context.Context, conversationID string, turn model.Turn) error {
	b, err := json.Marshal(turn)
	if err != nil {
		logx.Error().Err(err).Str("conversationID", conversationID).Msg("failed to marshal turn")
		return fmt.Errorf("marshal turn: %w", err)
	}
	key := r.turnsKey(conversationID)

	if err := r.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push turn to redis")
		return errx.WrapRedis(err)
	}
	return r.touch(ctx, key)
}

func (r *RedisConversationRepository) LoadHistory(ctx context.Context, conversationID string) (*model.ConversationHistory, error) {
	key := r.turnsKey(conversationID)

	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &model.ConversationHistory{ConversationID: conversationID, Turns: []model.Turn{}}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load conversation history from redis")
		return nil, errx.WrapRedis(err)
	}

	turns, err := decodeTurns(rows)
	if err != nil {
		logx.Error().Err(err).Str("conversationID", conversationID).Msg("failed to decode conversation history")
		return nil, err
	}
	return &model.ConversationHistory{ConversationID: conversationID, Turns: turns}, nil
}

func (r *RedisConversationRepository) SaveContext(ctx context.Context, conversationID string, cc model.ConversationContext) error {
	b, err := json.Marshal(cc)
	if err != nil {
		logx.Error().Err(err).Str("conversationID", conversationID).Msg("failed to marshal context")
		return fmt.Errorf("marshal context: %w", err)
	}
	key := r.contextKey(conversationID)

	if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to save context to redis")
		return errx.WrapRedis(err)
	}
	return r.touch(ctx, r.turnsKey(conversationID))
}

func (r *RedisConversationRepository) LoadContext(ctx context.Context, conversationID string) (model.ConversationContext, bool, error) {
	key := r.contextKey(conversationID)

	s, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.ConversationContext{}, false, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load context from redis")
		return model.ConversationContext{}, false, errx.WrapRedis(err)
	}

	cc, err := decodeContext(s)
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to decode context")
		return model.ConversationContext{}, false, err
	}
	return cc, true, nil
}

func (r *RedisConversationRepository) ClearHistory(ctx context.Context, conversationID string) error {
	turns, cc := r.turnsKey(conversationID), r.contextKey(conversationID)
	if err := r.rdb.Del(ctx, turns, cc).Err(); err != nil {
		logx.Error().Err(err).Str("key", turns).Msg("failed to delete conversation from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisConversationRepository) GetTurnCount(ctx context.Context, conversationID string) (int, error) {
	key := r.turnsKey(conversationID)
	n, err := r.rdb.LLen(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to get turn count from redis")
		return 0, errx.WrapRedis(err)
	}
	return int(n), nil
}

func decodeTurns(rows []string) ([]model.Turn, error) {
	turns := make([]model.Turn, 0, len(rows))
	for i, s := range rows {
		var t model.Turn
		if err := json.Unmarshal([]byte(s), &t); err != nil {
			return nil, fmt.Errorf("unmarshal turn at index %d: %w", i, err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

// decodeContext restores a context and fills the fields JSON leaves nil.
func decodeContext(s string) (model.ConversationContext, error) {
	var cc model.ConversationContext
	if err := json.Unmarshal([]byte(s), &cc); err != nil {
		return model.ConversationContext{}, fmt.Errorf("unmarshal context: %w", err)
	}
	return cc.Clone(), nil
}

var _ model.ConversationRepository = (*RedisConversationRepository)(nil)
