package repo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
	rdb "github.com/arudraviharbommana/intelli-nlp/pkg/redis"
)

func TestRedisKeys(t *testing.T) {
	r := NewRedisConversationRepository(nil, time.Hour, "intelli-nlp")
	assert.Equal(t, "intelli-nlp:conversation:abc:turns", r.turnsKey("abc"))
	assert.Equal(t, "intelli-nlp:conversation:abc:context", r.contextKey("abc"))

	bare := NewRedisConversationRepository(nil, 0, "")
	assert.Equal(t, "conversation:abc:turns", bare.turnsKey("abc"))
}

func TestDecodeContext_FillsDefaults(t *testing.T) {
	cc, err := decodeContext(`{"topics":["go"],"tone":"","previous_questions":null}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, cc.Topics)
	assert.Equal(t, model.ToneFriendly, cc.Tone)
	assert.NotNil(t, cc.PreviousQuestions)
	assert.NotNil(t, cc.AttachmentCategoriesSeen)

	_, err = decodeContext("{not json")
	assert.Error(t, err)
}

func TestDecodeTurns_ReportsIndex(t *testing.T) {
	_, err := decodeTurns([]string{`{"role":"user","content":"hi"}`, "garbage"})
	assert.ErrorContains(t, err, "index 1")
}

// TestRedisRoundTrip needs a reachable server; set REDIS_URL to run it.
func TestRedisRoundTrip(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := rdb.Config{URL: url, ReadTimeout: 3, WriteTimeout: 3, DialTimeout: 5}
	client, err := cfg.New(ctx)
	require.NoError(t, err)
	defer client.Close()

	r := NewRedisConversationRepository(client, time.Minute, "intelli-nlp-test")
	id := uuid.NewString()
	defer r.ClearHistory(ctx, id)

	require.NoError(t, r.AddTurn(ctx, id, model.NewTurn(schema.System, "sys", nil)))
	require.NoError(t, r.AddTurn(ctx, id, model.NewTurn(schema.User, "hi", nil)))

	n, err := r.GetTurnCount(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	h, err := r.LoadHistory(ctx, id)
	require.NoError(t, err)
	require.Len(t, h.Turns, 2)
	assert.Equal(t, schema.User, h.Turns[1].Role)

	_, ok, err := r.LoadContext(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)

	cc := model.NewConversationContext()
	cc.Topics = append(cc.Topics, "redis")
	cc.AttachmentCategoriesSeen[model.CategoryCode] = true
	require.NoError(t, r.SaveContext(ctx, id, cc))

	got, ok, err := r.LoadContext(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, cc, got)

	require.NoError(t, r.ClearHistory(ctx, id))
	n, err = r.GetTurnCount(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, n)
}
