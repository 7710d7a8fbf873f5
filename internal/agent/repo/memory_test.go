package repo

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
)

func TestMemory_TurnsRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryConversationRepository()

	n, err := r.GetTurnCount(ctx, "c1")
	require.NoError(t, err)
	assert.Zero(t, n)

	h, err := r.LoadHistory(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", h.ConversationID)
	assert.NotNil(t, h.Turns)
	assert.Empty(t, h.Turns)

	require.NoError(t, r.AddTurn(ctx, "c1", model.NewTurn(schema.System, "sys", nil)))
	require.NoError(t, r.AddTurn(ctx, "c1", model.NewTurn(schema.User, "hi", nil)))

	h, err = r.LoadHistory(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, h.Turns, 2)
	assert.Equal(t, schema.System, h.Turns[0].Role)
	assert.Equal(t, "hi", h.Turns[1].Content)

	n, err = r.GetTurnCount(ctx, "c2")
	require.NoError(t, err)
	assert.Zero(t, n, "conversations are isolated")
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryConversationRepository()

	att := model.NewAttachment("a.txt", model.CategoryText, 3, "abc")
	require.NoError(t, r.AddTurn(ctx, "c1", model.NewTurn(schema.User, "see file", []model.Attachment{att})))

	h, err := r.LoadHistory(ctx, "c1")
	require.NoError(t, err)
	h.Turns[0].Content = "mutated"
	h.Turns[0].Attachments[0].Name = "mutated"

	h, err = r.LoadHistory(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "see file", h.Turns[0].Content)
	assert.Equal(t, "a.txt", h.Turns[0].Attachments[0].Name)

	cc := model.NewConversationContext()
	cc.Topics = append(cc.Topics, "golang")
	require.NoError(t, r.SaveContext(ctx, "c1", cc))
	cc.Topics[0] = "mutated"

	got, ok, err := r.LoadContext(ctx, "c1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"golang"}, got.Topics)
}

func TestMemory_Clear(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryConversationRepository()

	require.NoError(t, r.AddTurn(ctx, "c1", model.NewTurn(schema.User, "hi", nil)))
	require.NoError(t, r.SaveContext(ctx, "c1", model.NewConversationContext()))
	require.NoError(t, r.ClearHistory(ctx, "c1"))

	n, err := r.GetTurnCount(ctx, "c1")
	require.NoError(t, err)
	assert.Zero(t, n)

	_, ok, err := r.LoadContext(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_ConcurrentConversations(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryConversationRepository()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_ = r.AddTurn(ctx, id, model.NewTurn(schema.User, "msg", nil))
			}
		}(fmt.Sprintf("c%d", i))
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		n, err := r.GetTurnCount(ctx, fmt.Sprintf("c%d", i))
		require.NoError(t, err)
		assert.Equal(t, 25, n)
	}
}
