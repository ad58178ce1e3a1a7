package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/inventory-catalog-bot/internal/domain/entity"
	"github.com/yourusername/inventory-catalog-bot/internal/infrastructure/storage"
	"go.uber.org/zap"
)

type fakeAI struct {
	reply    string
	err      error
	lastText string
	history  []entity.Message
}

func (f *fakeAI) GenerateReply(ctx context.Context, userText string, history []entity.Message) (string, error) {
	f.lastText = userText
	f.history = history
	return f.reply, f.err
}

func newChat(ai *fakeAI, products []entity.Product) (ChatUseCase, *fakeAI) {
	catalog := storage.NewMemoryCatalogRepository()
	if products != nil {
		catalog.Replace(context.Background(), entity.Catalog{
			Products:  products,
			UpdatedAt: time.Now(),
			Source:    "test.xlsx",
		})
	}
	chats := storage.NewMemoryChatRepository(20)
	return NewChatUseCase(ai, chats, catalog, zap.NewNop()), ai
}

func TestProcessMessageEnrichesWithCatalog(t *testing.T) {
	uc, ai := newChat(&fakeAI{reply: "We have two drills in stock."}, []entity.Product{
		{ID: 1, ItemID: "DRL-1", Category: "Power Tools", Description: "Cordless drill"},
		{ID: 2, ItemID: "DRL-2", Category: "Power Tools"},
	})

	reply, err := uc.ProcessMessage(context.Background(), 42, "alice", "any drills?")
	require.NoError(t, err)
	assert.Equal(t, "We have two drills in stock.", reply)

	assert.Contains(t, ai.lastText, "any drills?")
	assert.Contains(t, ai.lastText, "CURRENT INVENTORY:")
	assert.Contains(t, ai.lastText, "DRL-1")
	assert.Contains(t, ai.lastText, "Power Tools:")
}

func TestProcessMessageEmptyCatalogSkipsEnrichment(t *testing.T) {
	uc, ai := newChat(&fakeAI{reply: "hello"}, nil)

	_, err := uc.ProcessMessage(context.Background(), 42, "alice", "hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", ai.lastText, "no inventory block when the store is empty")
}

func TestProcessMessageSurfacesRemoteErrorAsReply(t *testing.T) {
	remoteErr := errors.New("googleapi: Error 429: quota exceeded")
	uc, _ := newChat(&fakeAI{err: remoteErr}, nil)

	reply, err := uc.ProcessMessage(context.Background(), 42, "alice", "hi")
	require.NoError(t, err, "a remote failure is not an error to the caller")
	assert.Equal(t, remoteErr.Error(), reply, "the error text is the assistant reply")

	// The failed exchange is still part of the conversation.
	history, err := uc.GetHistory(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "hi", history[0].Text)
	assert.Equal(t, remoteErr.Error(), history[0].Response)
}

func TestProcessMessageSavesOriginalText(t *testing.T) {
	uc, _ := newChat(&fakeAI{reply: "sure"}, []entity.Product{
		{ID: 1, ItemID: "ITM-1", Category: "FAS"},
	})

	_, err := uc.ProcessMessage(context.Background(), 42, "alice", "what's cheap?")
	require.NoError(t, err)

	history, err := uc.GetHistory(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "what's cheap?", history[0].Text,
		"history keeps the user's words, not the enriched prompt")
	assert.Equal(t, "sure", history[0].Response)
	assert.Equal(t, "alice", history[0].Username)
	assert.NotEmpty(t, history[0].ID)
}

func TestProcessMessagePassesHistoryWindow(t *testing.T) {
	uc, ai := newChat(&fakeAI{reply: "ok"}, nil)

	for i := 0; i < 15; i++ {
		_, err := uc.ProcessMessage(context.Background(), 42, "alice", "ping")
		require.NoError(t, err)
	}

	assert.Len(t, ai.history, historyWindow,
		"each request carries at most the last %d exchanges", historyWindow)
}

func TestClearHistory(t *testing.T) {
	uc, _ := newChat(&fakeAI{reply: "ok"}, nil)

	_, err := uc.ProcessMessage(context.Background(), 42, "alice", "hi")
	require.NoError(t, err)
	require.NoError(t, uc.ClearHistory(context.Background(), 42))

	history, err := uc.GetHistory(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestHistoriesAreIsolatedPerUser(t *testing.T) {
	uc, _ := newChat(&fakeAI{reply: "ok"}, nil)

	_, err := uc.ProcessMessage(context.Background(), 1, "alice", "from alice")
	require.NoError(t, err)
	_, err = uc.ProcessMessage(context.Background(), 2, "bob", "from bob")
	require.NoError(t, err)

	history, err := uc.GetHistory(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "from alice", history[0].Text)
}
