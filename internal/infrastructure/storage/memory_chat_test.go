package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/inventory-catalog-bot/internal/domain/entity"
)

func saveN(t *testing.T, repo interface {
	SaveMessage(ctx context.Context, message entity.Message) error
}, userID int64, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, repo.SaveMessage(context.Background(), entity.Message{
			ID:        fmt.Sprintf("msg-%d", i),
			UserID:    userID,
			Text:      fmt.Sprintf("text %d", i),
			Timestamp: time.Now(),
		}))
	}
}

func TestMemoryChatWindowTrim(t *testing.T) {
	repo := NewMemoryChatRepository(5)
	saveN(t, repo, 42, 8)

	history, err := repo.GetHistory(context.Background(), 42, 0)
	require.NoError(t, err)
	require.Len(t, history, 5, "only the newest maxContextSize messages survive")
	assert.Equal(t, "text 3", history[0].Text)
	assert.Equal(t, "text 7", history[4].Text)
}

func TestMemoryChatHistoryLimit(t *testing.T) {
	repo := NewMemoryChatRepository(20)
	saveN(t, repo, 42, 6)

	history, err := repo.GetHistory(context.Background(), 42, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "text 4", history[0].Text, "limit keeps the newest, oldest first")
	assert.Equal(t, "text 5", history[1].Text)
}

func TestMemoryChatClear(t *testing.T) {
	repo := NewMemoryChatRepository(20)
	saveN(t, repo, 1, 2)
	saveN(t, repo, 2, 2)

	require.NoError(t, repo.ClearHistory(context.Background(), 1))
	h1, _ := repo.GetHistory(context.Background(), 1, 0)
	h2, _ := repo.GetHistory(context.Background(), 2, 0)
	assert.Empty(t, h1)
	assert.Len(t, h2, 2)

	require.NoError(t, repo.ClearAll(context.Background()))
	h2, _ = repo.GetHistory(context.Background(), 2, 0)
	assert.Empty(t, h2)
}
