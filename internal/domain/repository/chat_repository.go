package repository

import (
	"context"

	"github.com/yourusername/inventory-catalog-bot/internal/domain/entity"
)

// ChatRepository stores per-user conversation history.
type ChatRepository interface {
	// SaveMessage appends one exchange, trimming the user's window to the
	// configured maximum.
	SaveMessage(ctx context.Context, message entity.Message) error

	// GetHistory returns the user's most recent messages, oldest first.
	// limit <= 0 returns everything retained.
	GetHistory(ctx context.Context, userID int64, limit int) ([]entity.Message, error)

	// ClearHistory drops one user's history.
	ClearHistory(ctx context.Context, userID int64) error

	// ClearAll drops every user's history.
	ClearAll(ctx context.Context) error
}
