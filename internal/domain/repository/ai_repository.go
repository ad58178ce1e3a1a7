package repository

import (
	"context"

	"github.com/yourusername/inventory-catalog-bot/internal/domain/entity"
)

// AIRepository is the remote completion endpoint: given the conversation
// history and the (possibly context-enriched) user text, it returns one
// assistant message string or an error.
type AIRepository interface {
	GenerateReply(ctx context.Context, userText string, history []entity.Message) (string, error)
}
