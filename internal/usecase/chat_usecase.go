package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/inventory-catalog-bot/internal/domain/entity"
	"github.com/yourusername/inventory-catalog-bot/internal/domain/repository"
	"go.uber.org/zap"
)

// chatTimeout bounds each remote completion request.
const chatTimeout = 20 * time.Second

// historyWindow is how many prior exchanges accompany each request.
const historyWindow = 10

// ChatUseCase drives the assistant conversation over the catalog.
type ChatUseCase interface {
	// ProcessMessage answers one user message. A remote failure does not
	// return an error: its message text becomes the assistant reply, surfaced
	// inline in the conversation.
	ProcessMessage(ctx context.Context, userID int64, username, text string) (string, error)

	// ClearHistory drops the user's conversation.
	ClearHistory(ctx context.Context, userID int64) error

	// GetHistory returns the user's retained conversation, oldest first.
	GetHistory(ctx context.Context, userID int64) ([]entity.Message, error)
}

type chatUseCase struct {
	ai      repository.AIRepository
	chats   repository.ChatRepository
	catalog repository.CatalogRepository
	logger  *zap.Logger
}

// NewChatUseCase creates the chat flow.
func NewChatUseCase(
	ai repository.AIRepository,
	chats repository.ChatRepository,
	catalog repository.CatalogRepository,
	logger *zap.Logger,
) ChatUseCase {
	return &chatUseCase{ai: ai, chats: chats, catalog: catalog, logger: logger}
}

// ProcessMessage answers one user message.
func (u *chatUseCase) ProcessMessage(ctx context.Context, userID int64, username, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	history, err := u.chats.GetHistory(ctx, userID, historyWindow)
	if err != nil {
		return "", fmt.Errorf("failed to get history: %w", err)
	}

	enriched := text
	if products, err := u.catalog.GetAll(ctx); err == nil && len(products) > 0 {
		enriched = fmt.Sprintf("Customer: %s\n\nCURRENT INVENTORY:\n%s\nAnswer using only the items listed above.",
			text, buildCatalogContext(products))
	}

	reply, err := u.ai.GenerateReply(ctx, enriched, history)
	if err != nil {
		// The remote error text is the assistant's reply; catalog state is
		// unaffected and the conversation continues.
		u.logger.Warn("assistant request failed",
			zap.Int64("user_id", userID),
			zap.Error(err))
		reply = err.Error()
	}

	message := entity.Message{
		ID:        uuid.New().String(),
		UserID:    userID,
		Username:  username,
		Text:      text, // the original text, not the enriched prompt
		Response:  reply,
		Timestamp: time.Now(),
	}
	if err := u.chats.SaveMessage(ctx, message); err != nil {
		return "", fmt.Errorf("failed to save message: %w", err)
	}

	return reply, nil
}

// buildCatalogContext renders the store grouped by category for the prompt.
func buildCatalogContext(products []entity.Product) string {
	byCategory := make(map[string][]entity.Product)
	var order []string
	for _, p := range products {
		category := p.Category
		if category == "" {
			category = entity.UncategorizedSentinel
		}
		if _, ok := byCategory[category]; !ok {
			order = append(order, category)
		}
		byCategory[category] = append(byCategory[category], p)
	}

	var sb strings.Builder
	for _, category := range order {
		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, p := range byCategory[category] {
			sb.WriteString(fmt.Sprintf("  - %s", p.ItemID))
			if p.Description != "" {
				sb.WriteString(fmt.Sprintf(" %s", p.Description))
			}
			if p.Cost != nil {
				sb.WriteString(fmt.Sprintf(" - $%.2f", *p.Cost))
			}
			if p.QtyOnHand != nil {
				sb.WriteString(fmt.Sprintf(" (on hand: %.0f)", *p.QtyOnHand))
			}
			if p.Vendor != "" {
				sb.WriteString(fmt.Sprintf(" [%s]", p.Vendor))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// ClearHistory drops the user's conversation.
func (u *chatUseCase) ClearHistory(ctx context.Context, userID int64) error {
	return u.chats.ClearHistory(ctx, userID)
}

// GetHistory returns the user's retained conversation.
func (u *chatUseCase) GetHistory(ctx context.Context, userID int64) ([]entity.Message, error) {
	return u.chats.GetHistory(ctx, userID, 0)
}
