package repository

import (
	"context"

	"github.com/yourusername/inventory-catalog-bot/internal/domain/entity"
)

// AdminRepository manages upload-permission sessions and the action audit log.
type AdminRepository interface {
	CreateSession(ctx context.Context, session entity.AdminSession) error
	DeleteSession(ctx context.Context, userID int64) error
	IsAdmin(ctx context.Context, userID int64) (bool, error)
	LogAction(ctx context.Context, action entity.AdminAction) error
}
