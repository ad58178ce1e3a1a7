package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/inventory-catalog-bot/internal/domain/entity"
	"github.com/yourusername/inventory-catalog-bot/internal/domain/repository"
)

// AdminUseCase gates catalog uploads and destructive operations behind a
// password login, and keeps an audit trail of admin actions.
type AdminUseCase interface {
	// Login validates the password and opens a session. A wrong password is
	// (false, nil), not an error.
	Login(ctx context.Context, userID int64, password string) (bool, error)

	// Logout closes the session.
	Logout(ctx context.Context, userID int64) error

	// IsAdmin reports whether the user holds a live session.
	IsAdmin(ctx context.Context, userID int64) (bool, error)

	// RecordUpload audits a completed catalog upload.
	RecordUpload(ctx context.Context, userID int64, filename string, loaded int) error

	// CatalogInfo renders a human-readable summary of the current catalog.
	CatalogInfo(ctx context.Context) (string, error)

	// CleanAll wipes the catalog and every conversation.
	CleanAll(ctx context.Context, userID int64) error
}

type adminUseCase struct {
	password string
	admins   repository.AdminRepository
	catalog  repository.CatalogRepository
	chats    repository.ChatRepository
}

// NewAdminUseCase creates the admin flow. The password comes from config, not
// a compile-time constant.
func NewAdminUseCase(
	password string,
	admins repository.AdminRepository,
	catalog repository.CatalogRepository,
	chats repository.ChatRepository,
) AdminUseCase {
	return &adminUseCase{
		password: password,
		admins:   admins,
		catalog:  catalog,
		chats:    chats,
	}
}

// Login validates the password and opens a session.
func (u *adminUseCase) Login(ctx context.Context, userID int64, password string) (bool, error) {
	if password != u.password {
		return false, nil
	}

	session := entity.AdminSession{
		UserID:       userID,
		IsAdmin:      true,
		LoginTime:    time.Now(),
		LastActivity: time.Now(),
	}
	if err := u.admins.CreateSession(ctx, session); err != nil {
		return false, fmt.Errorf("failed to create session: %w", err)
	}

	u.logAction(ctx, userID, "login", "admin logged in")
	return true, nil
}

// Logout closes the session.
func (u *adminUseCase) Logout(ctx context.Context, userID int64) error {
	return u.admins.DeleteSession(ctx, userID)
}

// IsAdmin reports whether the user holds a live session.
func (u *adminUseCase) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return u.admins.IsAdmin(ctx, userID)
}

// RecordUpload audits a completed catalog upload.
func (u *adminUseCase) RecordUpload(ctx context.Context, userID int64, filename string, loaded int) error {
	u.logAction(ctx, userID, "upload_catalog",
		fmt.Sprintf("loaded %d products from %s", loaded, filename))
	return nil
}

// CatalogInfo renders a human-readable summary of the current catalog.
func (u *adminUseCase) CatalogInfo(ctx context.Context) (string, error) {
	catalog, err := u.catalog.GetCatalog(ctx)
	if err != nil {
		return "", err
	}

	perCategory := make(map[string]int)
	var order []string
	for _, p := range catalog.Products {
		if _, ok := perCategory[p.Category]; !ok {
			order = append(order, p.Category)
		}
		perCategory[p.Category]++
	}

	info := fmt.Sprintf("Catalog: %s\n", catalog.Source)
	info += fmt.Sprintf("Updated: %s\n", catalog.UpdatedAt.Format("2006-01-02 15:04"))
	info += fmt.Sprintf("Items: %d\n\nCategories:\n", len(catalog.Products))
	for _, category := range order {
		info += fmt.Sprintf("  - %s: %d\n", category, perCategory[category])
	}

	return info, nil
}

// CleanAll wipes the catalog and every conversation.
func (u *adminUseCase) CleanAll(ctx context.Context, userID int64) error {
	isAdmin, err := u.admins.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return fmt.Errorf("user is not admin")
	}

	if err := u.catalog.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}
	if err := u.chats.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear chats: %w", err)
	}

	u.logAction(ctx, userID, "clean_all", "cleared catalog and chat histories")
	return nil
}

func (u *adminUseCase) logAction(ctx context.Context, userID int64, action, details string) {
	_ = u.admins.LogAction(ctx, entity.AdminAction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
	})
}
