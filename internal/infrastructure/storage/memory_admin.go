package storage

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/inventory-catalog-bot/internal/domain/entity"
	"github.com/yourusername/inventory-catalog-bot/internal/domain/repository"
)

// adminSessionTTL is the inactivity window after which a login lapses.
const adminSessionTTL = 24 * time.Hour

type memoryAdminRepository struct {
	mu       sync.RWMutex
	sessions map[int64]entity.AdminSession
	actions  []entity.AdminAction
}

// NewMemoryAdminRepository creates the in-memory admin session store.
func NewMemoryAdminRepository() repository.AdminRepository {
	return &memoryAdminRepository{
		sessions: make(map[int64]entity.AdminSession),
	}
}

// CreateSession registers a logged-in admin.
func (m *memoryAdminRepository) CreateSession(ctx context.Context, session entity.AdminSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session.LastActivity = time.Now()
	m.sessions[session.UserID] = session
	return nil
}

// DeleteSession logs the user out.
func (m *memoryAdminRepository) DeleteSession(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
	return nil
}

// IsAdmin reports whether the user holds a live admin session.
func (m *memoryAdminRepository) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[userID]
	if !exists {
		return false, nil
	}
	if time.Since(session.LastActivity) > adminSessionTTL {
		return false, nil
	}
	return session.IsAdmin, nil
}

// LogAction appends one audit entry.
func (m *memoryAdminRepository) LogAction(ctx context.Context, action entity.AdminAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.actions = append(m.actions, action)
	return nil
}
