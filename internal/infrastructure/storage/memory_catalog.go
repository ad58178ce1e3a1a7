package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/yourusername/inventory-catalog-bot/internal/domain/entity"
	"github.com/yourusername/inventory-catalog-bot/internal/domain/repository"
)

type memoryCatalogRepository struct {
	mu      sync.RWMutex
	catalog *entity.Catalog
}

// NewMemoryCatalogRepository creates the in-memory Catalog Store. It starts
// empty and lives for the process session only.
func NewMemoryCatalogRepository() repository.CatalogRepository {
	return &memoryCatalogRepository{}
}

// Replace swaps the whole catalog atomically, keeping ingestion order.
func (m *memoryCatalogRepository) Replace(ctx context.Context, catalog entity.Catalog) error {
	products := make([]entity.Product, len(catalog.Products))
	copy(products, catalog.Products)
	catalog.Products = products

	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalog = &catalog
	return nil
}

// GetAll returns a copy of the products in ingestion order.
func (m *memoryCatalogRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.catalog == nil {
		return nil, nil
	}
	products := make([]entity.Product, len(m.catalog.Products))
	copy(products, m.catalog.Products)
	return products, nil
}

// Count returns the number of products currently held.
func (m *memoryCatalogRepository) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.catalog == nil {
		return 0, nil
	}
	return len(m.catalog.Products), nil
}

// GetCatalog returns the catalog with its metadata.
func (m *memoryCatalogRepository) GetCatalog(ctx context.Context) (*entity.Catalog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.catalog == nil {
		return nil, fmt.Errorf("catalog not loaded")
	}
	products := make([]entity.Product, len(m.catalog.Products))
	copy(products, m.catalog.Products)
	return &entity.Catalog{
		Products:  products,
		UpdatedAt: m.catalog.UpdatedAt,
		Source:    m.catalog.Source,
	}, nil
}

// Clear drops the catalog entirely.
func (m *memoryCatalogRepository) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalog = nil
	return nil
}
