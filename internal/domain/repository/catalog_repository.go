package repository

import (
	"context"

	"github.com/yourusername/inventory-catalog-bot/internal/domain/entity"
)

// CatalogRepository holds the session's Catalog Store: the ordered products of
// the most recent successful ingestion.
type CatalogRepository interface {
	// Replace swaps the whole catalog atomically. There is no partial update.
	Replace(ctx context.Context, catalog entity.Catalog) error

	// GetAll returns all products in ingestion order.
	GetAll(ctx context.Context) ([]entity.Product, error)

	// Count returns the number of products currently held.
	Count(ctx context.Context) (int, error)

	// GetCatalog returns the catalog with its metadata, or an error when no
	// ingestion has succeeded yet.
	GetCatalog(ctx context.Context) (*entity.Catalog, error)

	// Clear drops the catalog entirely.
	Clear(ctx context.Context) error
}
