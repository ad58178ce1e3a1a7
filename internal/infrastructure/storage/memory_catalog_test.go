package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/inventory-catalog-bot/internal/domain/entity"
)

func TestMemoryCatalogStartsEmpty(t *testing.T) {
	repo := NewMemoryCatalogRepository()

	products, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = repo.GetCatalog(context.Background())
	assert.Error(t, err, "metadata is unavailable before the first upload")
}

func TestMemoryCatalogReplaceAndOrder(t *testing.T) {
	repo := NewMemoryCatalogRepository()

	err := repo.Replace(context.Background(), entity.Catalog{
		Products:  []entity.Product{{ID: 1}, {ID: 2}, {ID: 3}},
		UpdatedAt: time.Now(),
		Source:    "inv.xlsx",
	})
	require.NoError(t, err)

	products, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, 3, products[2].ID)

	catalog, err := repo.GetCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "inv.xlsx", catalog.Source)
}

func TestMemoryCatalogReturnsCopies(t *testing.T) {
	repo := NewMemoryCatalogRepository()
	require.NoError(t, repo.Replace(context.Background(), entity.Catalog{
		Products: []entity.Product{{ID: 1, ItemID: "A"}},
	}))

	first, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	first[0].ItemID = "mutated"

	second, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A", second[0].ItemID, "callers get copies, not the backing slice")
}

func TestMemoryCatalogClear(t *testing.T) {
	repo := NewMemoryCatalogRepository()
	require.NoError(t, repo.Replace(context.Background(), entity.Catalog{
		Products: []entity.Product{{ID: 1}},
	}))
	require.NoError(t, repo.Clear(context.Background()))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}
