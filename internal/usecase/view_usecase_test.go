package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/inventory-catalog-bot/internal/domain/entity"
	"github.com/yourusername/inventory-catalog-bot/internal/infrastructure/storage"
)

func seedCatalog(t *testing.T, products []entity.Product) ViewUseCase {
	t.Helper()
	repo := storage.NewMemoryCatalogRepository()
	require.NoError(t, repo.Replace(context.Background(), entity.Catalog{
		Products:  products,
		UpdatedAt: time.Now(),
		Source:    "test.xlsx",
	}))
	return NewViewUseCase(repo, entity.ShortFormSchema())
}

func TestCategoriesFirstSeenOrder(t *testing.T) {
	uc := seedCatalog(t, []entity.Product{
		{ID: 1, Category: "PLU"},
		{ID: 2, Category: "ELE"},
		{ID: 3, Category: "PLU"},
		{ID: 4, Category: "FAS"},
	})

	categories, err := uc.Categories(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"PLU", "ELE", "FAS"}, categories,
		"short-form category facets keep first-seen order")
}

func TestCategoriesSortedForFullForm(t *testing.T) {
	repo := storage.NewMemoryCatalogRepository()
	require.NoError(t, repo.Replace(context.Background(), entity.Catalog{
		Products: []entity.Product{
			{ID: 1, Category: "Plumbing"},
			{ID: 2, Category: "Electrical"},
			{ID: 3, Category: "Fasteners"},
		},
	}))
	uc := NewViewUseCase(repo, entity.FullFormSchema())

	categories, err := uc.Categories(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Electrical", "Fasteners", "Plumbing"}, categories)
}

func TestVendorsAlwaysSorted(t *testing.T) {
	uc := seedCatalog(t, []entity.Product{
		{ID: 1, Vendor: "Zeta Tools"},
		{ID: 2, Vendor: "Acme Supply"},
		{ID: 3, Vendor: "Zeta Tools"},
		{ID: 4, Vendor: ""},
	})

	vendors, err := uc.Vendors(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme Supply", "Zeta Tools"}, vendors,
		"empty vendors are omitted and the rest sorted")
}

func TestFacetNarrowingIsCaseInsensitive(t *testing.T) {
	uc := seedCatalog(t, []entity.Product{
		{ID: 1, Category: "Power Tools"},
		{ID: 2, Category: "Hand Tools"},
		{ID: 3, Category: "Plumbing"},
	})

	categories, err := uc.Categories(context.Background(), "TOOL")
	require.NoError(t, err)
	assert.Equal(t, []string{"Power Tools", "Hand Tools"}, categories)

	categories, err = uc.Categories(context.Background(), "xyz")
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestBrowseFilterChain(t *testing.T) {
	uc := seedCatalog(t, []entity.Product{
		{ID: 1, Category: "FAS", Vendor: "Acme", Description: "hex bolt"},
		{ID: 2, Category: "FAS", Vendor: "Zeta", Description: "wood screw"},
		{ID: 3, Category: "PLU", Vendor: "Acme", Description: "bolt-on valve"},
		{ID: 4, Category: "FAS", Vendor: "Acme", Description: "washer"},
	})

	state := entity.NewViewState().
		WithCategory("FAS").
		WithVendor("Acme").
		WithSearch("bolt")

	view, err := uc.Browse(context.Background(), state)
	require.NoError(t, err)

	require.Len(t, view.Items, 1, "filters conjoin: category AND vendor AND search")
	assert.Equal(t, 1, view.Items[0].ID)
	assert.Equal(t, 1, view.Matched)
	assert.Equal(t, 4, view.Total)
}

func TestBrowseSearchFields(t *testing.T) {
	uc := seedCatalog(t, []entity.Product{
		{ID: 1, Description: "hex bolt"},
		{ID: 2, ExtendedDescription: "with BOLT head"},
		{ID: 3, Vendor: "Bolt Bros"},
		{ID: 4, ItemID: "BOLT-1"},
		{ID: 5, VendorPartNo: "xbolt9"},
		{ID: 6, Description: "washer"},
	})

	view, err := uc.Browse(context.Background(), entity.NewViewState().WithSearch("bolt"))
	require.NoError(t, err)
	assert.Equal(t, 5, view.Matched, "all five text fields are searched case-insensitively")
}

func TestBrowseNoFiltersReturnsStoreOrder(t *testing.T) {
	products := make([]entity.Product, 15)
	for i := range products {
		products[i] = entity.Product{ID: i + 1, ItemID: fmt.Sprintf("ITM-%d", i+1)}
	}
	uc := seedCatalog(t, products)

	view, err := uc.Browse(context.Background(), entity.NewViewState())
	require.NoError(t, err)

	require.Len(t, view.Items, 15)
	for i, p := range view.Items {
		assert.Equal(t, i+1, p.ID)
	}
	assert.Equal(t, 1, view.TotalPages)
}

func TestBrowsePagination(t *testing.T) {
	products := make([]entity.Product, 45)
	for i := range products {
		products[i] = entity.Product{ID: i + 1}
	}
	uc := seedCatalog(t, products)

	page2, err := uc.Browse(context.Background(), entity.NewViewState().WithPage(2))
	require.NoError(t, err)
	require.Len(t, page2.Items, 20)
	assert.Equal(t, 21, page2.Items[0].ID)
	assert.Equal(t, 40, page2.Items[19].ID)
	assert.Equal(t, 3, page2.TotalPages)

	page3, err := uc.Browse(context.Background(), entity.NewViewState().WithPage(3))
	require.NoError(t, err)
	require.Len(t, page3.Items, 5, "the last page holds the remainder")
	assert.Equal(t, 41, page3.Items[0].ID)
	assert.Equal(t, 45, page3.Items[4].ID)
}

func TestBrowsePastLastPageIsEmpty(t *testing.T) {
	uc := seedCatalog(t, []entity.Product{{ID: 1}, {ID: 2}})

	view, err := uc.Browse(context.Background(), entity.NewViewState().WithPage(9))
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, 1, view.TotalPages)
}

func TestBrowseEmptyStore(t *testing.T) {
	uc := NewViewUseCase(storage.NewMemoryCatalogRepository(), entity.ShortFormSchema())

	view, err := uc.Browse(context.Background(), entity.NewViewState())
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, 1, view.TotalPages, "an empty result set is one valid empty page")
	assert.Zero(t, view.Total)
}
