package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/yourusername/inventory-catalog-bot/internal/domain/entity"
	"github.com/yourusername/inventory-catalog-bot/internal/domain/repository"
)

// PageView is one rendered page of the filtered catalog, with the counters the
// surrounding surface displays.
type PageView struct {
	Items      []entity.Product
	Page       int
	TotalPages int
	Matched    int // products surviving the filter chain
	Total      int // products in the Catalog Store
}

// ViewUseCase derives facets, filtered views, and pages from the Catalog
// Store. Everything here is a pure function of the store snapshot and the
// ViewState, recomputed on read.
type ViewUseCase interface {
	// Categories returns the distinct non-empty category facets, narrowed by
	// an optional case-insensitive substring query.
	Categories(ctx context.Context, facetQuery string) ([]string, error)

	// Vendors returns the distinct non-empty vendor facets, sorted, narrowed
	// like Categories.
	Vendors(ctx context.Context, facetQuery string) ([]string, error)

	// Browse applies the filter chain and pagination for a view state.
	Browse(ctx context.Context, state entity.ViewState) (*PageView, error)
}

type viewUseCase struct {
	catalog repository.CatalogRepository
	schema  entity.Schema
}

// NewViewUseCase creates the derived-view layer for one dataset schema.
func NewViewUseCase(catalog repository.CatalogRepository, schema entity.Schema) ViewUseCase {
	return &viewUseCase{catalog: catalog, schema: schema}
}

// Categories returns the category facets.
func (u *viewUseCase) Categories(ctx context.Context, facetQuery string) ([]string, error) {
	products, err := u.catalog.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return narrowFacets(categoryFacets(products, u.schema.SortedCategories), facetQuery), nil
}

// Vendors returns the vendor facets.
func (u *viewUseCase) Vendors(ctx context.Context, facetQuery string) ([]string, error) {
	products, err := u.catalog.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return narrowFacets(vendorFacets(products), facetQuery), nil
}

// Browse applies the filter chain and slices out the requested page.
func (u *viewUseCase) Browse(ctx context.Context, state entity.ViewState) (*PageView, error) {
	products, err := u.catalog.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := applyFilters(products, state)
	items, totalPages := paginate(filtered, state.Page)

	return &PageView{
		Items:      items,
		Page:       state.Page,
		TotalPages: totalPages,
		Matched:    len(filtered),
		Total:      len(products),
	}, nil
}

// categoryFacets collects distinct non-empty categories, first-seen order or
// sorted depending on the dataset variant.
func categoryFacets(products []entity.Product, sorted bool) []string {
	seen := make(map[string]struct{}, len(products))
	var facets []string
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		facets = append(facets, p.Category)
	}
	if sorted {
		sort.Strings(facets)
	}
	return facets
}

// vendorFacets collects distinct non-empty vendors, always sorted.
func vendorFacets(products []entity.Product) []string {
	seen := make(map[string]struct{}, len(products))
	var facets []string
	for _, p := range products {
		if p.Vendor == "" {
			continue
		}
		if _, ok := seen[p.Vendor]; ok {
			continue
		}
		seen[p.Vendor] = struct{}{}
		facets = append(facets, p.Vendor)
	}
	sort.Strings(facets)
	return facets
}

// narrowFacets keeps facets containing the query, case-insensitively. This is
// independent of product filtering.
func narrowFacets(facets []string, query string) []string {
	if query == "" {
		return facets
	}
	q := strings.ToLower(query)
	var out []string
	for _, f := range facets {
		if strings.Contains(strings.ToLower(f), q) {
			out = append(out, f)
		}
	}
	return out
}

// applyFilters conjoins the three independent predicates: category, vendor,
// free-text search. Order only matters for speed, not for the result set.
func applyFilters(products []entity.Product, state entity.ViewState) []entity.Product {
	filtered := products
	if state.Category != entity.AllCategories {
		filtered = filterProducts(filtered, func(p entity.Product) bool {
			return p.Category == state.Category
		})
	}
	if state.Vendor != entity.AllVendors {
		filtered = filterProducts(filtered, func(p entity.Product) bool {
			return p.Vendor == state.Vendor
		})
	}
	if state.Search != "" {
		q := strings.ToLower(state.Search)
		filtered = filterProducts(filtered, func(p entity.Product) bool {
			return matchesSearch(p, q)
		})
	}
	return filtered
}

func filterProducts(products []entity.Product, keep func(entity.Product) bool) []entity.Product {
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// matchesSearch reports whether any of the searchable text fields contains the
// lower-cased query.
func matchesSearch(p entity.Product, q string) bool {
	for _, field := range []string{
		p.Description,
		p.ExtendedDescription,
		p.Vendor,
		p.ItemID,
		p.VendorPartNo,
	} {
		if field != "" && strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// paginate returns the 1-based page slice clipped to the available length and
// the total page count (at least 1, so page 1 of nothing is a valid empty
// page).
func paginate(filtered []entity.Product, page int) ([]entity.Product, int) {
	totalPages := (len(filtered) + entity.PageSize - 1) / entity.PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * entity.PageSize
	if start >= len(filtered) {
		return []entity.Product{}, totalPages
	}
	end := start + entity.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], totalPages
}
