package entity

// Facet sentinels matching the "no selection" dropdown entries.
const (
	AllCategories = "All Categories"
	AllVendors    = "All Vendors"
)

// PageSize is the fixed number of products per page.
const PageSize = 20

// ViewState is an immutable snapshot of the browsing state. Transitions return
// a new snapshot; anything that changes the result set resets the page to 1 so
// a stale page number can never outlive the filter that produced it.
type ViewState struct {
	Category   string
	Vendor     string
	Search     string
	FacetQuery string
	Page       int
}

// NewViewState returns the initial state: no filters, page 1.
func NewViewState() ViewState {
	return ViewState{Category: AllCategories, Vendor: AllVendors, Page: 1}
}

// WithCategory selects a category facet.
func (s ViewState) WithCategory(category string) ViewState {
	s.Category = category
	s.Page = 1
	return s
}

// WithVendor selects a vendor facet.
func (s ViewState) WithVendor(vendor string) ViewState {
	s.Vendor = vendor
	s.Page = 1
	return s
}

// WithSearch sets the free-text product search.
func (s ViewState) WithSearch(query string) ViewState {
	s.Search = query
	s.Page = 1
	return s
}

// WithFacetQuery sets the facet-narrowing text. Selecting a new facet query
// also drops the current category selection, mirroring the source behavior.
func (s ViewState) WithFacetQuery(query string) ViewState {
	s.FacetQuery = query
	s.Category = AllCategories
	s.Page = 1
	return s
}

// WithPage moves to a page. Callers are expected to stay within
// [1, totalPages]; values below 1 are clamped.
func (s ViewState) WithPage(page int) ViewState {
	if page < 1 {
		page = 1
	}
	s.Page = page
	return s
}
