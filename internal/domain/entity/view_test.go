package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewViewState(t *testing.T) {
	s := NewViewState()
	assert.Equal(t, AllCategories, s.Category)
	assert.Equal(t, AllVendors, s.Vendor)
	assert.Empty(t, s.Search)
	assert.Equal(t, 1, s.Page)
}

func TestTransitionsResetPage(t *testing.T) {
	base := NewViewState().WithPage(4)

	assert.Equal(t, 1, base.WithCategory("FAS").Page)
	assert.Equal(t, 1, base.WithVendor("Acme").Page)
	assert.Equal(t, 1, base.WithSearch("bolt").Page)
	assert.Equal(t, 1, base.WithFacetQuery("fa").Page)

	// WithPage alone keeps the rest of the state.
	moved := base.WithCategory("FAS").WithPage(3)
	assert.Equal(t, "FAS", moved.Category)
	assert.Equal(t, 3, moved.Page)
}

func TestWithFacetQueryDropsCategory(t *testing.T) {
	s := NewViewState().WithCategory("FAS").WithFacetQuery("tool")
	assert.Equal(t, AllCategories, s.Category)
	assert.Equal(t, "tool", s.FacetQuery)
}

func TestWithPageClampsBelowOne(t *testing.T) {
	assert.Equal(t, 1, NewViewState().WithPage(0).Page)
	assert.Equal(t, 1, NewViewState().WithPage(-5).Page)
}

func TestTransitionsDoNotMutateReceiver(t *testing.T) {
	base := NewViewState()
	_ = base.WithCategory("FAS").WithSearch("bolt").WithPage(9)
	assert.Equal(t, NewViewState(), base)
}
