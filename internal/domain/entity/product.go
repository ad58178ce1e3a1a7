package entity

import "time"

// UncategorizedSentinel is substituted for identifying fields that are absent
// or of an unexpected type.
const UncategorizedSentinel = "Uncategorized"

// PlaceholderImageURL is used when a row carries no image column.
const PlaceholderImageURL = "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500&q=80"

// Product is one normalized catalog entry. Optional numeric fields are nil when
// the source cell was absent or failed to parse; they are never NaN.
type Product struct {
	ID int // assigned sequentially during ingestion, not sourced from the file

	ItemID       string // defaults to UncategorizedSentinel
	InvMastUID   string
	VendorPartNo string // defaults to UncategorizedSentinel

	Description         string
	ExtendedDescription string
	Specs               string

	SalesPricingUnit string
	LocationID       string
	ProductGroup     string
	ClassID          string
	UPCCode          string

	// Category is resolved at normalization time: either the item-ID prefix
	// (short-form schema) or an explicit column (full-form schema).
	Category string
	Vendor   string

	Cost         *float64
	ListPrice    *float64
	QtyOnHand    *float64
	QtyAllocated *float64
	Weight       *float64
	Cube         *float64

	Deleted      bool
	Discontinued bool
	InStock      bool

	Image string
}

// Catalog is the full ordered set of products from the most recent successful
// ingestion, replaced wholesale on each upload.
type Catalog struct {
	Products  []Product
	UpdatedAt time.Time
	Source    string // uploaded file name
}
