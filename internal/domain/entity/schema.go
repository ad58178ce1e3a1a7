package entity

// FieldKind selects the coercion rule applied to a raw cell.
type FieldKind int

const (
	// KindIdentifier is a required string: numbers are coerced to their
	// textual form, anything else falls back to UncategorizedSentinel.
	KindIdentifier FieldKind = iota
	// KindText is an optional string passed through unchanged.
	KindText
	// KindNumber is an optional float; string input is parsed after currency
	// symbols and separators are stripped, and a parse failure yields absent.
	KindNumber
	// KindFlag is a tri-state boolean: "y"/"true" (any case) or a positive
	// number is true, everything else false.
	KindFlag
	// KindImage is a string with PlaceholderImageURL as its default.
	KindImage
)

// Field names a Product attribute a column can feed.
type Field int

const (
	FieldItemID Field = iota
	FieldInvMastUID
	FieldVendorPartNo
	FieldDescription
	FieldExtendedDescription
	FieldSpecs
	FieldSalesPricingUnit
	FieldLocationID
	FieldProductGroup
	FieldClassID
	FieldUPCCode
	FieldCategory
	FieldVendor
	FieldCost
	FieldListPrice
	FieldQtyOnHand
	FieldQtyAllocated
	FieldWeight
	FieldCube
	FieldDeleted
	FieldDiscontinued
	FieldInStock
	FieldImage
)

// FieldRule binds one column header to a product field and its coercion rule.
type FieldRule struct {
	Column string
	Field  Field
	Kind   FieldKind
}

// CategoryMode selects how a product's category is attributed.
type CategoryMode int

const (
	// CategoryFromPrefix derives the category from the leading characters of
	// the item ID (short-form datasets).
	CategoryFromPrefix CategoryMode = iota
	// CategoryFromColumn reads an explicit category column (full-form datasets).
	CategoryFromColumn
)

// Schema is the declared field-kind table for one dataset variant. The two
// variants encountered in the wild share the pipeline and differ only here.
type Schema struct {
	Name         string
	Rules        []FieldRule
	CategoryMode CategoryMode
	PrefixLen    int
	// SortedCategories selects lexicographic category facets; otherwise the
	// facet list keeps first-seen order.
	SortedCategories bool
}

// ShortFormSchema describes variant A: ERP-style export columns where the
// category is the first three characters of the item ID.
func ShortFormSchema() Schema {
	return Schema{
		Name: "short",
		Rules: []FieldRule{
			{Column: "item_id", Field: FieldItemID, Kind: KindIdentifier},
			{Column: "inv_mast_uid", Field: FieldInvMastUID, Kind: KindText},
			{Column: "Item_description", Field: FieldDescription, Kind: KindText},
			{Column: "Extended_Description", Field: FieldExtendedDescription, Kind: KindText},
			{Column: "Delete_Flag", Field: FieldDeleted, Kind: KindFlag},
			{Column: "discontinued", Field: FieldDiscontinued, Kind: KindFlag},
			{Column: "Sales_Pricing_unit", Field: FieldSalesPricingUnit, Kind: KindText},
			{Column: "Location_ID", Field: FieldLocationID, Kind: KindText},
			{Column: "Qty_On_Hand", Field: FieldQtyOnHand, Kind: KindNumber},
			{Column: "Qty_On_Allocated", Field: FieldQtyAllocated, Kind: KindNumber},
			{Column: "Product_Group_Description", Field: FieldProductGroup, Kind: KindText},
			{Column: "Cost", Field: FieldCost, Kind: KindNumber},
			{Column: "List_Price", Field: FieldListPrice, Kind: KindNumber},
			{Column: "Class_ID5", Field: FieldClassID, Kind: KindText},
			{Column: "upc_code", Field: FieldUPCCode, Kind: KindText},
			{Column: "weight", Field: FieldWeight, Kind: KindNumber},
			{Column: "cube", Field: FieldCube, Kind: KindNumber},
			{Column: "Supplier_Name", Field: FieldVendor, Kind: KindText},
			{Column: "Image", Field: FieldImage, Kind: KindImage},
		},
		CategoryMode: CategoryFromPrefix,
		PrefixLen:    3,
	}
}

// FullFormSchema describes variant B: explicit category/vendor text columns
// and an MSRP price column, with lexicographically sorted category facets.
func FullFormSchema() Schema {
	return Schema{
		Name: "full",
		Rules: []FieldRule{
			{Column: "Item_ID", Field: FieldItemID, Kind: KindIdentifier},
			{Column: "Vendor_Part_No", Field: FieldVendorPartNo, Kind: KindIdentifier},
			{Column: "Description", Field: FieldDescription, Kind: KindText},
			{Column: "Extended_Description", Field: FieldExtendedDescription, Kind: KindText},
			{Column: "Specs", Field: FieldSpecs, Kind: KindText},
			{Column: "Category", Field: FieldCategory, Kind: KindText},
			{Column: "Vendor", Field: FieldVendor, Kind: KindText},
			{Column: "Cost", Field: FieldCost, Kind: KindNumber},
			{Column: "MSRP", Field: FieldListPrice, Kind: KindNumber},
			{Column: "Qty_On_Hand", Field: FieldQtyOnHand, Kind: KindNumber},
			{Column: "Qty_Allocated", Field: FieldQtyAllocated, Kind: KindNumber},
			{Column: "weight", Field: FieldWeight, Kind: KindNumber},
			{Column: "cube", Field: FieldCube, Kind: KindNumber},
			{Column: "Deleted", Field: FieldDeleted, Kind: KindFlag},
			{Column: "Discontinued", Field: FieldDiscontinued, Kind: KindFlag},
			{Column: "In_Stock", Field: FieldInStock, Kind: KindFlag},
			{Column: "Image", Field: FieldImage, Kind: KindImage},
		},
		CategoryMode:     CategoryFromColumn,
		SortedCategories: true,
	}
}

// SchemaByName resolves a configured schema name, defaulting to short-form.
func SchemaByName(name string) Schema {
	if name == "full" {
		return FullFormSchema()
	}
	return ShortFormSchema()
}
