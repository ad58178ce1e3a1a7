package entity

import (
	"math"
	"strconv"
	"strings"
)

// Normalize converts one raw row into a Product according to the schema's
// field-kind table. It is total over the cell variant: a bad value in one field
// never fails the row, it is recorded in diag and replaced by the field's
// default or left absent. The second return value is false only when the row
// is structurally unusable (every cell absent).
func (s Schema) Normalize(row RawRow, id int, diag *Diagnostics) (Product, bool) {
	diag.RowsSeen++
	if row.Empty() {
		diag.RowsSkipped++
		return Product{}, false
	}

	p := Product{ID: id}
	for _, rule := range s.Rules {
		cell := row.Get(rule.Column)
		switch rule.Kind {
		case KindIdentifier:
			setStringField(&p, rule.Field, identifierValue(cell, rule.Column, diag))
		case KindText:
			setStringField(&p, rule.Field, textValue(cell))
		case KindNumber:
			setNumberField(&p, rule.Field, numberValue(cell, rule.Column, diag))
		case KindFlag:
			setFlagField(&p, rule.Field, flagValue(cell, rule.Column, diag))
		case KindImage:
			setStringField(&p, rule.Field, imageValue(cell))
		}
	}

	p.Category = s.resolveCategory(p)
	return p, true
}

// resolveCategory applies the schema's attribution mode.
func (s Schema) resolveCategory(p Product) string {
	switch s.CategoryMode {
	case CategoryFromColumn:
		return p.Category
	default:
		// A defaulted item ID keeps the full sentinel as its category rather
		// than a meaningless prefix of it.
		if p.ItemID == UncategorizedSentinel {
			return UncategorizedSentinel
		}
		if len(p.ItemID) <= s.PrefixLen {
			return p.ItemID
		}
		return p.ItemID[:s.PrefixLen]
	}
}

// identifierValue coerces a required string field. Numeric input keeps its
// textual representation; anything unrecognized becomes the sentinel.
func identifierValue(c Cell, column string, diag *Diagnostics) string {
	switch c.Kind {
	case CellText:
		return strings.TrimSpace(c.Text)
	case CellNumber:
		return numberText(c)
	case CellAbsent:
		return UncategorizedSentinel
	default:
		diag.Record(column, c.Text)
		return UncategorizedSentinel
	}
}

// textValue coerces an optional string field; absent stays empty.
func textValue(c Cell) string {
	switch c.Kind {
	case CellText:
		return strings.TrimSpace(c.Text)
	case CellNumber:
		return numberText(c)
	default:
		return ""
	}
}

// numberValue coerces an optional float field. String input is parsed after
// stripping everything outside [0-9.-]; a failed parse is absent, never NaN.
func numberValue(c Cell, column string, diag *Diagnostics) *float64 {
	switch c.Kind {
	case CellNumber:
		if math.IsNaN(c.Number) || math.IsInf(c.Number, 0) {
			diag.Record(column, c.Text)
			return nil
		}
		v := c.Number
		return &v
	case CellText:
		cleaned := stripNonNumeric(c.Text)
		if cleaned == "" {
			diag.Record(column, c.Text)
			return nil
		}
		v, err := strconv.ParseFloat(cleaned, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			diag.Record(column, c.Text)
			return nil
		}
		return &v
	default:
		return nil
	}
}

// flagValue applies the tri-state boolean rule: "y"/"true" in any case or a
// positive number is true, everything else (including absent) is false.
func flagValue(c Cell, column string, diag *Diagnostics) bool {
	switch c.Kind {
	case CellNumber:
		return c.Number > 0
	case CellText:
		t := strings.ToLower(strings.TrimSpace(c.Text))
		switch t {
		case "y", "true", "yes":
			return true
		case "", "n", "no", "false":
			return false
		}
		if v, err := strconv.ParseFloat(t, 64); err == nil {
			return v > 0
		}
		diag.Record(column, c.Text)
		return false
	default:
		return false
	}
}

// imageValue coerces the image URL field with its fixed placeholder default.
func imageValue(c Cell) string {
	if v := textValue(c); v != "" {
		return v
	}
	return PlaceholderImageURL
}

// numberText renders a numeric cell the way it appeared in the sheet when
// possible, falling back to a minimal float rendering.
func numberText(c Cell) string {
	if t := strings.TrimSpace(c.Text); t != "" {
		return t
	}
	return strconv.FormatFloat(c.Number, 'f', -1, 64)
}

// stripNonNumeric drops currency symbols, thousands separators and any other
// character outside [0-9.-].
func stripNonNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func setStringField(p *Product, f Field, v string) {
	switch f {
	case FieldItemID:
		p.ItemID = v
	case FieldInvMastUID:
		p.InvMastUID = v
	case FieldVendorPartNo:
		p.VendorPartNo = v
	case FieldDescription:
		p.Description = v
	case FieldExtendedDescription:
		p.ExtendedDescription = v
	case FieldSpecs:
		p.Specs = v
	case FieldSalesPricingUnit:
		p.SalesPricingUnit = v
	case FieldLocationID:
		p.LocationID = v
	case FieldProductGroup:
		p.ProductGroup = v
	case FieldClassID:
		p.ClassID = v
	case FieldUPCCode:
		p.UPCCode = v
	case FieldCategory:
		p.Category = v
	case FieldVendor:
		p.Vendor = v
	case FieldImage:
		p.Image = v
	}
}

func setNumberField(p *Product, f Field, v *float64) {
	switch f {
	case FieldCost:
		p.Cost = v
	case FieldListPrice:
		p.ListPrice = v
	case FieldQtyOnHand:
		p.QtyOnHand = v
	case FieldQtyAllocated:
		p.QtyAllocated = v
	case FieldWeight:
		p.Weight = v
	case FieldCube:
		p.Cube = v
	}
}

func setFlagField(p *Product, f Field, v bool) {
	switch f {
	case FieldDeleted:
		p.Deleted = v
	case FieldDiscontinued:
		p.Discontinued = v
	case FieldInStock:
		p.InStock = v
	}
}
