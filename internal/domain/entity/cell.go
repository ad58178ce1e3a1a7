package entity

// CellKind classifies one raw spreadsheet cell. The variant is closed: a cell
// is absent, free text, or a number (with its original textual form retained).
type CellKind int

const (
	CellAbsent CellKind = iota
	CellText
	CellNumber
)

// Cell is one raw cell value as read from the workbook, before any coercion.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// AbsentCell returns the absent variant.
func AbsentCell() Cell { return Cell{Kind: CellAbsent} }

// TextCell wraps a textual cell value.
func TextCell(s string) Cell { return Cell{Kind: CellText, Text: s} }

// NumberCell wraps a numeric cell value, keeping the rendered text so that
// string-typed fields can reuse the original representation.
func NumberCell(n float64, text string) Cell {
	return Cell{Kind: CellNumber, Number: n, Text: text}
}

// IsAbsent reports whether the cell carried no value.
func (c Cell) IsAbsent() bool { return c.Kind == CellAbsent }

// RawRow is one spreadsheet record keyed by column header.
type RawRow map[string]Cell

// Get returns the cell for a column, treating a missing key as absent.
func (r RawRow) Get(column string) Cell {
	if c, ok := r[column]; ok {
		return c
	}
	return AbsentCell()
}

// Empty reports whether every cell in the row is absent, which makes the row
// structurally unusable.
func (r RawRow) Empty() bool {
	for _, c := range r {
		if !c.IsAbsent() {
			return false
		}
	}
	return true
}
