package parser

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/inventory-catalog-bot/internal/domain/entity"
	"github.com/yourusername/inventory-catalog-bot/internal/domain/repository"
)

type excelWorkbookReader struct{}

// NewWorkbookReader creates the excelize-backed workbook reader.
func NewWorkbookReader() repository.WorkbookReader {
	return &excelWorkbookReader{}
}

// ReadRows decodes the first sheet of the workbook. The first row supplies the
// column headers; every following row becomes a RawRow keyed by header.
func (e *excelWorkbookReader) ReadRows(ctx context.Context, data []byte) ([]entity.RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		// Headerless empty sheet: no records.
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	records := make([]entity.RawRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(entity.RawRow, len(headers))
		for i, raw := range row {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			cell := classifyCell(raw)
			if cell.IsAbsent() {
				continue
			}
			record[headers[i]] = cell
		}
		records = append(records, record)
	}

	return records, nil
}

// classifyCell maps the textual cell excelize yields onto the closed raw-cell
// variant: empty is absent, a cleanly parseable float is a number (keeping the
// original text), anything else is text.
func classifyCell(raw string) entity.Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return entity.AbsentCell()
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return entity.NumberCell(v, trimmed)
	}
	return entity.TextCell(trimmed)
}
