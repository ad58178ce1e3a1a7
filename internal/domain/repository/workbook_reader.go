package repository

import (
	"context"

	"github.com/yourusername/inventory-catalog-bot/internal/domain/entity"
)

// WorkbookReader decodes a binary spreadsheet payload into raw rows.
type WorkbookReader interface {
	// ReadRows decodes the first sheet: the first row is treated as headers,
	// every following row becomes a RawRow keyed by header name, in sheet
	// order.
	ReadRows(ctx context.Context, data []byte) ([]entity.RawRow, error)
}
