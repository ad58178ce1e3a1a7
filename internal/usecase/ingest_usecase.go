package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/yourusername/inventory-catalog-bot/internal/domain/entity"
	"github.com/yourusername/inventory-catalog-bot/internal/domain/repository"
	"go.uber.org/zap"
)

// IngestBatchSize is the number of rows normalized between progress reports.
const IngestBatchSize = 100

// User-facing ingestion errors. Their text is shown verbatim.
var (
	ErrUnsupportedFileType = errors.New("please upload an Excel file (.xlsx or .xls)")
	ErrWorkbookParse       = errors.New("error parsing Excel file, please check the format")
)

// ProgressFunc receives (rows processed so far, total rows) after each batch.
// It is the cooperative yield point of the pipeline: the driver may repaint
// progress before normalization continues.
type ProgressFunc func(processed, total int)

// IngestResult summarizes one successful ingestion run.
type IngestResult struct {
	Loaded      int // products placed in the Catalog Store
	Dropped     int // rows excluded because their delete flag was set
	Rows        int // raw rows in the sheet, including unusable ones
	Diagnostics *entity.Diagnostics
}

// IngestUseCase is the spreadsheet-to-catalog pipeline.
type IngestUseCase interface {
	// UploadCatalog ingests one uploaded file. On success the Catalog Store
	// is replaced wholesale; on any failure it is left exactly as it was.
	UploadCatalog(ctx context.Context, data []byte, filename string, onProgress ProgressFunc) (*IngestResult, error)
}

type ingestUseCase struct {
	reader  repository.WorkbookReader
	catalog repository.CatalogRepository
	schema  entity.Schema
	logger  *zap.Logger

	// mu serializes uploads so two runs never interleave writes to the
	// progress state or the store.
	mu sync.Mutex
}

// NewIngestUseCase creates the ingestion pipeline for one dataset schema.
func NewIngestUseCase(
	reader repository.WorkbookReader,
	catalog repository.CatalogRepository,
	schema entity.Schema,
	logger *zap.Logger,
) IngestUseCase {
	return &ingestUseCase{
		reader:  reader,
		catalog: catalog,
		schema:  schema,
		logger:  logger,
	}
}

// UploadCatalog ingests one uploaded file.
func (u *ingestUseCase) UploadCatalog(ctx context.Context, data []byte, filename string, onProgress ProgressFunc) (*IngestResult, error) {
	if !hasSpreadsheetExtension(filename) {
		return nil, ErrUnsupportedFileType
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if onProgress == nil {
		onProgress = func(int, int) {}
	}

	rows, err := u.reader.ReadRows(ctx, data)
	if err != nil {
		u.logger.Warn("workbook decode failed",
			zap.String("file", filename),
			zap.Error(err))
		return nil, ErrWorkbookParse
	}

	total := len(rows)
	onProgress(0, total)

	diag := entity.NewDiagnostics()
	products := make([]entity.Product, 0, total)
	nextID := 1

	for start := 0; start < total; start += IngestBatchSize {
		end := start + IngestBatchSize
		if end > total {
			end = total
		}
		for _, row := range rows[start:end] {
			product, ok := u.schema.Normalize(row, nextID, diag)
			if !ok {
				continue
			}
			products = append(products, product)
			nextID++
		}
		onProgress(end, total)
	}

	active := products[:0:0]
	for _, p := range products {
		if !p.Deleted {
			active = append(active, p)
		}
	}

	if err := u.catalog.Replace(ctx, entity.Catalog{
		Products:  active,
		UpdatedAt: time.Now(),
		Source:    filename,
	}); err != nil {
		return nil, err
	}

	result := &IngestResult{
		Loaded:      len(active),
		Dropped:     len(products) - len(active),
		Rows:        total,
		Diagnostics: diag,
	}

	u.logger.Info("catalog replaced",
		zap.String("file", filename),
		zap.Int("rows", result.Rows),
		zap.Int("loaded", result.Loaded),
		zap.Int("dropped", result.Dropped),
		zap.Int("anomalies", diag.Total()))
	for column, count := range diag.Anomalies {
		u.logger.Warn("field coercion anomalies",
			zap.String("column", column),
			zap.Int("count", count),
			zap.Strings("samples", diag.Samples[column]))
	}

	return result, nil
}

// hasSpreadsheetExtension gates uploads by file name before any decoding.
func hasSpreadsheetExtension(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xls")
}
