package exporter

import (
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"

	"fisheriescli/internal/dataset"
	apperrors "fisheriescli/internal/errors"
)

// CSVWriter writes cleaned tables to CSV files.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer. A nil logger falls back to slog.Default.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	// BOMPrefix prepends a UTF-8 BOM so Excel recognizes the encoding. The
	// county and ecosystem labels carry non-ASCII characters.
	BOMPrefix bool
}

// WriteTable writes the table's header and rows to path, creating parent
// directories as needed. Existing files are truncated.
func (w *CSVWriter) WriteTable(ctx context.Context, path string, table *dataset.Table, opts WriteOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("create output directory", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("create CSV file", err).WithContext("path", path)
	}
	defer file.Close()

	if opts.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return apperrors.NewStorageError("write BOM", err).WithContext("path", path)
		}
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(table.Columns()); err != nil {
		return apperrors.NewStorageError("write CSV header", err).WithContext("path", path)
	}
	for row := 0; row < table.RowCount(); row++ {
		if err := writer.Write(table.Row(row)); err != nil {
			return apperrors.NewStorageError("write CSV record", err).
				WithContext("path", path).
				WithContext("row", row)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewStorageError("flush CSV file", err).WithContext("path", path)
	}

	w.logger.InfoContext(ctx, "cleaned dataset written",
		slog.String("path", path),
		slog.Int("rows", table.RowCount()))

	return nil
}
