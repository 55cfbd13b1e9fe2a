package exporter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"fisheriescli/internal/dataset"
	apperrors "fisheriescli/internal/errors"
)

// SQLiteExporter writes cleaned tables into a SQLite database, one table per
// dataset variant, so downstream analysis can use plain SQL instead of
// re-parsing CSV.
type SQLiteExporter struct {
	logger *slog.Logger
}

// NewSQLiteExporter creates a SQLite exporter. A nil logger falls back to
// slog.Default.
func NewSQLiteExporter(logger *slog.Logger) *SQLiteExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteExporter{logger: logger}
}

// ExportTable writes the table into the database at dbPath under the table
// name cleaned_<variant>. The table is dropped and recreated on each run;
// all inserts happen in a single transaction.
func (e *SQLiteExporter) ExportTable(ctx context.Context, dbPath, variant string, table *dataset.Table) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return apperrors.NewStorageError("create output directory", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return apperrors.NewStorageError("open SQLite database", err).WithContext("path", dbPath)
	}
	defer db.Close()

	tableName := "cleaned_" + variant
	columns := table.Columns()

	if _, err := db.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS "%s"`, tableName)); err != nil {
		return apperrors.NewStorageError("drop existing table", err).WithContext("table", tableName)
	}
	if _, err := db.ExecContext(ctx, createTableSQL(tableName, columns)); err != nil {
		return apperrors.NewStorageError("create table", err).WithContext("table", tableName)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewStorageError("begin transaction", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertSQL(tableName, columns))
	if err != nil {
		return apperrors.NewStorageError("prepare insert", err).WithContext("table", tableName)
	}
	defer stmt.Close()

	args := make([]interface{}, len(columns))
	for row := 0; row < table.RowCount(); row++ {
		values := table.Row(row)
		for i := range columns {
			args[i] = values[i]
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return apperrors.NewStorageError("insert row", err).
				WithContext("table", tableName).
				WithContext("row", row)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewStorageError("commit transaction", err).WithContext("table", tableName)
	}

	e.logger.InfoContext(ctx, "SQLite export complete",
		slog.String("path", dbPath),
		slog.String("table", tableName),
		slog.Int("rows", table.RowCount()))

	return nil
}

// createTableSQL builds the CREATE TABLE statement. Values arrive as strings
// from the cleaned table; SQLite's dynamic typing makes TEXT columns usable
// for numeric queries via CAST.
func createTableSQL(tableName string, columns []string) string {
	defs := make([]string, len(columns))
	for i, column := range columns {
		defs[i] = fmt.Sprintf(`"%s" TEXT`, column)
	}
	return fmt.Sprintf(`CREATE TABLE "%s" (%s)`, tableName, strings.Join(defs, ", "))
}

func insertSQL(tableName string, columns []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, column := range columns {
		quoted[i] = fmt.Sprintf(`"%s"`, column)
		placeholders[i] = "?"
	}
	return fmt.Sprintf(`INSERT INTO "%s" (%s) VALUES (%s)`,
		tableName, strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
}
