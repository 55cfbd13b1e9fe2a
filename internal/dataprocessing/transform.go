package dataprocessing

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"fisheriescli/internal/dataset"
	"fisheriescli/internal/schema"
)

// TransformOptions are the cleaning switches. They are always supplied
// explicitly by the caller; there is no hidden default state.
type TransformOptions struct {
	// RemoveAggregates drops rows carrying a rollup marker ("All Species",
	// "All Ecosystems") to prevent double-counting.
	RemoveAggregates bool
	// RemoveDisplay drops the presentation-only columns (*_olelo,
	// *_formatted) from every surviving row.
	RemoveDisplay bool
	// DropUnparsableValues drops rows whose exchange value is empty or does
	// not parse as a number; such rows cannot be used in analysis. This
	// mirrors the null/NA removal the upstream tidying already performs and
	// is distinct from the warn-don't-drop policy for range and categorical
	// violations.
	DropUnparsableValues bool
}

// DefaultTransformOptions returns the documented defaults: aggregates
// removed, display columns kept, unusable values dropped.
func DefaultTransformOptions() TransformOptions {
	return TransformOptions{
		RemoveAggregates:     true,
		RemoveDisplay:        false,
		DropUnparsableValues: true,
	}
}

// Transformer filters a validated table. It only ever deletes rows or
// columns; no values are modified and no rows are added. The input table is
// left intact so the summarizer can compare raw against cleaned.
type Transformer struct {
	logger *slog.Logger
}

// NewTransformer creates a transformer. A nil logger falls back to
// slog.Default.
func NewTransformer(logger *slog.Logger) *Transformer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Transformer{logger: logger}
}

// Transform applies the cleaning switches and returns the derived table.
// Row filtering and column dropping are independent; applying them in either
// order yields the same result, and re-running on already-cleaned output is a
// no-op.
func (t *Transformer) Transform(ctx context.Context, table *dataset.Table, rules schema.Rules, opts TransformOptions) *dataset.Table {
	cleaned := table

	if opts.DropUnparsableValues {
		before := cleaned.RowCount()
		cleaned = dropUnparsableValues(cleaned)
		if removed := before - cleaned.RowCount(); removed > 0 {
			t.logger.InfoContext(ctx, "removed rows with unusable exchange values",
				slog.String("variant", rules.Variant),
				slog.Int("removed", removed))
		}
	}

	if opts.RemoveAggregates {
		before := cleaned.RowCount()
		cleaned = removeAggregateRows(cleaned, rules)
		t.logger.InfoContext(ctx, "aggregate row removal",
			slog.String("variant", rules.Variant),
			slog.Int("removed", before-cleaned.RowCount()))
	}

	if opts.RemoveDisplay {
		beforeColumns := len(cleaned.Columns())
		cleaned = cleaned.DropColumns(rules.DisplayColumns...)
		t.logger.InfoContext(ctx, "display column removal",
			slog.String("variant", rules.Variant),
			slog.Int("removed", beforeColumns-len(cleaned.Columns())))
	}

	return cleaned
}

// removeAggregateRows drops every row whose species_group or ecosystem_type
// equals the variant's aggregate marker. The conditions combine with OR; a
// row matching both markers is removed once.
func removeAggregateRows(table *dataset.Table, rules schema.Rules) *dataset.Table {
	return table.FilterRows(func(row int) bool {
		for column, marker := range rules.AggregateMarkers {
			if value, ok := table.Value(row, column); ok && value == marker {
				return false
			}
		}
		return true
	})
}

// dropUnparsableValues removes rows whose exchange_value does not parse as a
// real number.
func dropUnparsableValues(table *dataset.Table) *dataset.Table {
	if !table.HasColumn(schema.ColExchangeValue) {
		return table
	}
	return table.FilterRows(func(row int) bool {
		raw, _ := table.Value(row, schema.ColExchangeValue)
		_, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		return err == nil
	})
}
