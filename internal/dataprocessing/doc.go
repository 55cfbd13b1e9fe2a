// Package dataprocessing implements the validation-and-filtering core of the
// fisheries exchange-value cleaning pipeline.
//
// The three components share one design across both dataset variants and are
// parameterized by a schema.Rules value:
//
//   - Validator: checks a loaded table against the rules (column presence,
//     types, ranges, categorical membership) and produces a Report. Only a
//     missing required column is fatal; everything else is a data-quality
//     warning. The validator never mutates the table and never drops rows.
//   - Transformer: optionally removes aggregate rollup rows and display-only
//     columns, producing a derived table. The original stays intact for the
//     summarizer's raw/cleaned comparison.
//   - Summarizer: computes the summary statistics record (row counts, year
//     range, value totals, distinct categorical values) from the raw and
//     cleaned tables.
package dataprocessing
