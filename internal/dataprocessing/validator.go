package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"fisheriescli/internal/dataset"
	"fisheriescli/internal/schema"
)

// ValidatorOptions contains options for validation.
type ValidatorOptions struct {
	// StrictMode treats data-quality warnings as fatal, halting the pipeline.
	// The check logic is identical either way; the upstream data is normally
	// trusted, so warnings stay advisory by default.
	StrictMode bool
}

// Validator checks a loaded table against a rule set without mutating it.
type Validator struct {
	logger *slog.Logger
	opts   ValidatorOptions
}

// NewValidator creates a validator. A nil logger falls back to slog.Default.
func NewValidator(logger *slog.Logger, opts ValidatorOptions) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{logger: logger, opts: opts}
}

// Validate runs the check categories in fixed order and returns the report.
// A missing required column is fatal: later checks are skipped because their
// results would be meaningless against a structurally broken table. All other
// findings are warnings; rows are never dropped here.
func (v *Validator) Validate(ctx context.Context, table *dataset.Table, rules schema.Rules) *Report {
	report := &Report{Variant: rules.Variant}

	presence := v.checkColumnPresence(table, rules)
	report.Checks = append(report.Checks, presence)
	if !presence.Passed {
		v.logger.ErrorContext(ctx, "required columns missing, halting validation",
			slog.String("variant", rules.Variant),
			slog.Any("missing_columns", presence.MissingColumns))
		return report
	}

	report.Checks = append(report.Checks,
		v.checkTypes(ctx, table, rules),
		v.checkRanges(ctx, table, rules),
		v.checkCategories(ctx, table, rules),
	)

	if v.opts.StrictMode {
		for i := range report.Checks {
			if !report.Checks[i].Passed {
				report.Checks[i].Severity = SeverityFatal
			}
		}
	}

	v.logger.InfoContext(ctx, "validation complete",
		slog.String("variant", rules.Variant),
		slog.Int("rows", table.RowCount()),
		slog.Int("warnings", report.WarningCount()),
		slog.Bool("fatal", report.Fatal()))

	return report
}

// checkColumnPresence verifies every required column exists.
func (v *Validator) checkColumnPresence(table *dataset.Table, rules schema.Rules) CheckResult {
	result := CheckResult{Name: CheckColumnPresence, Severity: SeverityFatal, Passed: true}

	for _, name := range rules.RequiredColumns {
		if !table.HasColumn(name) {
			result.MissingColumns = append(result.MissingColumns, name)
		}
	}
	result.Passed = len(result.MissingColumns) == 0

	return result
}

// checkTypes verifies that integer columns parse as integers and the
// exchange value parses as a real number.
func (v *Validator) checkTypes(ctx context.Context, table *dataset.Table, rules schema.Rules) CheckResult {
	result := CheckResult{Name: CheckTypes, Severity: SeverityWarning, Passed: true}

	for column, colType := range rules.ColumnTypes {
		if !table.HasColumn(column) {
			continue
		}
		for row := 0; row < table.RowCount(); row++ {
			raw, _ := table.Value(row, column)
			value := strings.TrimSpace(raw)

			var reason string
			switch colType {
			case schema.TypeInt:
				if _, err := strconv.Atoi(value); err != nil {
					reason = "not a valid integer"
				}
			case schema.TypeFloat:
				if _, err := strconv.ParseFloat(value, 64); err != nil {
					reason = "not a valid number"
				}
			}

			if reason != "" {
				result.Violations = append(result.Violations, Violation{
					Row: row, Column: column, Value: raw, Reason: reason,
				})
			}
		}
	}

	if len(result.Violations) > 0 {
		result.Passed = false
		v.logger.WarnContext(ctx, "type conformance violations",
			slog.String("variant", rules.Variant),
			slog.Int("count", len(result.Violations)))
	}

	return result
}

// checkRanges verifies year bounds, non-negative exchange values and, for the
// commercial variant, the DAR area_id bounds. Values that already failed to
// parse are skipped here; the type check reported them.
func (v *Validator) checkRanges(ctx context.Context, table *dataset.Table, rules schema.Rules) CheckResult {
	result := CheckResult{Name: CheckRanges, Severity: SeverityWarning, Passed: true}

	for row := 0; row < table.RowCount(); row++ {
		if year, err := table.IntValue(row, schema.ColYear); err == nil {
			if !rules.YearBounds.Contains(year) {
				raw, _ := table.Value(row, schema.ColYear)
				result.Violations = append(result.Violations, Violation{
					Row: row, Column: schema.ColYear, Value: raw,
					Reason: fmt.Sprintf("year outside expected range %d-%d", rules.YearBounds.Min, rules.YearBounds.Max),
				})
			}
		}

		if value, err := table.FloatValue(row, schema.ColExchangeValue); err == nil {
			if value < 0 {
				raw, _ := table.Value(row, schema.ColExchangeValue)
				result.Violations = append(result.Violations, Violation{
					Row: row, Column: schema.ColExchangeValue, Value: raw,
					Reason: "negative exchange value",
				})
			}
		}

		if rules.AreaIDBounds != nil {
			if areaID, err := table.IntValue(row, schema.ColAreaID); err == nil {
				if !rules.AreaIDBounds.Contains(areaID) {
					raw, _ := table.Value(row, schema.ColAreaID)
					result.Violations = append(result.Violations, Violation{
						Row: row, Column: schema.ColAreaID, Value: raw,
						Reason: fmt.Sprintf("area_id outside expected range %d-%d", rules.AreaIDBounds.Min, rules.AreaIDBounds.Max),
					})
				}
			}
		}
	}

	if len(result.Violations) > 0 {
		result.Passed = false
		v.logger.WarnContext(ctx, "range conformance violations",
			slog.String("variant", rules.Variant),
			slog.Int("count", len(result.Violations)))
	}

	return result
}

// checkCategories verifies each categorical column's observed values against
// its declared closed set. The non-commercial "Herbivores only" constraint is
// covered here through that variant's one-member species set.
func (v *Validator) checkCategories(ctx context.Context, table *dataset.Table, rules schema.Rules) CheckResult {
	result := CheckResult{Name: CheckCategories, Severity: SeverityWarning, Passed: true}

	for column, allowed := range rules.CategoricalSets {
		if !table.HasColumn(column) {
			continue
		}

		allowedSet := make(map[string]bool, len(allowed))
		for _, value := range allowed {
			allowedSet[value] = true
		}

		for row := 0; row < table.RowCount(); row++ {
			value, _ := table.Value(row, column)
			if !allowedSet[value] {
				result.Violations = append(result.Violations, Violation{
					Row: row, Column: column, Value: value,
					Reason: "value not in declared set",
				})
			}
		}
	}

	if len(result.Violations) > 0 {
		result.Passed = false
		v.logger.WarnContext(ctx, "categorical conformance violations",
			slog.String("variant", rules.Variant),
			slog.Int("count", len(result.Violations)))
	}

	return result
}
