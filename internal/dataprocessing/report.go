package dataprocessing

import (
	"fmt"
	"strings"
)

// Severity of a validation finding.
type Severity string

const (
	// SeverityFatal halts the variant's pipeline before the Transformer and
	// Summarizer run.
	SeverityFatal Severity = "fatal"
	// SeverityWarning is logged and reported but never removes rows.
	SeverityWarning Severity = "warning"
)

// Check names, in execution order.
const (
	CheckColumnPresence = "column_presence"
	CheckTypes          = "type_conformance"
	CheckRanges         = "range_conformance"
	CheckCategories     = "categorical_conformance"
)

// Violation pins one finding to a data row.
type Violation struct {
	Row    int    // zero-based data row index
	Column string
	Value  string
	Reason string
}

func (v Violation) String() string {
	return fmt.Sprintf("row %d, column %q: %s (value: %q)", v.Row, v.Column, v.Reason, v.Value)
}

// CheckResult is the outcome of one check category.
type CheckResult struct {
	Name       string
	Severity   Severity
	Passed     bool
	Violations []Violation
	// MissingColumns is set by the column-presence check only.
	MissingColumns []string
}

// Report is the full validation outcome for one table.
type Report struct {
	Variant string
	Checks  []CheckResult
}

// Fatal reports whether validation found a structural failure.
func (r *Report) Fatal() bool {
	for _, c := range r.Checks {
		if !c.Passed && c.Severity == SeverityFatal {
			return true
		}
	}
	return false
}

// MissingColumns returns the required columns absent from the table.
func (r *Report) MissingColumns() []string {
	for _, c := range r.Checks {
		if c.Name == CheckColumnPresence {
			return c.MissingColumns
		}
	}
	return nil
}

// WarningCount returns the total number of warning-level violations.
func (r *Report) WarningCount() int {
	count := 0
	for _, c := range r.Checks {
		if c.Severity == SeverityWarning {
			count += len(c.Violations)
		}
	}
	return count
}

// Passed reports whether every check passed with no findings at all.
func (r *Report) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Format renders the report for logs or the diagnostics output.
func (r *Report) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "validation report for %s dataset:\n", r.Variant)
	for _, c := range r.Checks {
		status := "pass"
		if !c.Passed {
			status = string(c.Severity)
		}
		fmt.Fprintf(&b, "  %-24s %s", c.Name, status)
		if len(c.MissingColumns) > 0 {
			fmt.Fprintf(&b, " (missing: %s)", strings.Join(c.MissingColumns, ", "))
		}
		if len(c.Violations) > 0 {
			fmt.Fprintf(&b, " (%d violations)", len(c.Violations))
		}
		b.WriteString("\n")
		for _, v := range c.Violations {
			fmt.Fprintf(&b, "    %s\n", v)
		}
	}
	return b.String()
}
