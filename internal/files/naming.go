package files

import (
	"fmt"
	"time"
)

const dateLayout = "20060102"

// CleanedFileName returns the output name for a variant's cleaned dataset,
// e.g. cleaned_commercial_20260825.csv.
func CleanedFileName(variant string, now time.Time) string {
	return fmt.Sprintf("cleaned_%s_%s.csv", variant, now.Format(dateLayout))
}

// SummaryFileName returns the output name for the combined run summary,
// e.g. cleaning_summary_20260825.json.
func SummaryFileName(now time.Time) string {
	return fmt.Sprintf("cleaning_summary_%s.json", now.Format(dateLayout))
}

// DatabaseFileName is the fixed name of the optional SQLite artifact. It is
// not timestamped; each run replaces the variant tables in place.
const DatabaseFileName = "fisheries_ev.db"
