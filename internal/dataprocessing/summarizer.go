package dataprocessing

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"fisheriescli/internal/dataset"
	"fisheriescli/internal/schema"
	"fisheriescli/pkg/contracts/domain"
)

// Summarizer computes the per-variant summary statistics record from the raw
// and cleaned tables. It is a pure computation with no side effects; nothing
// here re-runs validation.
type Summarizer struct {
	logger *slog.Logger
}

// NewSummarizer creates a summarizer. A nil logger falls back to
// slog.Default.
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger}
}

// Summarize builds the SummaryRecord for one variant. Distinct-value lists
// are sorted (lexicographically, or numerically for area IDs) so output is
// reproducible run to run.
func (s *Summarizer) Summarize(ctx context.Context, raw, cleaned *dataset.Table, rules schema.Rules) domain.SummaryRecord {
	record := domain.SummaryRecord{
		DataType:            rules.Variant,
		ProcessingTimestamp: time.Now().Format(time.RFC3339),
		RawRowCount:         raw.RowCount(),
		CleanedRowCount:     cleaned.RowCount(),
		RowsRemoved:         raw.RowCount() - cleaned.RowCount(),
	}

	record.DateRange = yearRange(cleaned)
	record.TotalExchangeValue = totalExchangeValue(cleaned)

	record.UniqueCounties = sortedDistinct(cleaned, schema.ColCounty)
	record.UniqueSpeciesGroups = sortedDistinct(cleaned, schema.ColSpeciesGroup)
	record.UniqueEcosystemTypes = sortedDistinct(cleaned, schema.ColEcosystemType)

	switch rules.Variant {
	case schema.VariantCommercial:
		record.UniqueAreaIDs = sortedDistinctInts(cleaned, schema.ColAreaID)
	case schema.VariantNonCommercial:
		record.UniqueIslands = sortedDistinct(cleaned, schema.ColIsland)
	}

	record.RecordsByYear, record.TotalValueByYear = byYear(cleaned)

	s.logger.InfoContext(ctx, "summary generated",
		slog.String("variant", rules.Variant),
		slog.Int("raw_rows", record.RawRowCount),
		slog.Int("cleaned_rows", record.CleanedRowCount),
		slog.Float64("total_exchange_value", record.TotalExchangeValue))

	return record
}

// yearRange scans the cleaned table's year column. An empty table (or one
// with no parsable years) yields the zero range.
func yearRange(table *dataset.Table) domain.YearRange {
	var r domain.YearRange
	seen := false

	for row := 0; row < table.RowCount(); row++ {
		year, err := table.IntValue(row, schema.ColYear)
		if err != nil {
			continue
		}
		if !seen || year < r.MinYear {
			r.MinYear = year
		}
		if !seen || year > r.MaxYear {
			r.MaxYear = year
		}
		seen = true
	}

	return r
}

// totalExchangeValue sums the cleaned table's exchange values, 0.0 if empty.
func totalExchangeValue(table *dataset.Table) float64 {
	total := 0.0
	for row := 0; row < table.RowCount(); row++ {
		if value, err := table.FloatValue(row, schema.ColExchangeValue); err == nil {
			total += value
		}
	}
	return total
}

// byYear groups row counts and value totals by year.
func byYear(table *dataset.Table) (map[int]int, map[int]float64) {
	if table.RowCount() == 0 {
		return nil, nil
	}

	counts := make(map[int]int)
	totals := make(map[int]float64)
	for row := 0; row < table.RowCount(); row++ {
		year, err := table.IntValue(row, schema.ColYear)
		if err != nil {
			continue
		}
		counts[year]++
		if value, err := table.FloatValue(row, schema.ColExchangeValue); err == nil {
			totals[year] += value
		}
	}

	if len(counts) == 0 {
		return nil, nil
	}
	return counts, totals
}

func sortedDistinct(table *dataset.Table, column string) []string {
	values := table.DistinctValues(column)
	sort.Strings(values)
	return values
}

func sortedDistinctInts(table *dataset.Table, column string) []int {
	seen := make(map[int]bool)
	var values []int
	for row := 0; row < table.RowCount(); row++ {
		v, err := table.IntValue(row, column)
		if err != nil || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Ints(values)
	return values
}
