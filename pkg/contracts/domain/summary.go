// Package domain defines the output contracts consumed by dashboards and
// analysis tools downstream of the cleaning pipeline. Field names are part of
// the published summary JSON format and must not change casually.
package domain

// YearRange is the observed min/max of the year column in a cleaned table.
type YearRange struct {
	MinYear int `json:"min_year"`
	MaxYear int `json:"max_year"`
}

// SummaryRecord describes one variant's cleaning run.
type SummaryRecord struct {
	DataType            string    `json:"data_type"`
	ProcessingTimestamp string    `json:"processing_timestamp"`
	RawRowCount         int       `json:"raw_row_count"`
	CleanedRowCount     int       `json:"cleaned_row_count"`
	RowsRemoved         int       `json:"rows_removed"`
	DateRange           YearRange `json:"date_range"`
	TotalExchangeValue  float64   `json:"total_exchange_value"`

	UniqueCounties       []string `json:"unique_counties"`
	UniqueSpeciesGroups  []string `json:"unique_species_groups"`
	UniqueEcosystemTypes []string `json:"unique_ecosystem_types"`
	// UniqueAreaIDs is populated for the commercial variant only.
	UniqueAreaIDs []int `json:"unique_area_ids,omitempty"`
	// UniqueIslands is populated for the non-commercial variant only.
	UniqueIslands []string `json:"unique_islands,omitempty"`

	RecordsByYear    map[int]int     `json:"records_by_year,omitempty"`
	TotalValueByYear map[int]float64 `json:"total_value_by_year,omitempty"`
}

// OverallSummary aggregates across variants; present only when every variant
// succeeded.
type OverallSummary struct {
	TotalRecords       int       `json:"total_records"`
	TotalExchangeValue float64   `json:"total_exchange_value"`
	CombinedDateRange  YearRange `json:"combined_date_range"`
}

// CombinedSummary is the single document written at the end of a run. A
// variant whose pipeline failed is nil; the run ID ties the document to the
// log stream that produced it.
type CombinedSummary struct {
	PipelineTimestamp string          `json:"pipeline_timestamp"`
	RunID             string          `json:"run_id"`
	Commercial        *SummaryRecord  `json:"commercial"`
	NonCommercial     *SummaryRecord  `json:"non_commercial"`
	Overall           *OverallSummary `json:"overall,omitempty"`
}
