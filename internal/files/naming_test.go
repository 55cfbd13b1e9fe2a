package files

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOutputNames(t *testing.T) {
	now := time.Date(2026, time.August, 25, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, "cleaned_commercial_20260825.csv", CleanedFileName("commercial", now))
	assert.Equal(t, "cleaned_non_commercial_20260825.csv", CleanedFileName("non_commercial", now))
	assert.Equal(t, "cleaning_summary_20260825.json", SummaryFileName(now))
}
