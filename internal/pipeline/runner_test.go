package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fisheriescli/internal/dataprocessing"
	apperrors "fisheriescli/internal/errors"
	"fisheriescli/internal/schema"
)

const commercialHeader = "year,area_id,county,county_olelo,species_group,ecosystem_type,exchange_value,exchange_value_formatted\n"

const commercialFixture = commercialHeader +
	"2021,10,Maui,Maui,Deep 7 Bottomfish,Inshore — Reef,10289,\"$10,289\"\n" +
	"2021,10,Maui,Maui,Deep 7 Bottomfish,Coastal — Open Ocean,0,$0\n" +
	"2021,10,Maui,Maui,Deep 7 Bottomfish,All Ecosystems,10289,\"$10,289\"\n" +
	"2021,10,Maui,Maui,All Species,All Ecosystems,10289,\"$10,289\"\n"

const nonCommercialFixture = "year,island,island_olelo,county,county_olelo,species_group,ecosystem_type,exchange_value,exchange_value_formatted\n" +
	"2010,Oahu,Oʻahu,Honolulu,Honolulu,Herbivores,Inshore — Reef,250,$250\n" +
	"2010,Oahu,Oʻahu,Honolulu,Honolulu,Herbivores,All Ecosystems,250,$250\n"

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func newTestRunner(t *testing.T, inputDir string, opts RunnerOptions) *Runner {
	t.Helper()
	opts.InputDir = inputDir
	if opts.OutputDir == "" {
		opts.OutputDir = t.TempDir()
	}
	if opts.Transform == (dataprocessing.TransformOptions{}) {
		opts.Transform = dataprocessing.DefaultTransformOptions()
	}
	return NewRunner(nil, opts)
}

func TestRunner_CommercialEndToEnd(t *testing.T) {
	inputDir := t.TempDir()
	writeFixture(t, inputDir, "hi_dar_tidied_comm_ev.csv", commercialFixture)

	runner := newTestRunner(t, inputDir, RunnerOptions{})
	result, err := runner.Run(context.Background(), schema.Commercial())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(inputDir, "hi_dar_tidied_comm_ev.csv"), result.InputPath)
	require.NotNil(t, result.Report)
	assert.False(t, result.Report.Fatal())

	require.NotNil(t, result.Cleaned)
	assert.Equal(t, 2, result.Cleaned.RowCount(), "aggregate rollup rows removed")

	assert.Equal(t, 4, result.Summary.RawRowCount)
	assert.Equal(t, 2, result.Summary.CleanedRowCount)
	assert.Equal(t, 2, result.Summary.RowsRemoved)
	assert.InDelta(t, 10289.0, result.Summary.TotalExchangeValue, 1e-9)

	info, err := os.Stat(result.OutputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.Contains(t, filepath.Base(result.OutputPath), "cleaned_commercial_")
}

func TestRunner_FatalValidationHaltsVariant(t *testing.T) {
	inputDir := t.TempDir()
	writeFixture(t, inputDir, "tidied_comm_ev.csv",
		"year,county,species_group,ecosystem_type\n2021,Maui,Pelagics,Inshore — Reef\n")

	outputDir := t.TempDir()
	runner := newTestRunner(t, inputDir, RunnerOptions{OutputDir: outputDir})
	result, err := runner.Run(context.Background(), schema.Commercial())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeValidation, appErr.Type)

	require.NotNil(t, result.Report, "report is available even on failure")
	assert.True(t, result.Report.Fatal())
	assert.ElementsMatch(t, []string{"area_id", "exchange_value"}, result.Report.MissingColumns())

	entries, readErr := os.ReadDir(outputDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "no cleaned output for a failed variant")
}

func TestRunner_MissingInputFile(t *testing.T) {
	runner := newTestRunner(t, t.TempDir(), RunnerOptions{})

	_, err := runner.Run(context.Background(), schema.Commercial())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeNotFound, appErr.Type)
}

func TestRunner_StrictModeEscalatesWarnings(t *testing.T) {
	inputDir := t.TempDir()
	writeFixture(t, inputDir, "tidied_comm_ev.csv", commercialHeader+
		"1990,10,Maui,Maui,Pelagics,Inshore — Reef,100,$100\n")

	relaxed := newTestRunner(t, inputDir, RunnerOptions{})
	_, err := relaxed.Run(context.Background(), schema.Commercial())
	assert.NoError(t, err, "out-of-range year is a warning by default")

	strict := newTestRunner(t, inputDir, RunnerOptions{Strict: true})
	_, err = strict.Run(context.Background(), schema.Commercial())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeValidation, appErr.Type)
}
