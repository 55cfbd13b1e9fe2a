package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"fisheriescli/internal/dataprocessing"
	"fisheriescli/internal/dataset"
	apperrors "fisheriescli/internal/errors"
	"fisheriescli/internal/exporter"
	"fisheriescli/internal/files"
	"fisheriescli/internal/loader"
	"fisheriescli/internal/schema"
	"fisheriescli/internal/validation"
	"fisheriescli/pkg/contracts/domain"
)

// RunnerOptions configures a per-variant runner.
type RunnerOptions struct {
	InputDir  string
	OutputDir string
	Strict    bool
	Transform dataprocessing.TransformOptions
}

// VariantResult carries everything one variant's run produced. Report is set
// as soon as validation ran, even when the run then failed.
type VariantResult struct {
	Variant    string
	InputPath  string
	OutputPath string
	Report     *dataprocessing.Report
	Cleaned    *dataset.Table
	Summary    domain.SummaryRecord
}

// Runner executes the cleaning sequence for one dataset variant: discover the
// input, preflight it, load, validate, transform, export the cleaned CSV and
// summarize.
type Runner struct {
	logger      *slog.Logger
	opts        RunnerOptions
	discovery   *files.Discovery
	preflight   *validation.FileValidator
	validator   *dataprocessing.Validator
	transformer *dataprocessing.Transformer
	summarizer  *dataprocessing.Summarizer
	csvWriter   *exporter.CSVWriter

	// now is swappable for deterministic output names in tests.
	now func() time.Time
}

// NewRunner creates a runner. A nil logger falls back to slog.Default.
func NewRunner(logger *slog.Logger, opts RunnerOptions) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		logger:      logger,
		opts:        opts,
		discovery:   files.NewDiscovery(opts.InputDir),
		preflight:   validation.NewFileValidator(logger),
		validator:   dataprocessing.NewValidator(logger, dataprocessing.ValidatorOptions{StrictMode: opts.Strict}),
		transformer: dataprocessing.NewTransformer(logger),
		summarizer:  dataprocessing.NewSummarizer(logger),
		csvWriter:   exporter.NewCSVWriter(logger),
		now:         time.Now,
	}
}

// Run executes the variant's pipeline. A fatal validation finding stops this
// variant only; the returned result still carries the report so callers can
// show what failed.
func (r *Runner) Run(ctx context.Context, rules schema.Rules) (*VariantResult, error) {
	result := &VariantResult{Variant: rules.Variant}

	input, err := r.discovery.FindVariantInput(rules.Variant)
	if err != nil {
		return result, err
	}
	result.InputPath = input.Path

	r.logger.InfoContext(ctx, "input discovered",
		slog.String("variant", rules.Variant),
		slog.String("path", input.Path))

	if err := r.preflight.ValidateInputFile(input.Path); err != nil {
		return result, apperrors.NewLoadError("input preflight failed", err).
			WithContext("variant", rules.Variant).
			WithContext("path", input.Path)
	}

	raw, err := loader.Load(input.Path)
	if err != nil {
		return result, err
	}

	result.Report = r.validator.Validate(ctx, raw, rules)
	if result.Report.Fatal() {
		return result, apperrors.NewValidationError("validation failed with fatal findings").
			WithContext("variant", rules.Variant).
			WithContext("missing_columns", result.Report.MissingColumns())
	}

	result.Cleaned = r.transformer.Transform(ctx, raw, rules, r.opts.Transform)

	result.OutputPath = filepath.Join(r.opts.OutputDir, files.CleanedFileName(rules.Variant, r.now()))
	if err := r.csvWriter.WriteTable(ctx, result.OutputPath, result.Cleaned, exporter.WriteOptions{BOMPrefix: true}); err != nil {
		return result, err
	}

	result.Summary = r.summarizer.Summarize(ctx, raw, result.Cleaned, rules)

	r.logger.InfoContext(ctx, "variant pipeline complete",
		slog.String("variant", rules.Variant),
		slog.Int("raw_rows", result.Summary.RawRowCount),
		slog.Int("cleaned_rows", result.Summary.CleanedRowCount),
		slog.Int("warnings", result.Report.WarningCount()))

	return result, nil
}
