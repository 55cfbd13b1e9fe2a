package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"fisheriescli/internal/config"
	"fisheriescli/internal/dataprocessing"
	apperrors "fisheriescli/internal/errors"
	"fisheriescli/internal/exporter"
	"fisheriescli/internal/files"
	"fisheriescli/internal/infrastructure"
	"fisheriescli/internal/schema"
	"fisheriescli/internal/validation"
	"fisheriescli/pkg/contracts/domain"
)

// RunReport is what one full invocation produced: both variant outcomes and
// the combined summary document that was written.
type RunReport struct {
	Commercial       *VariantResult
	NonCommercial    *VariantResult
	CommercialErr    error
	NonCommercialErr error
	Summary          domain.CombinedSummary
	SummaryPath      string
}

// Failed reports whether any variant failed.
func (r *RunReport) Failed() bool {
	return r.CommercialErr != nil || r.NonCommercialErr != nil
}

// Orchestrator runs both dataset variants and merges their results. The
// variants are independent; one failing never stops the other.
type Orchestrator struct {
	logger *slog.Logger
	cfg    *config.Config
	rules  schema.RuleSet
	now    func() time.Time
}

// NewOrchestrator creates an orchestrator. A nil logger falls back to
// slog.Default.
func NewOrchestrator(cfg *config.Config, rules schema.RuleSet, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		logger: logger,
		cfg:    cfg,
		rules:  rules,
		now:    time.Now,
	}
}

// Run executes the full cleaning run. The combined summary is written even
// when a variant failed; its entry is null and the overall block is omitted.
// The returned error is non-nil only when no variant succeeded or an output
// artifact could not be written.
func (o *Orchestrator) Run(ctx context.Context) (*RunReport, error) {
	if infrastructure.RunIDFromContext(ctx) == "" {
		ctx = infrastructure.WithRunID(ctx, infrastructure.NewRunID())
	}
	runID := infrastructure.RunIDFromContext(ctx)
	startedAt := o.now()

	o.logger.InfoContext(ctx, "cleaning run started",
		slog.String("input_dir", o.cfg.Paths.InputDir),
		slog.String("output_dir", o.cfg.Paths.OutputDir))

	preflight := validation.NewFileValidator(o.logger)
	if err := preflight.ValidateInputDirectory(o.cfg.Paths.InputDir); err != nil {
		return nil, apperrors.NewConfigError("input directory preflight failed", err)
	}
	if err := preflight.ValidateOutputDirectory(o.cfg.Paths.OutputDir); err != nil {
		return nil, apperrors.NewConfigError("output directory preflight failed", err)
	}

	runner := NewRunner(o.logger, RunnerOptions{
		InputDir:  o.cfg.Paths.InputDir,
		OutputDir: o.cfg.Paths.OutputDir,
		Strict:    o.cfg.Pipeline.Strict,
		Transform: dataprocessing.TransformOptions{
			RemoveAggregates:     o.cfg.Pipeline.RemoveAggregates,
			RemoveDisplay:        o.cfg.Pipeline.RemoveDisplay,
			DropUnparsableValues: true,
		},
	})

	report := &RunReport{}

	// Plain errgroup, no shared cancellation: a fatal finding in one variant
	// must not interrupt the other.
	var g errgroup.Group
	g.Go(func() error {
		report.Commercial, report.CommercialErr = runner.Run(ctx, o.rules.Commercial)
		return nil
	})
	g.Go(func() error {
		report.NonCommercial, report.NonCommercialErr = runner.Run(ctx, o.rules.NonCommercial)
		return nil
	})
	_ = g.Wait()

	o.logVariantOutcome(ctx, report.Commercial, report.CommercialErr)
	o.logVariantOutcome(ctx, report.NonCommercial, report.NonCommercialErr)

	report.Summary = o.combineSummaries(runID, startedAt, report)

	report.SummaryPath = filepath.Join(o.cfg.Paths.OutputDir, files.SummaryFileName(startedAt))
	if err := exporter.NewSummaryWriter(o.logger).Write(ctx, report.SummaryPath, report.Summary); err != nil {
		return report, err
	}

	if o.cfg.Pipeline.SQLiteExport {
		if err := o.exportSQLite(ctx, report); err != nil {
			return report, err
		}
	}

	if report.CommercialErr != nil && report.NonCommercialErr != nil {
		return report, apperrors.NewValidationError("both variant pipelines failed")
	}

	return report, nil
}

func (o *Orchestrator) logVariantOutcome(ctx context.Context, result *VariantResult, err error) {
	if err != nil {
		o.logger.ErrorContext(ctx, "variant pipeline failed",
			slog.String("variant", result.Variant),
			slog.String("error", err.Error()))
		return
	}
	o.logger.InfoContext(ctx, "variant pipeline succeeded",
		slog.String("variant", result.Variant),
		slog.String("output", result.OutputPath))
}

// combineSummaries builds the run document. The overall block is present only
// when both variants succeeded; a partial run has nothing meaningful to sum.
func (o *Orchestrator) combineSummaries(runID string, startedAt time.Time, report *RunReport) domain.CombinedSummary {
	summary := domain.CombinedSummary{
		PipelineTimestamp: startedAt.Format(time.RFC3339),
		RunID:             runID,
	}

	if report.CommercialErr == nil {
		summary.Commercial = &report.Commercial.Summary
	}
	if report.NonCommercialErr == nil {
		summary.NonCommercial = &report.NonCommercial.Summary
	}

	if summary.Commercial != nil && summary.NonCommercial != nil {
		summary.Overall = &domain.OverallSummary{
			TotalRecords:       summary.Commercial.CleanedRowCount + summary.NonCommercial.CleanedRowCount,
			TotalExchangeValue: summary.Commercial.TotalExchangeValue + summary.NonCommercial.TotalExchangeValue,
			CombinedDateRange:  combineYearRanges(summary.Commercial.DateRange, summary.NonCommercial.DateRange),
		}
	}

	return summary
}

func combineYearRanges(a, b domain.YearRange) domain.YearRange {
	zero := domain.YearRange{}
	if a == zero {
		return b
	}
	if b == zero {
		return a
	}

	combined := a
	if b.MinYear < combined.MinYear {
		combined.MinYear = b.MinYear
	}
	if b.MaxYear > combined.MaxYear {
		combined.MaxYear = b.MaxYear
	}
	return combined
}

func (o *Orchestrator) exportSQLite(ctx context.Context, report *RunReport) error {
	dbPath := filepath.Join(o.cfg.Paths.OutputDir, files.DatabaseFileName)
	sqlite := exporter.NewSQLiteExporter(o.logger)

	if report.CommercialErr == nil {
		if err := sqlite.ExportTable(ctx, dbPath, schema.VariantCommercial, report.Commercial.Cleaned); err != nil {
			return err
		}
	}
	if report.NonCommercialErr == nil {
		if err := sqlite.ExportTable(ctx, dbPath, schema.VariantNonCommercial, report.NonCommercial.Cleaned); err != nil {
			return err
		}
	}
	return nil
}
