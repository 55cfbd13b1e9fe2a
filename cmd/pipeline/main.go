// Command pipeline runs the full cleaning run for both dataset variants:
// discover inputs, validate, filter, export cleaned CSVs and write the
// combined summary JSON.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"fisheriescli/internal/config"
	"fisheriescli/internal/infrastructure"
	"fisheriescli/internal/pipeline"
	"fisheriescli/internal/schema"
)

func main() {
	configFile := flag.String("config", "", "path to YAML config file (optional)")
	inputDir := flag.String("input", "", "input directory with tidied datasets (overrides config)")
	outputDir := flag.String("output", "", "output directory for cleaned artifacts (overrides config)")
	rulesFile := flag.String("rules", "", "path to YAML rule overrides (optional)")
	removeAggregates := flag.Bool("remove-aggregates", true, "remove All Species / All Ecosystems rollup rows")
	removeDisplay := flag.Bool("remove-display", false, "drop display-only columns (*_olelo, *_formatted)")
	strict := flag.Bool("strict", false, "treat data-quality warnings as fatal")
	sqliteExport := flag.Bool("sqlite", false, "also export cleaned tables to a SQLite database")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Flags override both the config file and environment, but only when
	// actually passed; otherwise a bool flag's default would clobber the
	// configured value.
	if *inputDir != "" {
		cfg.Paths.InputDir = *inputDir
	}
	if *outputDir != "" {
		cfg.Paths.OutputDir = *outputDir
	}
	if *rulesFile != "" {
		cfg.Pipeline.RulesFile = *rulesFile
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "remove-aggregates":
			cfg.Pipeline.RemoveAggregates = *removeAggregates
		case "remove-display":
			cfg.Pipeline.RemoveDisplay = *removeDisplay
		case "strict":
			cfg.Pipeline.Strict = *strict
		case "sqlite":
			cfg.Pipeline.SQLiteExport = *sqliteExport
		}
	})

	cfg.Logging.FilePath = cfg.LogFilePath()
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	rules, err := schema.LoadRuleSet(cfg.Pipeline.RulesFile)
	if err != nil {
		logger.Error("Failed to load rule set", "error", err)
		os.Exit(1)
	}

	ctx := infrastructure.WithRunID(context.Background(), infrastructure.NewRunID())

	report, err := pipeline.NewOrchestrator(cfg, rules, logger).Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Cleaning run failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Summary written to %s\n", report.SummaryPath)
	if report.Failed() {
		// One variant survived; report the failure and signal it in the exit
		// code so schedulers notice.
		if report.CommercialErr != nil {
			fmt.Fprintf(os.Stderr, "commercial variant failed: %v\n", report.CommercialErr)
		}
		if report.NonCommercialErr != nil {
			fmt.Fprintf(os.Stderr, "non-commercial variant failed: %v\n", report.NonCommercialErr)
		}
		os.Exit(2)
	}
}
