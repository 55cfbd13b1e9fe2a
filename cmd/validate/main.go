// Command validate runs discovery, loading and validation for one or both
// dataset variants and prints the report without writing any outputs. It is
// the quick data-quality check operators run after receiving a new drop.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"fisheriescli/internal/config"
	"fisheriescli/internal/dataprocessing"
	"fisheriescli/internal/files"
	"fisheriescli/internal/infrastructure"
	"fisheriescli/internal/loader"
	"fisheriescli/internal/schema"
	"fisheriescli/internal/validation"
)

func main() {
	configFile := flag.String("config", "", "path to YAML config file (optional)")
	inputDir := flag.String("input", "", "input directory with tidied datasets (overrides config)")
	rulesFile := flag.String("rules", "", "path to YAML rule overrides (optional)")
	variantFlag := flag.String("variant", "", "validate a single variant: commercial or non_commercial (default both)")
	strict := flag.Bool("strict", false, "treat data-quality warnings as fatal")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *inputDir != "" {
		cfg.Paths.InputDir = *inputDir
	}
	if *rulesFile != "" {
		cfg.Pipeline.RulesFile = *rulesFile
	}

	// Console-only logging; this command is interactive diagnostics.
	cfg.Logging.Output = "console"
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	ruleSet, err := schema.LoadRuleSet(cfg.Pipeline.RulesFile)
	if err != nil {
		logger.Error("Failed to load rule set", "error", err)
		os.Exit(1)
	}

	var variants []schema.Rules
	switch *variantFlag {
	case "":
		variants = []schema.Rules{ruleSet.Commercial, ruleSet.NonCommercial}
	case schema.VariantCommercial:
		variants = []schema.Rules{ruleSet.Commercial}
	case schema.VariantNonCommercial:
		variants = []schema.Rules{ruleSet.NonCommercial}
	default:
		fmt.Fprintf(os.Stderr, "unknown variant %q\n", *variantFlag)
		os.Exit(1)
	}

	ctx := infrastructure.WithRunID(context.Background(), infrastructure.NewRunID())
	discovery := files.NewDiscovery(cfg.Paths.InputDir)
	preflight := validation.NewFileValidator(logger)
	validator := dataprocessing.NewValidator(logger, dataprocessing.ValidatorOptions{StrictMode: *strict})

	exitCode := 0
	for _, rules := range variants {
		input, err := discovery.FindVariantInput(rules.Variant)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", rules.Variant, err)
			exitCode = 1
			continue
		}
		if err := preflight.ValidateInputFile(input.Path); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", rules.Variant, err)
			exitCode = 1
			continue
		}

		table, err := loader.Load(input.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", rules.Variant, err)
			exitCode = 1
			continue
		}

		report := validator.Validate(ctx, table, rules)
		fmt.Println(report.Format())
		if report.Fatal() {
			exitCode = 1
		}
	}

	os.Exit(exitCode)
}
