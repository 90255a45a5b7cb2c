package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/taxon-engine/internal/enrich"
	"github.com/pdiddy/taxon-engine/internal/ipni"
	"github.com/pdiddy/taxon-engine/internal/powo"
	"github.com/pdiddy/taxon-engine/pkg/types"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultDelay     = 2 * time.Second
	defaultUserAgent = "taxon-engine/0.1"

	defaultInput  = "species_list.csv"
	defaultOutput = "species_results.csv"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich a CSV species list with POWO taxon URLs and synonyms",
	Long: `Enrich reads a CSV file with a Species column, resolves each name to an
IPNI registry identifier, fetches the matching POWO taxon page, and writes a
results table with the page URL and the extracted synonyms.

Rows that cannot be resolved or scraped are kept with sentinel values, so
the output always carries one row per input row, in input order.`,
	RunE: runEnrich,
}

func init() {
	enrichCmd.Flags().String("input", "", "input CSV with a Species column (default species_list.csv)")
	enrichCmd.Flags().String("output", "", "output CSV path (default species_results.csv)")
	enrichCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 10s)")
	enrichCmd.Flags().Duration("delay", 0, "pause after each resolved row (default 2s)")
	enrichCmd.Flags().String("report", "", "write a YAML run report to this path")

	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("enrich takes no positional arguments; use --input to point at a species list")
	}

	cfg := types.EnrichConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   durationSetting(cmd, "timeout", "enrich.timeout", defaultTimeout),
			UserAgent: defaultUserAgent,
		},
		RowDelay:   durationSetting(cmd, "delay", "enrich.row_delay", defaultDelay),
		InputPath:  stringSetting(cmd, "input", "enrich.input", defaultInput),
		OutputPath: stringSetting(cmd, "output", "enrich.output", defaultOutput),
		ReportPath: stringSetting(cmd, "report", "enrich.report", ""),
	}

	names, err := enrich.ReadSpecies(cfg.InputPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Loaded %d species from %s\n", len(names), cfg.InputPath)

	client := &http.Client{
		Timeout: cfg.Timeout,
	}
	pipeline := &enrich.Pipeline{
		Registry: &ipni.Client{HTTP: client, UserAgent: cfg.UserAgent},
		Taxa:     powo.NewClient(cfg.Timeout),
	}

	result := pipeline.EnrichBatch(context.Background(), names, cfg, os.Stdout)

	if err := enrich.WriteResults(cfg.OutputPath, result.Records); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Results saved to %s\n", cfg.OutputPath)

	if cfg.ReportPath != "" {
		if err := enrich.WriteReport(cfg.ReportPath, enrich.NewReport(cfg, result)); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Run report saved to %s\n", cfg.ReportPath)
	}

	// Degraded rows are already in the output with sentinel values; they
	// are worth a notice but not a failing exit.
	if result.HasFailures() {
		fmt.Fprintf(os.Stderr, "warning: %d row(s) degraded to sentinel values\n", len(result.Failures))
	}
	return nil
}
