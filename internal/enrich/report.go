// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/taxon-engine/pkg/types"
)

// Report summarizes an enrichment run for later inspection.
type Report struct {
	GeneratedAt time.Time     `yaml:"generated_at"`
	Input       string        `yaml:"input"`
	Output      string        `yaml:"output"`
	Timeout     string        `yaml:"timeout"`
	RowDelay    string        `yaml:"row_delay"`
	Summary     ReportSummary `yaml:"summary"`
	Failures    []RowFailure  `yaml:"failures,omitempty"`
}

// ReportSummary mirrors the batch counters.
type ReportSummary struct {
	Total      int `yaml:"total"`
	Enriched   int `yaml:"enriched"`
	Unmatched  int `yaml:"unmatched"`
	NoSynonyms int `yaml:"without_synonyms"`
}

// NewReport builds a run report from the batch outcome.
func NewReport(cfg types.EnrichConfig, result BatchResult) Report {
	return Report{
		GeneratedAt: time.Now().UTC(),
		Input:       cfg.InputPath,
		Output:      cfg.OutputPath,
		Timeout:     cfg.Timeout.String(),
		RowDelay:    cfg.RowDelay.String(),
		Summary: ReportSummary{
			Total:      result.Total(),
			Enriched:   result.Enriched,
			Unmatched:  result.Unmatched,
			NoSynonyms: result.NoSynonyms,
		},
		Failures: result.Failures,
	}
}

// WriteReport writes the report as YAML at path.
func WriteReport(path string, report Report) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshaling run report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing run report: %w", err)
	}
	return nil
}
