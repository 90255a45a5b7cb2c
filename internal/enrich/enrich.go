// Package enrich drives the synonym pipeline: resolve each species name
// to a registry identifier, fetch its taxon page, and tabulate the
// extracted synonyms.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/taxon-engine/internal/powo"
	"github.com/pdiddy/taxon-engine/pkg/types"
)

// Sentinel cell values for rows that could not be fully enriched.
const (
	notFound   = "Not Found"
	noSynonyms = "None"
)

// Failure stages recorded in run reports.
const (
	stageResolve  = "resolve"
	stageSynonyms = "synonyms"
)

// Resolver maps a species name to a bare registry identifier. An empty
// identifier with a nil error means the registry has no match.
type Resolver interface {
	ResolveID(ctx context.Context, name string) (string, error)
}

// SynonymSource extracts the synonym list from a taxon page.
type SynonymSource interface {
	Synonyms(ctx context.Context, pageURL string) ([]string, error)
}

// Pipeline enriches species names using a registry and a taxon page source.
type Pipeline struct {
	Registry Resolver
	Taxa     SynonymSource
}

// RowFailure records a row whose enrichment degraded to sentinel values
// because of an error rather than a clean no-match.
type RowFailure struct {
	Species string `yaml:"species"`
	Stage   string `yaml:"stage"`
	Error   string `yaml:"error"`
}

// BatchResult holds the outcome of a batch enrichment run.
type BatchResult struct {
	Enriched   int
	Unmatched  int
	NoSynonyms int
	Records    []types.EnrichedRecord
	Failures   []RowFailure
}

// Total returns the total number of rows processed.
func (r BatchResult) Total() int {
	return r.Enriched + r.Unmatched + r.NoSynonyms
}

// HasFailures reports whether any rows degraded because of an error.
func (r BatchResult) HasFailures() bool {
	return len(r.Failures) > 0
}

// EnrichSpecies processes a single species name. The returned record is
// always valid to emit: rows that cannot be resolved or scraped carry the
// sentinel values instead. resolved reports whether the row got as far as
// the taxon page, and a non-nil error is a diagnostic for a degraded row,
// never a reason to drop it.
func (p *Pipeline) EnrichSpecies(ctx context.Context, name string, w io.Writer) (rec types.EnrichedRecord, resolved bool, err error) {
	rec = types.EnrichedRecord{Species: name, TaxonURL: notFound, Synonyms: noSynonyms}
	fmt.Fprintf(w, "resolving: %s\n", name)

	id, err := p.Registry.ResolveID(ctx, name)
	if err != nil {
		return rec, false, fmt.Errorf("resolving %q: %w", name, err)
	}
	if id == "" {
		fmt.Fprintf(w, "  no registry match\n")
		return rec, false, nil
	}

	rec.TaxonURL = powo.TaxonURL(id)
	fmt.Fprintf(w, "  taxon page: %s\n", rec.TaxonURL)

	syns, err := p.Taxa.Synonyms(ctx, rec.TaxonURL)
	if err != nil {
		// A page without a synonym section is a valid outcome.
		if errors.Is(err, powo.ErrNoSynonymSection) {
			return rec, true, nil
		}
		return rec, true, fmt.Errorf("fetching synonyms for %q: %w", name, err)
	}
	if len(syns) > 0 {
		rec.Synonyms = strings.Join(syns, "; ")
	}
	return rec, true, nil
}

// EnrichBatch processes names in order, printing per-row status and
// returning a summary. Every input row yields exactly one output record;
// failures degrade the row to sentinel values and the run continues. The
// politeness delay applies after each row that reached the taxon page,
// so unresolved rows advance without waiting.
func (p *Pipeline) EnrichBatch(ctx context.Context, names []string, cfg types.EnrichConfig, w io.Writer) BatchResult {
	var result BatchResult
	for _, name := range names {
		rec, resolved, err := p.EnrichSpecies(ctx, name, w)
		if err != nil {
			fmt.Fprintf(w, "  warning: %v\n", err)
			stage := stageResolve
			if resolved {
				stage = stageSynonyms
			}
			result.Failures = append(result.Failures, RowFailure{Species: name, Stage: stage, Error: err.Error()})
		}

		switch {
		case !resolved:
			result.Unmatched++
		case rec.Synonyms == noSynonyms:
			result.NoSynonyms++
		default:
			result.Enriched++
		}
		result.Records = append(result.Records, rec)

		if resolved && cfg.RowDelay > 0 {
			time.Sleep(cfg.RowDelay)
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d enriched, %d unmatched, %d without synonyms (total: %d)\n",
		result.Enriched, result.Unmatched, result.NoSynonyms, result.Total())
	return result
}
