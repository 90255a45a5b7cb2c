// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/taxon-engine/pkg/types"
)

// speciesColumn is the required input column. The match is exact.
const speciesColumn = "Species"

// resultsHeader is the column layout of the output table.
var resultsHeader = []string{"Species", "POWO_URL", "Synonyms"}

// ReadSpecies reads the species names from the CSV file at path, in row
// order. It returns an error when the header has no Species column. Rows
// are never dropped: a row whose species cell is missing or blank yields
// an empty name so the output table keeps one row per input row.
func ReadSpecies(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening species list: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("species list %s is empty", path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading species list header: %w", err)
	}

	// Spreadsheet exports often carry a UTF-8 BOM on the first cell.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	col := -1
	for i, name := range header {
		if name == speciesColumn {
			col = i
			break
		}
	}
	if col == -1 {
		return nil, fmt.Errorf("species list %s has no %q column", path, speciesColumn)
	}

	var names []string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading species list: %w", err)
		}
		if col >= len(row) {
			names = append(names, "")
			continue
		}
		names = append(names, strings.TrimSpace(row[col]))
	}
	return names, nil
}

// WriteResults writes the enriched records as a CSV table at path,
// overwriting any existing file.
func WriteResults(path string, records []types.EnrichedRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating results file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(resultsHeader); err != nil {
		f.Close()
		return fmt.Errorf("writing results header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write([]string{rec.Species, rec.TaxonURL, rec.Synonyms}); err != nil {
			f.Close()
			return fmt.Errorf("writing results row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing results: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing results file: %w", err)
	}
	return nil
}
