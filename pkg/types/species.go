// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the taxon-engine pipeline.
package types

// EnrichedRecord is one output row of the enrichment pipeline: an input
// species name joined with the taxon page resolved for it and the synonyms
// scraped from that page. Absences are carried as fixed sentinel strings
// rather than empty fields so the output table is self-describing.
type EnrichedRecord struct {
	// Species is the input scientific name, trimmed of surrounding whitespace.
	Species string `json:"species" yaml:"species"`

	// TaxonURL is the canonical POWO page URL built from the resolved
	// registry identifier, or the sentinel "Not Found" when the name
	// registry had no match.
	TaxonURL string `json:"powo_url" yaml:"powo_url"`

	// Synonyms holds the synonym names joined with "; ", or the sentinel
	// "None" when the page carried no synonym list or extraction failed.
	Synonyms string `json:"synonyms" yaml:"synonyms"`
}
