package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with name-registry requests
	// (e.g. "taxon-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EnrichConfig holds settings for the enrichment pipeline.
type EnrichConfig struct {
	HTTPConfig `yaml:",inline"`

	// RowDelay is the pause after each row that reached the taxon-page
	// fetch, to avoid tripping rate limits on the remote sites (default 2s).
	// Rows with no registry match skip it.
	RowDelay time.Duration `json:"row_delay" yaml:"row_delay"`

	// InputPath is the input table of species names. The table must carry
	// a "Species" column.
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputPath is the output table (Species, POWO_URL, Synonyms).
	OutputPath string `json:"output_path" yaml:"output_path"`

	// ReportPath, when set, is where the YAML run report is written.
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty"`
}
