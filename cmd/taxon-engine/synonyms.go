// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/taxon-engine/internal/powo"
)

var synonymsCmd = &cobra.Command{
	Use:   "synonyms [identifiers or page URLs...]",
	Short: "Extract the synonym list from POWO taxon pages",
	Long: `Synonyms fetches POWO taxon pages and prints the entries of their synonym
sections. Arguments may be bare registry identifiers ("30000959-2"), full
LSIDs ("urn:lsid:ipni.org:names:30000959-2"), or complete page URLs.`,
	RunE: runSynonyms,
}

func init() {
	synonymsCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 10s)")
	synonymsCmd.Flags().Duration("delay", 0, "pause between page fetches")
	synonymsCmd.Flags().Bool("json", false, "output synonym lists as JSON")

	rootCmd.AddCommand(synonymsCmd)
}

type synonymsResult struct {
	URL        string   `json:"url"`
	HasSection bool     `json:"has_synonym_section"`
	Synonyms   []string `json:"synonyms"`
}

func runSynonyms(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more registry identifiers or taxon page URLs")
	}

	timeout := durationSetting(cmd, "timeout", "enrich.timeout", defaultTimeout)
	delay, _ := cmd.Flags().GetDuration("delay")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	client := powo.NewClient(timeout)

	results := make([]synonymsResult, 0, len(args))
	for i, arg := range args {
		if i > 0 && delay > 0 {
			time.Sleep(delay)
		}

		res := synonymsResult{URL: pageURL(arg)}
		syns, err := client.Synonyms(context.Background(), res.URL)
		switch {
		case errors.Is(err, powo.ErrNoSynonymSection):
			// Valid page, nothing to list.
		case err != nil:
			return fmt.Errorf("fetching %s: %w", res.URL, err)
		default:
			res.HasSection = true
			res.Synonyms = syns
		}
		results = append(results, res)

		if !jsonOutput {
			printSynonyms(res)
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	return nil
}

func printSynonyms(res synonymsResult) {
	fmt.Printf("Synonyms for %s:\n", res.URL)
	switch {
	case !res.HasSection:
		fmt.Println("  no synonym section on page")
	case len(res.Synonyms) == 0:
		fmt.Println("  synonym list is empty")
	default:
		for _, s := range res.Synonyms {
			fmt.Printf("  - %s\n", s)
		}
	}
	fmt.Println()
}

// pageURL turns an argument into a taxon page URL. Full URLs pass through;
// LSIDs and bare registry identifiers are expanded.
func pageURL(arg string) string {
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		return arg
	}
	id := arg
	if i := strings.LastIndex(arg, ":"); i >= 0 {
		id = arg[i+1:]
	}
	return powo.TaxonURL(id)
}
