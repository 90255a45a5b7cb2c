// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/taxon-engine/internal/ipni"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [species names...]",
	Short: "Look up species names in the IPNI registry",
	Long: `Resolve queries the IPNI registry for each species name and prints the
matching records. The first match is the one the enrich pipeline uses to
build the POWO taxon URL.`,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 10s)")
	resolveCmd.Flags().Duration("delay", 0, "pause between registry queries")
	resolveCmd.Flags().Int("max", 5, "maximum matches to show per name")
	resolveCmd.Flags().Bool("json", false, "output matches as JSON")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more species names")
	}

	timeout := durationSetting(cmd, "timeout", "enrich.timeout", defaultTimeout)
	delay, _ := cmd.Flags().GetDuration("delay")
	maxMatches, _ := cmd.Flags().GetInt("max")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	client := &ipni.Client{
		HTTP:      &http.Client{Timeout: timeout},
		UserAgent: defaultUserAgent,
	}

	results := make([]resolveResult, 0, len(args))
	for i, name := range args {
		if i > 0 && delay > 0 {
			time.Sleep(delay)
		}
		matches, err := client.Search(context.Background(), name)
		if err != nil {
			return fmt.Errorf("resolving %q: %w", name, err)
		}
		if len(matches) > maxMatches {
			matches = matches[:maxMatches]
		}
		results = append(results, resolveResult{Species: name, Matches: matches})

		if !jsonOutput {
			printMatches(name, matches)
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	return nil
}

type resolveResult struct {
	Species string       `json:"species"`
	Matches []ipni.Match `json:"matches"`
}

func printMatches(name string, matches []ipni.Match) {
	if len(matches) == 0 {
		fmt.Printf("No registry match for %q.\n\n", name)
		return
	}

	fmt.Printf("Matches for %q:\n", name)
	fmt.Fprintf(os.Stdout, "%-14s  %-32s  %-20s  %-7s  %-16s  %s\n",
		"ID", "Name", "Authors", "Rank", "Family", "POWO")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 102))

	for _, m := range matches {
		inPOWO := "no"
		if m.InPOWO {
			inPOWO = "yes"
		}
		fmt.Fprintf(os.Stdout, "%-14s  %-32s  %-20s  %-7s  %-16s  %s\n",
			m.RecordID(), truncate(m.Name, 32), truncate(m.Authors, 20),
			m.Rank, truncate(m.Family, 16), inPOWO)
	}
	fmt.Println()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
