// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-digest/internal/eutils"
	"github.com/pdiddy/pubmed-digest/internal/normalize"
	"github.com/pdiddy/pubmed-digest/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch PMID [PMID...]",
	Short: "Fetch and normalize articles by PMID",
	Long: `Fetch downloads the given PMIDs from PubMed EFetch, normalizes them into
display-ready records, and prints the result. The state file is not consulted
and not modified, so fetch can be used to inspect any article regardless of
delivery history.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("failed to parse format flag: %w", err)
		}

		cfg := pipelineConfig()
		client := eutils.NewClient(cfg.Search, os.Stderr)

		blob, err := client.Fetch(cmd.Context(), args)
		if err != nil {
			return fmt.Errorf("fetch failed: %w", err)
		}

		records := normalize.Records(blob, os.Stderr)
		return printRecords(records, format, cfg.Display)
	},
}

// printRecords writes records to stdout in the requested format.
func printRecords(records []types.Record, format string, display types.DisplayConfig) error {
	switch format {
	case "json":
		out, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal records: %w", err)
		}
		fmt.Println(string(out))
	case "table":
		for i, rec := range records {
			fmt.Printf("[%d] %s\n", i+1, rec.Title)
			fmt.Printf("    PMID:      %s\n", rec.PMID)
			if rec.AuthorsDisplay != "" {
				fmt.Printf("    Authors:   %s\n", rec.AuthorsDisplay)
			}
			fmt.Printf("    Journal:   %s\n", rec.Journal)
			fmt.Printf("    Published: %s\n", rec.PubDate)
			if len(rec.PubTypes) > 0 {
				fmt.Printf("    Type:      %s\n", normalize.FormatPubTypes(rec.PubTypes, display.PubTypeLang))
			}
			if rec.DOI != "" {
				fmt.Printf("    DOI:       %s\n", rec.DOI)
			}
			fmt.Printf("    URL:       %s\n", rec.URL)
		}
		fmt.Printf("\n%d record(s)\n", len(records))
	default:
		return fmt.Errorf("unknown format %q (expected table or json)", format)
	}
	return nil
}

func init() {
	fetchCmd.Flags().String("format", "table", "output format: table or json")
	rootCmd.AddCommand(fetchCmd)
}
