// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-digest/internal/eutils"
	"github.com/pdiddy/pubmed-digest/internal/state"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the publication window and print matching PMIDs",
	Long: `Search runs the configured queries against PubMed ESearch over the current
publication-date window and prints the deduplicated PMIDs, one per line.

With --new, PMIDs already recorded in the state file are filtered out, which
previews exactly what a pipeline run would process. The state file is never
modified.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		newOnly, err := cmd.Flags().GetBool("new")
		if err != nil {
			return fmt.Errorf("failed to parse new flag: %w", err)
		}

		cfg := pipelineConfig()
		client := eutils.NewClient(cfg.Search, os.Stderr)

		pmids, err := client.SearchAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if newOnly {
			st := state.Load(cfg.State.Path, os.Stderr)
			kept := pmids[:0]
			for _, id := range pmids {
				if !st.IsKnown(id) {
					kept = append(kept, id)
				}
			}
			pmids = kept
		}

		for _, id := range pmids {
			fmt.Println(id)
		}
		fmt.Fprintf(os.Stderr, "%d PMID(s)\n", len(pmids))
		return nil
	},
}

func init() {
	searchCmd.Flags().Bool("new", false, "only print PMIDs not yet recorded in the state file")
	rootCmd.AddCommand(searchCmd)
}
