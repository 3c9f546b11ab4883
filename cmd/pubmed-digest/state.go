// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-digest/internal/state"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect the delivered-PMID state file",
}

var stateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded PMIDs and when they were first delivered",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := pipelineConfig()
		st := state.Load(cfg.State.Path, os.Stderr)

		for _, id := range st.IDs() {
			entry, _ := st.Entry(id)
			added := entry.AddedAt
			if added == "" {
				added = "-"
			}
			fmt.Printf("%s\t%s\n", id, added)
		}
		return nil
	},
}

var stateStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print state file summary counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := pipelineConfig()
		st := state.Load(cfg.State.Path, os.Stderr)

		undated := 0
		for _, id := range st.IDs() {
			entry, _ := st.Entry(id)
			if entry.AddedAt == "" {
				undated++
			}
		}

		fmt.Println("Path:         ", cfg.State.Path)
		fmt.Println("Total PMIDs:  ", st.Len())
		fmt.Println("Without date: ", undated)
		return nil
	},
}

func init() {
	stateCmd.AddCommand(stateListCmd)
	stateCmd.AddCommand(stateStatsCmd)
	rootCmd.AddCommand(stateCmd)
}
