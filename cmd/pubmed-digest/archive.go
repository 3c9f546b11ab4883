// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-digest/internal/archive"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Query the local record archive",
}

var archiveQueryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Search archived records by full text or structured filters",
	Long: `Query searches the local archive of previously delivered records. A
positional text argument runs a full-text search over titles and abstracts;
--journal and --pubtype filter on the structured columns. Filters and full
text combine with AND.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		journal, err := cmd.Flags().GetString("journal")
		if err != nil {
			return fmt.Errorf("failed to parse journal flag: %w", err)
		}
		pubType, err := cmd.Flags().GetString("pubtype")
		if err != nil {
			return fmt.Errorf("failed to parse pubtype flag: %w", err)
		}
		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return fmt.Errorf("failed to parse limit flag: %w", err)
		}
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("failed to parse format flag: %w", err)
		}

		opts := archive.QueryOptions{
			Journal:    journal,
			PubType:    pubType,
			MaxResults: limit,
		}
		if len(args) == 1 {
			opts.Query = args[0]
		}
		if opts.IsEmpty() {
			return fmt.Errorf("nothing to query: provide search text or a filter flag")
		}

		cfg := pipelineConfig()
		store, err := archive.NewStore(cfg.Archive)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer store.Close()

		records, err := store.Retrieve(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query failed: %w", err)
		}
		return printRecords(records, format, cfg.Display)
	},
}

var archiveStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print archive summary counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := pipelineConfig()
		store, err := archive.NewStore(cfg.Archive)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer store.Close()

		count, err := store.Count(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count records: %w", err)
		}

		fmt.Println("Directory:      ", cfg.Archive.Dir)
		fmt.Println("Total records:  ", count)
		return nil
	},
}

func init() {
	archiveQueryCmd.Flags().String("journal", "", "filter by journal name (exact match)")
	archiveQueryCmd.Flags().String("pubtype", "", "filter by publication type label")
	archiveQueryCmd.Flags().Int("limit", 0, "maximum results (default from config)")
	archiveQueryCmd.Flags().String("format", "table", "output format: table or json")

	archiveCmd.AddCommand(archiveQueryCmd)
	archiveCmd.AddCommand(archiveStatsCmd)
	rootCmd.AddCommand(archiveCmd)
}
