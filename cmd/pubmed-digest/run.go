// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-digest/internal/archive"
	"github.com/pdiddy/pubmed-digest/internal/eutils"
	"github.com/pdiddy/pubmed-digest/internal/mail"
	"github.com/pdiddy/pubmed-digest/internal/pipeline"
	"github.com/pdiddy/pubmed-digest/internal/summarize"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full digest pipeline",
	Long: `Run executes every pipeline stage in order: search the publication window,
drop already-delivered PMIDs, fetch and normalize the remainder, summarize
each record, persist the updated state, archive the records, and deliver the
digest email.

With --dry-run the digest is printed to stdout instead of delivered, and
neither the state file nor the archive is touched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, err := cmd.Flags().GetBool("dry-run")
		if err != nil {
			return fmt.Errorf("failed to parse dry-run flag: %w", err)
		}

		cfg := pipelineConfig()

		deps := pipeline.Deps{
			Fetcher: eutils.NewClient(cfg.Search, os.Stderr),
			Summarizer: &summarize.GeminiBackend{
				Client: &http.Client{Timeout: cfg.Search.Timeout},
				Cfg:    cfg.Summary.AIConfig,
			},
			Deliverer: &mail.Sender{Cfg: cfg.Mail},
			Now:       time.Now,
		}

		if !dryRun {
			store, err := archive.NewStore(cfg.Archive)
			if err != nil {
				return fmt.Errorf("failed to open archive: %w", err)
			}
			defer store.Close()
			deps.Archiver = store
		}

		summary, err := pipeline.Run(cmd.Context(), deps, cfg, dryRun, os.Stdout)
		if err != nil {
			return err
		}

		fmt.Printf("Found %d PMID(s), %d already known, %d processed\n",
			summary.Found, summary.Known, summary.Processed)
		if summary.Delivered {
			to := cfg.Mail.To
			if to == "" {
				to = cfg.Mail.From
			}
			fmt.Println("Digest delivered to", to)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().Bool("dry-run", false, "print the digest instead of delivering it; leave state and archive untouched")
	rootCmd.AddCommand(runCmd)
}
