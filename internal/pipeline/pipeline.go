// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline composes one digest run: search the window, filter
// already-sent PMIDs against the dedup state, fetch and normalize the
// survivors, summarize them, archive, and deliver. Processing is strictly
// sequential; the state file is loaded once at run start and saved at
// most once, after every new record has been registered.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/pubmed-digest/internal/digest"
	"github.com/pdiddy/pubmed-digest/internal/normalize"
	"github.com/pdiddy/pubmed-digest/internal/state"
	"github.com/pdiddy/pubmed-digest/internal/summarize"
	"github.com/pdiddy/pubmed-digest/pkg/types"
)

// Fetcher finds candidate PMIDs and retrieves their raw article XML.
type Fetcher interface {
	SearchAll(ctx context.Context) ([]string, error)
	Fetch(ctx context.Context, pmids []string) ([]byte, error)
}

// Deliverer sends the rendered digest.
type Deliverer interface {
	Deliver(subject, body string) error
}

// Archiver stores delivered records for later queries.
type Archiver interface {
	PutAll(ctx context.Context, records []types.Record, now time.Time) error
}

// Deps bundles the run's collaborators. Archiver may be nil; the others
// are required. Now defaults to time.Now.
type Deps struct {
	Fetcher    Fetcher
	Summarizer summarize.Backend
	Deliverer  Deliverer
	Archiver   Archiver
	Now        func() time.Time
}

// Summary holds counts from one run.
type Summary struct {
	Found     int
	Known     int
	Processed int
	Delivered bool
}

// Run executes one digest run. With dryRun set, delivery, the state save,
// and archiving are all skipped, so the run has no observable side
// effects beyond w.
func Run(ctx context.Context, deps Deps, cfg types.PipelineConfig, dryRun bool, w io.Writer) (Summary, error) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	pmids, err := deps.Fetcher.SearchAll(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("searching: %w", err)
	}
	fmt.Fprintf(w, "search window returned %d article(s)\n", len(pmids))

	st := state.Load(cfg.State.Path, w)

	// Cheap short-circuit: drop known PMIDs before any fetch or
	// summarization work.
	var newIDs []string
	for _, id := range pmids {
		if !st.IsKnown(id) {
			newIDs = append(newIDs, id)
		}
	}
	summary := Summary{Found: len(pmids), Known: len(pmids) - len(newIDs)}
	fmt.Fprintf(w, "%d new article(s) after dedup\n", len(newIDs))

	var records []types.Record
	if len(newIDs) > 0 {
		blob, err := deps.Fetcher.Fetch(ctx, newIDs)
		if err != nil {
			return summary, fmt.Errorf("fetching articles: %w", err)
		}
		records = normalize.Records(blob, w)

		runTime := now()
		for i := range records {
			rec := &records[i]
			st.Register(rec.PMID, runTime)

			fmt.Fprintf(w, "summarizing (%d/%d): %s\n", i+1, len(records), truncate(rec.Title, 60))
			if err := summarize.Annotate(ctx, deps.Summarizer, rec, cfg.Summary); err != nil {
				fmt.Fprintf(w, "warning: summarization failed for PMID %s, using placeholders: %v\n", rec.PMID, err)
			}

			if d := cfg.Summary.SleepBetweenCalls; d > 0 && i < len(records)-1 {
				select {
				case <-ctx.Done():
					return summary, ctx.Err()
				case <-time.After(d):
				}
			}
		}
		summary.Processed = len(records)

		if !dryRun {
			if err := st.Save(cfg.State.Path); err != nil {
				return summary, fmt.Errorf("saving state: %w", err)
			}
			if deps.Archiver != nil {
				if err := deps.Archiver.PutAll(ctx, records, runTime); err != nil {
					fmt.Fprintf(w, "warning: archiving failed: %v\n", err)
				}
			}
		}
	}

	subject := digest.Subject(cfg.Digest, len(records), now())
	body := digest.Body(records, cfg.Digest, cfg.Display)

	if dryRun {
		fmt.Fprintf(w, "dry run: skipping delivery and state save\n\n%s\n%s", subject, body)
		return summary, nil
	}

	// Delivery failure is the one fatal collaborator failure.
	if err := deps.Deliverer.Deliver(subject, body); err != nil {
		return summary, fmt.Errorf("delivering digest: %w", err)
	}
	summary.Delivered = true
	fmt.Fprintf(w, "digest delivered (%d article(s))\n", len(records))
	return summary, nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
