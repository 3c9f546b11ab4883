// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package digest folds annotated records into one render-ready document:
// a subject line and a plain-text body. It does no I/O; delivery is the
// caller's concern.
package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/pubmed-digest/internal/normalize"
	"github.com/pdiddy/pubmed-digest/pkg/types"
)

// Subject renders the digest subject line for a run date.
func Subject(cfg types.DigestConfig, count int, date time.Time) string {
	topic := cfg.Topic
	if topic == "" {
		topic = "PubMed digest"
	}
	return fmt.Sprintf("[%s: %d new] %s", topic, count, date.Format("2006-01-02"))
}

// Body renders the digest body: a heading, the article count, and one
// numbered block per record. A zero-record run still renders a complete
// document.
func Body(records []types.Record, cfg types.DigestConfig, display types.DisplayConfig) string {
	var b strings.Builder

	if cfg.Heading != "" {
		b.WriteString(cfg.Heading + "\n")
	}
	if cfg.Topic != "" {
		b.WriteString(cfg.Topic + "\n")
	}
	fmt.Fprintf(&b, "\n%d new article(s) today.\n\n", len(records))

	for i, rec := range records {
		fmt.Fprintf(&b, "[Article %d]\n", i+1)
		fmt.Fprintf(&b, "Title: %s\n", rec.Title)
		fmt.Fprintf(&b, "Localized title (AI): %s\n", rec.TitleLocalized)
		if rec.AuthorsDisplay != "" {
			fmt.Fprintf(&b, "Authors: %s\n", rec.AuthorsDisplay)
		}
		fmt.Fprintf(&b, "Journal: %s\n", rec.Journal)
		fmt.Fprintf(&b, "Published: %s\n", rec.PubDate)
		if len(rec.PubTypes) > 0 {
			fmt.Fprintf(&b, "Type: %s\n", normalize.FormatPubTypes(rec.PubTypes, display.PubTypeLang))
		}
		fmt.Fprintf(&b, "PubMed: %s\n", rec.URL)
		doi := rec.DOI
		if doi == "" {
			doi = "-"
		}
		fmt.Fprintf(&b, "DOI: %s\n", doi)
		b.WriteString("Summary (AI):\n")
		b.WriteString(rec.Summary + "\n\n")
	}

	return b.String()
}
