// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize turns raw PubMed EFetch XML into normalized,
// display-ready records. Each field has its own extractor with its own
// fallback chain; no single extractor failure is fatal to a record. Only a
// missing PMID makes a record unusable, because without it the record
// cannot be deduplicated or linked.
package normalize

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/pubmed-digest/pkg/types"
)

// pubmedURLBase is the canonical article page prefix. The record URL is
// derived from the PMID.
const pubmedURLBase = "https://pubmed.ncbi.nlm.nih.gov/"

// Parse decodes a raw EFetch blob into article subtrees. An empty or
// malformed blob yields no articles and no error; the condition is
// reported on w instead, because a bad batch should not abort a run.
func Parse(blob []byte, w io.Writer) []Article {
	if len(strings.TrimSpace(string(blob))) == 0 {
		return nil
	}
	var set articleSet
	if err := xml.Unmarshal(blob, &set); err != nil {
		fmt.Fprintf(w, "warning: malformed article XML, skipping batch: %v\n", err)
		return nil
	}
	return set.Articles
}

// Records parses a raw EFetch blob and normalizes every article in it.
// Articles without a PMID are discarded with a warning.
func Records(blob []byte, w io.Writer) []types.Record {
	var records []types.Record
	for _, art := range Parse(blob, w) {
		rec, ok := Normalize(&art, w)
		if !ok {
			fmt.Fprintf(w, "warning: article without PMID discarded (title %q)\n", rec.Title)
			continue
		}
		records = append(records, rec)
	}
	return records
}

// Normalize composes the field extractors into one record. The second
// return value is false when the article carries no PMID.
func Normalize(a *Article, w io.Writer) (types.Record, bool) {
	rec := types.Record{
		PMID:     strings.TrimSpace(a.Citation.PMID),
		Title:    extractTitle(a),
		Abstract: extractAbstract(a),
		Journal:  extractJournal(a),
		PubDate:  extractPubDate(a),
		DOI:      extractDOI(a),
		PubTypes: extractPubTypes(a),
	}
	rec.AuthorsDisplay = extractAuthors(a)

	if utf8.RuneCountInString(rec.Title) < 2 {
		fmt.Fprintf(w, "warning: suspicious title for PMID %s: %q\n", rec.PMID, rec.Title)
	}

	if rec.PMID == "" {
		return rec, false
	}
	rec.URL = pubmedURLBase + rec.PMID + "/"
	return rec, true
}
