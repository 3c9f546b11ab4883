// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// nowUTC returns the current UTC time. Tests override it to pin the
// search window.
var nowUTC = func() time.Time { return time.Now().UTC() }

// esearchResponse is the JSON shape of an ESearch result.
type esearchResponse struct {
	Result struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// JournalQuery builds a PubMed query that ORs the journal names on the
// [ta] field, e.g. `(("Lancet Oncol"[ta]) OR ("JAMA Oncol"[ta]))`.
func JournalQuery(journals []string) string {
	parts := make([]string, len(journals))
	for i, j := range journals {
		parts[i] = fmt.Sprintf(`("%s"[ta])`, j)
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// windowParams returns the fixed EDAT window parameters: from WindowDays
// days before the current UTC date through today. Anchoring on the UTC
// date keeps the window stable across re-runs within the same day.
func (c *Client) windowParams() url.Values {
	today := nowUTC().Truncate(24 * time.Hour)
	min := today.AddDate(0, 0, -c.Cfg.WindowDays)
	v := url.Values{}
	v.Set("datetype", "edat")
	v.Set("mindate", min.Format("2006/01/02"))
	v.Set("maxdate", today.Format("2006/01/02"))
	return v
}

// Search runs one ESearch term over the configured window and returns the
// matching PMIDs in publication-date order.
func (c *Client) Search(ctx context.Context, term string) ([]string, error) {
	maxResults := c.Cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 500
	}

	params := c.windowParams()
	params.Set("term", term)
	params.Set("retmode", "json")
	params.Set("retmax", strconv.Itoa(maxResults))
	params.Set("sort", "pub_date")

	body, err := c.get(ctx, "esearch.fcgi", params)
	if err != nil {
		return nil, err
	}

	var resp esearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing esearch response: %w", err)
	}
	return resp.Result.IDList, nil
}

// SearchAll runs the configured queries in order, or the journal-OR
// fallback query when none are configured, and returns the union of PMIDs
// with cross-query duplicates removed, first occurrence order preserved.
func (c *Client) SearchAll(ctx context.Context) ([]string, error) {
	terms := c.Cfg.Queries
	if len(terms) == 0 {
		if len(c.Cfg.Journals) == 0 {
			return nil, fmt.Errorf("no search queries or journals configured")
		}
		terms = []string{JournalQuery(c.Cfg.Journals)}
	}

	var (
		all  []string
		seen = map[string]bool{}
	)
	for i, term := range terms {
		if i > 0 && c.Cfg.InterQueryDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.Cfg.InterQueryDelay):
			}
		}
		ids, err := c.Search(ctx, term)
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", i+1, err)
		}
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				all = append(all, id)
			}
		}
	}
	return all, nil
}

// querySepRe matches a separator line containing only "---".
var querySepRe = regexp.MustCompile(`(?m)^\s*---\s*$`)

// SplitQueries parses a multi-query config value: queries are separated by
// lines containing only "---"; blank queries are dropped.
func SplitQueries(raw string) []string {
	var queries []string
	for _, part := range querySepRe.Split(raw, -1) {
		if q := strings.TrimSpace(part); q != "" {
			queries = append(queries, q)
		}
	}
	return queries
}
