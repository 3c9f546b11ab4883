// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/pubmed-digest/pkg/types"
)

// QueryOptions holds parameters for archive queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over titles and abstracts.
	Query string

	// Journal filters by exact journal name.
	Journal string

	// PubType filters records carrying the given publication-type label.
	PubType string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Journal == "" && q.PubType == ""
}

// Retrieve queries the archive with optional full-text search and
// structured filters. Full-text queries are ranked by relevance;
// structured-only queries are sorted by archive time, newest first.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]types.Record, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT r.pmid, r.title, r.title_localized, r.authors, r.journal,
				r.pubdate, r.doi, r.url, r.pub_types, r.abstract, r.summary
			FROM records_fts
			JOIN records r ON r.rowid = records_fts.rowid
			WHERE records_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT r.pmid, r.title, r.title_localized, r.authors, r.journal,
				r.pubdate, r.doi, r.url, r.pub_types, r.abstract, r.summary
			FROM records r
			WHERE 1=1`)
	}

	if opts.Journal != "" {
		qb.WriteString(` AND r.journal = ?`)
		args = append(args, opts.Journal)
	}
	if opts.PubType != "" {
		// pub_types is a JSON array of labels; match the quoted element.
		qb.WriteString(` AND r.pub_types LIKE ?`)
		args = append(args, `%"`+opts.PubType+`"%`)
	}

	if useFTS {
		qb.WriteString(` ORDER BY records_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY r.archived_at DESC, r.pmid`)
	}
	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var records []types.Record
	for rows.Next() {
		var (
			rec          types.Record
			pubTypesJSON string
		)
		if err := rows.Scan(&rec.PMID, &rec.Title, &rec.TitleLocalized,
			&rec.AuthorsDisplay, &rec.Journal, &rec.PubDate, &rec.DOI,
			&rec.URL, &pubTypesJSON, &rec.Abstract, &rec.Summary); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		if pubTypesJSON != "" {
			if err := json.Unmarshal([]byte(pubTypesJSON), &rec.PubTypes); err != nil {
				return nil, fmt.Errorf("decoding publication types for %s: %w", rec.PMID, err)
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
