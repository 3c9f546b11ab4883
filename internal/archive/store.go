// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive keeps a local, queryable history of every record the
// pipeline has delivered. The archive is a convenience layer on top of
// the digest run; the dedup state file remains the source of truth for
// what has been sent.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pubmed-digest/pkg/types"
)

const dbFile = "records.db"

// Store manages the archive SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the archive database at dir/records.db,
// creating the schema when missing.
func NewStore(cfg types.ArchiveConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "archive"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			pmid TEXT NOT NULL UNIQUE,
			title TEXT,
			title_localized TEXT,
			authors TEXT,
			journal TEXT,
			pubdate TEXT,
			doi TEXT,
			url TEXT,
			pub_types TEXT,
			abstract TEXT,
			summary TEXT,
			archived_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_journal ON records(journal)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table over title and abstract, with sync triggers.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='records_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE records_fts USING fts5(title, abstract, content=records, content_rowid=rowid)`,
			`CREATE TRIGGER records_ai AFTER INSERT ON records BEGIN
				INSERT INTO records_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
			`CREATE TRIGGER records_ad AFTER DELETE ON records BEGIN
				INSERT INTO records_fts(records_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
			END`,
			`CREATE TRIGGER records_au AFTER UPDATE ON records BEGIN
				INSERT INTO records_fts(records_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
				INSERT INTO records_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Put upserts one record. Re-archiving the same PMID replaces the stored
// fields, so a record enriched on a later run wins.
func (s *Store) Put(ctx context.Context, rec types.Record, now time.Time) error {
	pubTypesJSON, _ := json.Marshal(rec.PubTypes)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (pmid, title, title_localized, authors, journal, pubdate, doi, url, pub_types, abstract, summary, archived_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(pmid) DO UPDATE SET
			title=excluded.title, title_localized=excluded.title_localized,
			authors=excluded.authors, journal=excluded.journal,
			pubdate=excluded.pubdate, doi=excluded.doi, url=excluded.url,
			pub_types=excluded.pub_types, abstract=excluded.abstract,
			summary=excluded.summary`,
		rec.PMID, rec.Title, rec.TitleLocalized, rec.AuthorsDisplay,
		rec.Journal, rec.PubDate, rec.DOI, rec.URL,
		string(pubTypesJSON), rec.Abstract, rec.Summary,
		now.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting record %s: %w", rec.PMID, err)
	}
	return nil
}

// PutAll archives a batch of records in one transaction.
func (s *Store) PutAll(ctx context.Context, records []types.Record, now time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, rec := range records {
		pubTypesJSON, _ := json.Marshal(rec.PubTypes)
		_, err := tx.ExecContext(ctx,
			`INSERT INTO records (pmid, title, title_localized, authors, journal, pubdate, doi, url, pub_types, abstract, summary, archived_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(pmid) DO UPDATE SET
				title=excluded.title, title_localized=excluded.title_localized,
				authors=excluded.authors, journal=excluded.journal,
				pubdate=excluded.pubdate, doi=excluded.doi, url=excluded.url,
				pub_types=excluded.pub_types, abstract=excluded.abstract,
				summary=excluded.summary`,
			rec.PMID, rec.Title, rec.TitleLocalized, rec.AuthorsDisplay,
			rec.Journal, rec.PubDate, rec.DOI, rec.URL,
			string(pubTypesJSON), rec.Abstract, rec.Summary,
			now.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("archiving record %s: %w", rec.PMID, err)
		}
	}
	return tx.Commit()
}

// Count returns the number of archived records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}
