// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package state persists the set of already-delivered PMIDs across runs.
// The store is loaded once at run start, mutated only through Register,
// and rewritten to disk at most once per run. A run interrupted before
// Save leaves the previous snapshot intact, so crash recovery degrades to
// at-least-once delivery rather than losing state.
package state

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Entry records first-seen metadata for one PMID. AddedAt is empty for
// identifiers imported from the legacy list format.
type Entry struct {
	// AddedAt is the first-registration timestamp in RFC 3339 form, or
	// empty when unknown.
	AddedAt string `json:"added_at,omitempty" yaml:"added_at,omitempty"`
}

// State is the in-memory dedup mapping from PMID to first-seen metadata.
type State struct {
	entries map[string]Entry
}

// New returns an empty state.
func New() *State {
	return &State{entries: make(map[string]Entry)}
}

// Load reads the persisted state from path. A missing or unreadable file
// yields an empty state: the run then proceeds as if nothing had been
// delivered, which is the documented recovery tradeoff. Corruption is
// reported on w, never returned as an error.
//
// Two on-disk shapes are accepted: the current JSON object mapping PMID to
// an entry, and the legacy flat JSON list of PMIDs. Legacy members load
// with an absent AddedAt.
func Load(path string, w io.Writer) *State {
	s := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(w, "warning: reading state %s: %v (starting empty)\n", path, err)
		}
		return s
	}

	if err := json.Unmarshal(data, &s.entries); err == nil {
		return s
	}

	// Legacy shape: a flat list of identifiers without timestamps.
	var legacy []string
	if err := json.Unmarshal(data, &legacy); err == nil {
		for _, id := range legacy {
			s.entries[id] = Entry{}
		}
		return s
	}

	fmt.Fprintf(w, "warning: corrupt state %s, starting empty\n", path)
	return New()
}

// IsKnown reports whether id has already been registered.
func (s *State) IsKnown(id string) bool {
	_, ok := s.entries[id]
	return ok
}

// Register records id with now as its first-seen time. A legacy entry with
// no timestamp is backfilled; an existing timestamp is never overwritten,
// so registering the same id twice is a no-op.
func (s *State) Register(id string, now time.Time) {
	e, ok := s.entries[id]
	if ok && e.AddedAt != "" {
		return
	}
	s.entries[id] = Entry{AddedAt: now.Format(time.RFC3339)}
}

// Len returns the number of registered identifiers.
func (s *State) Len() int {
	return len(s.entries)
}

// Entry returns the entry for id, if any.
func (s *State) Entry(id string) (Entry, bool) {
	e, ok := s.entries[id]
	return e, ok
}

// IDs returns all registered identifiers in sorted order.
func (s *State) IDs() []string {
	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Save atomically rewrites the whole mapping at path as indented JSON with
// sorted keys, so successive snapshots diff cleanly. The file is written
// to a temporary sibling and renamed into place.
func (s *State) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing state: %w", err)
	}
	return nil
}
