// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package state

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	var warnings bytes.Buffer
	s := Load(filepath.Join(t.TempDir(), "absent.json"), &warnings)
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, warnings.String())
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sent.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	var warnings bytes.Buffer
	s := Load(path, &warnings)
	assert.Equal(t, 0, s.Len())
	assert.Contains(t, warnings.String(), "corrupt state")
}

func TestLoadLegacyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sent.json")
	require.NoError(t, os.WriteFile(path, []byte(`["111", "222"]`), 0o644))

	s := Load(path, &bytes.Buffer{})
	assert.True(t, s.IsKnown("111"))
	assert.True(t, s.IsKnown("222"))
	assert.False(t, s.IsKnown("333"))

	e, ok := s.Entry("111")
	require.True(t, ok)
	assert.Empty(t, e.AddedAt)
}

func TestRegisterBackfillsLegacyEntry(t *testing.T) {
	s := New()
	now := time.Date(2026, 8, 29, 7, 0, 0, 0, time.UTC)

	// Legacy member: known, no timestamp.
	path := filepath.Join(t.TempDir(), "sent.json")
	require.NoError(t, os.WriteFile(path, []byte(`["111"]`), 0o644))
	s = Load(path, &bytes.Buffer{})

	s.Register("111", now)
	e, _ := s.Entry("111")
	assert.Equal(t, "2026-08-29T07:00:00Z", e.AddedAt)
}

func TestRegisterNeverOverwrites(t *testing.T) {
	s := New()
	first := time.Date(2026, 8, 28, 6, 0, 0, 0, time.UTC)
	second := time.Date(2026, 8, 29, 6, 0, 0, 0, time.UTC)

	s.Register("42", first)
	s.Register("42", second)

	e, ok := s.Entry("42")
	require.True(t, ok)
	assert.Equal(t, first.Format(time.RFC3339), e.AddedAt)
	assert.Equal(t, 1, s.Len())
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sent.json")
	now := time.Date(2026, 8, 29, 7, 30, 0, 0, time.UTC)

	s := New()
	s.Register("222", now)
	s.Register("111", now)
	require.NoError(t, s.Save(path))

	// No temp file left behind.
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	loaded := Load(path, &bytes.Buffer{})
	assert.True(t, loaded.IsKnown("111"))
	assert.True(t, loaded.IsKnown("222"))
	assert.Equal(t, []string{"111", "222"}, loaded.IDs())
}

func TestSaveWritesSortedIndentedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sent.json")
	now := time.Date(2026, 8, 29, 7, 30, 0, 0, time.UTC)

	s := New()
	s.Register("90", now)
	s.Register("10", now)
	require.NoError(t, s.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Keys appear sorted, and the snapshot round-trips.
	assert.Less(t, bytes.Index(data, []byte(`"10"`)), bytes.Index(data, []byte(`"90"`)))
	assert.True(t, bytes.HasSuffix(data, []byte("\n")))

	var entries map[string]Entry
	require.NoError(t, json.Unmarshal(data, &entries))
	assert.Len(t, entries, 2)
}
