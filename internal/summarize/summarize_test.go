// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubmed-digest/pkg/types"
)

// mockBackend returns canned results, recording the inputs it saw.
type mockBackend struct {
	result    Summary
	err       error
	failUntil int

	calls     int
	titles    []string
	abstracts []string
}

func (m *mockBackend) Summarize(ctx context.Context, title, abstract string) (Summary, error) {
	m.calls++
	m.titles = append(m.titles, title)
	m.abstracts = append(m.abstracts, abstract)
	if m.err != nil && m.calls <= m.failUntil {
		return Summary{}, m.err
	}
	if m.err != nil && m.failUntil == 0 {
		return Summary{}, m.err
	}
	return m.result, nil
}

func fastRetry(t *testing.T) {
	t.Helper()
	orig := backoffBase
	backoffBase = time.Millisecond
	t.Cleanup(func() { backoffBase = orig })
}

func TestAnnotateSuccess(t *testing.T) {
	backend := &mockBackend{result: Summary{
		LocalizedTitle: "前立腺癌に対する寡分割照射の第III相試験。",
		Bullets:        []string{"one", "- two", "•three", "four", "five"},
	}}

	rec := types.Record{Title: "T", Abstract: "A"}
	err := Annotate(context.Background(), backend, &rec, types.SummaryConfig{})
	require.NoError(t, err)

	assert.Equal(t, "前立腺癌に対する寡分割照射の第III相試験", rec.TitleLocalized)
	assert.Equal(t, "- one\n- two\n- three\n- four", rec.Summary)
}

func TestAnnotateBackendFailureUsesPlaceholders(t *testing.T) {
	fastRetry(t)
	backend := &mockBackend{err: fmt.Errorf("quota exceeded")}

	rec := types.Record{Title: "T", Abstract: "A"}
	err := Annotate(context.Background(), backend, &rec, types.SummaryConfig{
		AIConfig: types.AIConfig{MaxRetries: 2},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")

	// The record is still fully annotated.
	assert.Equal(t, PlaceholderTitle, rec.TitleLocalized)
	lines := strings.Split(rec.Summary, "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.Equal(t, PlaceholderBullet, line)
	}
	// Initial attempt plus two retries.
	assert.Equal(t, 3, backend.calls)
}

func TestAnnotateRetriesThenSucceeds(t *testing.T) {
	fastRetry(t)
	backend := &mockBackend{
		err:       fmt.Errorf("transient"),
		failUntil: 2,
		result:    Summary{LocalizedTitle: "題名", Bullets: []string{"a", "b", "c", "d"}},
	}

	rec := types.Record{Title: "T", Abstract: "A"}
	err := Annotate(context.Background(), backend, &rec, types.SummaryConfig{
		AIConfig: types.AIConfig{MaxRetries: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, "題名", rec.TitleLocalized)
	assert.Equal(t, 3, backend.calls)
}

func TestAnnotateNoAbstract(t *testing.T) {
	backend := &mockBackend{result: Summary{LocalizedTitle: "題名", Bullets: []string{"a"}}}

	rec := types.Record{Title: "T"}
	err := Annotate(context.Background(), backend, &rec, types.SummaryConfig{})
	require.NoError(t, err)
	assert.Equal(t, NoAbstractBullet, rec.Summary)
}

func TestAnnotateTruncatesAbstract(t *testing.T) {
	backend := &mockBackend{result: Summary{LocalizedTitle: "題名", Bullets: []string{"a", "b", "c", "d"}}}

	rec := types.Record{Title: "T", Abstract: strings.Repeat("あ", 100)}
	err := Annotate(context.Background(), backend, &rec, types.SummaryConfig{MaxAbstractChars: 40})
	require.NoError(t, err)

	require.Len(t, backend.abstracts, 1)
	assert.Equal(t, 40, utf8.RuneCountInString(backend.abstracts[0]))
	// The stored record keeps the full abstract.
	assert.Equal(t, 100, utf8.RuneCountInString(rec.Abstract))
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"- 題名です。", "題名です"},
		{"* Title.", "Title"},
		{"  題名．", "題名"},
		{"題名", "題名"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanTitle(tt.in))
	}
}

func TestFormatBullets(t *testing.T) {
	t.Run("pads short lists", func(t *testing.T) {
		out := formatBullets([]string{"only one"})
		require.Len(t, out, 4)
		assert.Equal(t, "- only one", out[0])
		assert.Equal(t, PlaceholderBullet, out[1])
		assert.Equal(t, PlaceholderBullet, out[3])
	})

	t.Run("drops blanks and truncates long lists", func(t *testing.T) {
		out := formatBullets([]string{"", "a", "  ", "b", "c", "d", "e"})
		assert.Equal(t, []string{"- a", "- b", "- c", "- d"}, out)
	})

	t.Run("ellipsizes overlong lines", func(t *testing.T) {
		out := formatBullets([]string{strings.Repeat("長", 200), "a", "b", "c"})
		assert.Equal(t, maxBulletRunes-2, utf8.RuneCountInString(out[0]))
		assert.True(t, strings.HasSuffix(out[0], "…"))
	})
}

func TestParseSummary(t *testing.T) {
	t.Run("bare object", func(t *testing.T) {
		s, err := parseSummary(`{"localized_title":"題名","bullets":["a","b"]}`)
		require.NoError(t, err)
		assert.Equal(t, "題名", s.LocalizedTitle)
		assert.Equal(t, []string{"a", "b"}, s.Bullets)
	})

	t.Run("object wrapped in code fences", func(t *testing.T) {
		s, err := parseSummary("```json\n{\"localized_title\":\"題名\",\"bullets\":[]}\n```")
		require.NoError(t, err)
		assert.Equal(t, "題名", s.LocalizedTitle)
	})

	t.Run("no object", func(t *testing.T) {
		_, err := parseSummary("I could not produce a summary.")
		require.Error(t, err)
	})
}

func TestBuildPrompt(t *testing.T) {
	p := buildPrompt("My Title", "My Abstract")
	assert.Contains(t, p, "My Title")
	assert.Contains(t, p, "My Abstract")
	assert.NotContains(t, p, "$TITLE")
	assert.NotContains(t, p, "$ABSTRACT")
}
