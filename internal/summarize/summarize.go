// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize attaches an AI-generated localized title and bullet
// summary to normalized records. The AI backend is an interface so tests
// can supply a mock; failures substitute fixed placeholder text so a
// record is never dropped from the digest.
package summarize

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/pubmed-digest/pkg/types"
)

// Placeholder text substituted when the AI backend fails or returns
// unusable output.
const (
	PlaceholderTitle  = "(localized title unavailable)"
	PlaceholderBullet = "- (summary line missing)"

	// NoAbstractBullet replaces the summary for records PubMed carries no
	// abstract for.
	NoAbstractBullet = "- no abstract available on PubMed for this article"
)

// bulletTarget is the number of bullet points a summary is normalized to.
const bulletTarget = 4

// maxBulletRunes caps the rendered length of one bullet.
const maxBulletRunes = 150

// Summary is the structured output of one summarization call.
type Summary struct {
	// LocalizedTitle is the title rendered in the digest's target language.
	LocalizedTitle string `json:"localized_title"`

	// Bullets are the summary lines, most important first.
	Bullets []string `json:"bullets"`
}

// Backend performs a single summarization call. Implementations handle one
// (title, abstract) pair per call.
type Backend interface {
	Summarize(ctx context.Context, title, abstract string) (Summary, error)
}

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// callWithRetry calls the AI backend with exponential backoff.
func callWithRetry(ctx context.Context, backend Backend, title, abstract string, maxRetries int) (Summary, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return Summary{}, ctx.Err()
			case <-time.After(backoff):
			}
		}

		s, err := backend.Summarize(ctx, title, abstract)
		if err == nil {
			return s, nil
		}
		lastErr = err
	}
	return Summary{}, fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}

// Annotate summarizes one record in place. On backend failure the record
// receives placeholder text instead of being omitted; the failure is
// reported through the returned error for logging only.
func Annotate(ctx context.Context, backend Backend, rec *types.Record, cfg types.SummaryConfig) error {
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	abstract := rec.Abstract
	if max := cfg.MaxAbstractChars; max > 0 && utf8.RuneCountInString(abstract) > max {
		abstract = string([]rune(abstract)[:max])
	}

	s, err := callWithRetry(ctx, backend, rec.Title, abstract, maxRetries)

	title := cleanTitle(s.LocalizedTitle)
	if title == "" {
		title = PlaceholderTitle
	}
	rec.TitleLocalized = title

	if rec.Abstract == "" {
		rec.Summary = NoAbstractBullet
	} else {
		rec.Summary = strings.Join(formatBullets(s.Bullets), "\n")
	}

	return err
}

// cleanTitle strips stray list markers and a trailing period from the
// generated title.
func cleanTitle(title string) string {
	title = strings.TrimSpace(title)
	title = strings.TrimLeft(title, "-•*・[]() 　")
	for _, suffix := range []string{"。", "．", "."} {
		title = strings.TrimSuffix(title, suffix)
	}
	return strings.TrimSpace(title)
}

// formatBullets normalizes generated bullet lines: blank lines are
// dropped, each line gets a "- " prefix, the list is padded or truncated
// to the target count, and overlong lines are cut with an ellipsis.
func formatBullets(lines []string) []string {
	var out []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-•*・ 　")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, "- "+line)
		if len(out) == bulletTarget {
			break
		}
	}
	for len(out) < bulletTarget {
		out = append(out, PlaceholderBullet)
	}
	for i, line := range out {
		if utf8.RuneCountInString(line) > maxBulletRunes {
			out[i] = string([]rune(line)[:maxBulletRunes-3]) + "…"
		}
	}
	return out
}
