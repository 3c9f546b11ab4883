// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/pubmed-digest/pkg/types"
)

func TestSubject(t *testing.T) {
	date := time.Date(2026, 8, 29, 6, 0, 0, 0, time.UTC)

	got := Subject(types.DigestConfig{Topic: "Radiation Oncology"}, 3, date)
	assert.Equal(t, "[Radiation Oncology: 3 new] 2026-08-29", got)

	got = Subject(types.DigestConfig{}, 0, date)
	assert.Equal(t, "[PubMed digest: 0 new] 2026-08-29", got)
}

func TestBodyEmptyRun(t *testing.T) {
	cfg := types.DigestConfig{Heading: "Daily digest", Topic: "Oncology"}
	body := Body(nil, cfg, types.DisplayConfig{})

	assert.Contains(t, body, "Daily digest\n")
	assert.Contains(t, body, "Oncology\n")
	assert.Contains(t, body, "0 new article(s) today.")
	assert.NotContains(t, body, "[Article")
}

func TestBodyRendersRecords(t *testing.T) {
	records := []types.Record{
		{
			PMID:           "38012345",
			Title:          "Hypofractionated radiotherapy in prostate cancer",
			TitleLocalized: "前立腺癌に対する寡分割照射",
			AuthorsDisplay: "Tanaka H, et al. (Japan)",
			Journal:        "Lancet Oncol",
			PubDate:        "2026 Aug 25",
			DOI:            "10.1016/S1470-2045(26)00123-4",
			URL:            "https://pubmed.ncbi.nlm.nih.gov/38012345/",
			PubTypes:       []string{"Randomized Controlled Trial"},
			Summary:        "- first\n- second\n- third\n- fourth",
		},
		{
			PMID:           "38012346",
			Title:          "A case without identifiers",
			TitleLocalized: "(localized title unavailable)",
			Journal:        "J Clin Oncol",
			PubDate:        "2026 Aug",
			URL:            "https://pubmed.ncbi.nlm.nih.gov/38012346/",
			Summary:        "- no abstract available on PubMed for this article",
		},
	}

	body := Body(records, types.DigestConfig{Heading: "H", Topic: "T"}, types.DisplayConfig{PubTypeLang: types.PubTypeJapanese})

	assert.Contains(t, body, "2 new article(s) today.")
	assert.Contains(t, body, "[Article 1]\n")
	assert.Contains(t, body, "[Article 2]\n")
	assert.Contains(t, body, "Title: Hypofractionated radiotherapy in prostate cancer\n")
	assert.Contains(t, body, "Localized title (AI): 前立腺癌に対する寡分割照射\n")
	assert.Contains(t, body, "Authors: Tanaka H, et al. (Japan)\n")
	assert.Contains(t, body, "Type: 無作為化比較試験\n")
	assert.Contains(t, body, "DOI: 10.1016/S1470-2045(26)00123-4\n")
	assert.Contains(t, body, "Summary (AI):\n- first\n- second")

	// The second record has no DOI, no authors line, no type line.
	assert.Contains(t, body, "DOI: -\n")
	_, second, found := strings.Cut(body, "[Article 2]")
	assert.True(t, found)
	assert.NotContains(t, second, "Authors:")
	assert.NotContains(t, second, "Type:")
}
