// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	_ "embed"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-digest/internal/geo"
	"github.com/pdiddy/pubmed-digest/pkg/types"
)

//go:embed labels.yaml
var labelsRaw []byte

// pubTypeLabels maps a language code to its publication-type label table.
var pubTypeLabels map[string]map[string]string

func init() {
	if err := yaml.Unmarshal(labelsRaw, &pubTypeLabels); err != nil {
		panic(fmt.Sprintf("normalize: parsing embedded labels.yaml: %v", err))
	}
}

// extractTitle flattens the article title, keeping text inside inline
// markup.
func extractTitle(a *Article) string {
	return flatten(a.Citation.Article.ArticleTitle.Inner)
}

// extractAbstract renders the abstract sections in document order. Labeled
// sections become "Label: text" lines; sections with no text are dropped.
func extractAbstract(a *Article) string {
	var lines []string
	for _, sec := range a.Citation.Article.Abstract.Sections {
		txt := flatten(sec.Inner)
		if txt == "" {
			continue
		}
		if label := collapseWS(sec.Label); label != "" {
			lines = append(lines, label+": "+txt)
		} else {
			lines = append(lines, txt)
		}
	}
	return strings.Join(lines, "\n")
}

// extractJournal picks the journal name by priority: ISO abbreviation,
// Medline abbreviation, full title.
func extractJournal(a *Article) string {
	for _, candidate := range []string{
		a.Citation.Article.Journal.ISOAbbreviation,
		a.Citation.JournalInfo.MedlineTA,
		a.Citation.Article.Journal.Title,
	} {
		if v := collapseWS(candidate); v != "" {
			return v
		}
	}
	return ""
}

// extractPubTypes returns distinct publication-type labels in document
// order.
func extractPubTypes(a *Article) []string {
	var (
		pts  []string
		seen = map[string]bool{}
	)
	for _, pt := range a.Citation.Article.PubTypeList.Types {
		t := collapseWS(pt)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		pts = append(pts, t)
	}
	return pts
}

// extractDOI returns the first article identifier tagged "doi".
func extractDOI(a *Article) string {
	for _, id := range a.PubmedData.ArticleIDList.IDs {
		if strings.EqualFold(id.IDType, "doi") {
			return strings.TrimSpace(id.Value)
		}
	}
	return ""
}

// extractAuthors walks the author list and builds the display line: the
// first credited author's rendered name, ", et al." when two or more
// authors are credited, and the inferred country in parentheses when
// country inference found a signal. Author nodes contributing neither a
// usable name nor a collective name are not credited.
func extractAuthors(a *Article) string {
	var (
		first   string
		counted int
		affRaw  string
	)

	for _, au := range a.Citation.Article.AuthorList.Authors {
		last := collapseWS(au.LastName)
		init := collapseWS(au.Initials)
		collective := flatten(au.CollectiveName)
		switch {
		case last != "" || init != "":
			if first == "" {
				first = collapseWS(last + " " + init)
				if len(au.Affiliations) > 0 {
					affRaw = flatten(au.Affiliations[0].Affiliation.Inner)
				}
			}
			counted++
		case collective != "":
			if first == "" {
				first = collective
			}
			counted++
		}
	}

	// First author without affiliation text: fall back to the first
	// affiliation found anywhere in the article.
	if affRaw == "" {
		affRaw = anyAffiliation(a)
	}

	display := first
	if counted >= 2 && display != "" {
		display += ", et al."
	}
	if country := geo.Country(affRaw); country != "" {
		if display != "" {
			display += " "
		}
		display += "(" + country + ")"
	}
	return display
}

func anyAffiliation(a *Article) string {
	for _, au := range a.Citation.Article.AuthorList.Authors {
		for _, aff := range au.Affiliations {
			if v := flatten(aff.Affiliation.Inner); v != "" {
				return v
			}
		}
	}
	return ""
}

// FormatPubTypes joins publication-type labels for display. With
// PubTypeJapanese each label is mapped through the localized table;
// unmapped labels pass through unchanged.
func FormatPubTypes(pts []string, lang types.PubTypeLang) string {
	table := pubTypeLabels[string(lang)]
	if table == nil {
		return strings.Join(pts, ", ")
	}
	out := make([]string, len(pts))
	for i, pt := range pts {
		if mapped, ok := table[pt]; ok {
			out[i] = mapped
		} else {
			out[i] = pt
		}
	}
	return strings.Join(out, ", ")
}
