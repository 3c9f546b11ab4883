// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package geo infers a country of origin from free-text affiliation
// strings. Inference is three-tiered, first hit wins: an email-address
// country-code domain, a country-looking token near the end of the address
// clause, and finally a whole-text scan for known aliases. The empty string
// means "no signal"; callers must treat it as unknown, not as an error.
package geo

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"
)

//go:embed tables.yaml
var tablesRaw []byte

// emailTLDRe captures the top-level domain of the first email address in
// the text.
var emailTLDRe = regexp.MustCompile(`@[\w.-]+\.(\w+)`)

// placeTokenRe matches tokens that plausibly name a place: letters
// (including extended Latin), spaces, periods, apostrophes, and hyphens.
var placeTokenRe = regexp.MustCompile(`^[A-Za-zÀ-ÿ .'-]+$`)

// scanPattern is one precompiled whole-text alias matcher.
type scanPattern struct {
	canonical string
	re        *regexp.Regexp
}

type tableData struct {
	Aliases map[string]string `yaml:"aliases"`
	TLDs    map[string]string `yaml:"tlds"`
}

var (
	aliases      map[string]string
	tldCountries map[string]string
	scanPatterns []scanPattern
)

func init() {
	var data tableData
	if err := yaml.Unmarshal(tablesRaw, &data); err != nil {
		panic(fmt.Sprintf("geo: parsing embedded tables.yaml: %v", err))
	}
	aliases = data.Aliases
	tldCountries = data.TLDs

	// Longest alias first so "republic of korea" is tried before "korea".
	// Equal lengths fall back to alphabetical order, which makes the scan
	// deterministic.
	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		re := regexp.MustCompile(`(?i)(^|[,\s;])` + regexp.QuoteMeta(k) + `([,\s.;]|$)`)
		scanPatterns = append(scanPatterns, scanPattern{canonical: aliases[k], re: re})
	}
}

// Country returns the best-guess country name for an affiliation string,
// or "" when no tier produces a signal.
func Country(affiliation string) string {
	if affiliation == "" {
		return ""
	}

	// Tier 1: the email address domain. Institutional email domains are
	// rarely misleading, so a country-code TLD wins outright.
	if m := emailTLDRe.FindStringSubmatch(affiliation); m != nil {
		if country, ok := tldCountries[strings.ToLower(m[1])]; ok {
			return country
		}
	}

	// Tier 2: affiliations conventionally end with an address, country
	// last. Take the segment after the last semicolon and scan its
	// comma-separated tokens from the end.
	segments := strings.Split(affiliation, ";")
	tail := segments[len(segments)-1]
	tokens := strings.Split(tail, ",")
	for i := len(tokens) - 1; i >= 0; i-- {
		tok := strings.Trim(tokens[i], " .,")
		if tok == "" {
			continue
		}
		if canonical, ok := aliases[aliasKey(tok)]; ok {
			return canonical
		}
		if n := utf8.RuneCountInString(tok); n >= 2 && n <= 40 && placeTokenRe.MatchString(tok) {
			// Looks like a place name: accept it as a best-effort guess.
			return tok
		}
	}

	// Tier 3: scan the whole text for any known alias as a standalone word.
	for _, p := range scanPatterns {
		if p.re.MatchString(affiliation) {
			return p.canonical
		}
	}

	return ""
}

// aliasKey normalizes a candidate token for alias lookup: lowercased with
// whitespace runs collapsed.
func aliasKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
