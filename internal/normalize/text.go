// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"html"
	"regexp"
	"strings"
)

// xmlTagRe matches XML tags for stripping from innerxml content.
var xmlTagRe = regexp.MustCompile(`<[^>]+>`)

// wsRe matches runs of whitespace for collapsing.
var wsRe = regexp.MustCompile(`\s+`)

// collapseWS collapses whitespace runs to a single space and trims the ends.
func collapseWS(s string) string {
	return strings.TrimSpace(wsRe.ReplaceAllString(s, " "))
}

// flatten turns innerxml content into display text: inline markup tags are
// stripped (their text is kept), entities are decoded, and whitespace is
// collapsed.
func flatten(inner string) string {
	stripped := xmlTagRe.ReplaceAllString(inner, "")
	return collapseWS(html.UnescapeString(stripped))
}
