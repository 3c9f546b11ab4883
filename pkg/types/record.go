// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Record holds the normalized, display-ready fields of one PubMed article.
// All text fields are whitespace-collapsed and trimmed. Any field except
// PMID may legitimately be empty; a record without a PMID is unusable
// because it cannot be deduplicated or linked.
type Record struct {
	// PMID is the stable PubMed accession number, the dedup key.
	PMID string `json:"pmid" yaml:"pmid"`

	// Title is the article title with inline markup flattened to text.
	Title string `json:"title" yaml:"title"`

	// Abstract joins the labeled abstract sections in document order,
	// one "Label: text" line per section.
	Abstract string `json:"abstract" yaml:"abstract"`

	// AuthorsDisplay is the rendered author line: the first author's name,
	// ", et al." when two or more authors are credited, and the inferred
	// country of origin in parentheses when inference succeeded.
	AuthorsDisplay string `json:"authors" yaml:"authors"`

	// Journal is the journal name, abbreviation preferred.
	Journal string `json:"journal" yaml:"journal"`

	// PubDate is the human-readable publication date ("2024 Mar 05",
	// "2024 Mar", "2024", a raw MedlineDate string, or empty).
	PubDate string `json:"pubdate" yaml:"pubdate"`

	// DOI is the article DOI, or empty.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// URL is the canonical PubMed page for the article, derived from PMID.
	URL string `json:"url" yaml:"url"`

	// PubTypes lists distinct publication-type labels in document order.
	PubTypes []string `json:"publication_types,omitempty" yaml:"publication_types,omitempty"`

	// TitleLocalized is the AI-generated localized title, attached after
	// summarization.
	TitleLocalized string `json:"title_localized,omitempty" yaml:"title_localized,omitempty"`

	// Summary is the AI-generated bullet summary, one bullet per line,
	// attached after summarization.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
}
