// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import "strings"

// promptTemplate instructs the model to return strict JSON with a
// localized (Japanese) title and four summary bullets. $TITLE and
// $ABSTRACT are substituted per record.
const promptTemplate = `You are a specialized summarizer for clinical research literature, tasked with creating concise Japanese summaries for busy clinicians. Your output must be a strict JSON object.

### JSON Output Format
- **localized_title**: A Japanese title (30-45 characters, ending with a noun, compressing any lengthy subtitles, and including the study design from the original title only if explicitly mentioned).
- **bullets**: An array of exactly 4 bullet points, each 60-120 characters long.

### Key Rules
- Summarize only the facts present in the provided title and abstract. Do not add external knowledge or make assumptions.
- Output only the JSON object. No surrounding text, no code fences.
- Keep international abbreviations (OS, PFS, HR, CI, ORR, CTCAE, Gy) and drug or tracer names in their original notation.
- Use the original numerals and units; translate common English words into Japanese.
- The final bullet should state the conclusion as given in the abstract.

English Title:
$TITLE

Abstract:
$ABSTRACT
`

// buildPrompt substitutes the record's title and abstract into the
// template.
func buildPrompt(title, abstract string) string {
	r := strings.NewReplacer("$TITLE", title, "$ABSTRACT", abstract)
	return r.Replace(promptTemplate)
}
