// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubmed-digest/pkg/types"
)

// sampleArticle wraps body in the EFetch envelope for one article.
func sampleArticle(body string) []byte {
	return []byte(`<?xml version="1.0" ?>
<PubmedArticleSet>
<PubmedArticle>` + body + `</PubmedArticle>
</PubmedArticleSet>`)
}

const fullArticle = `
<MedlineCitation>
  <PMID Version="1">38012345</PMID>
  <Article>
    <Journal>
      <ISOAbbreviation>Lancet Oncol</ISOAbbreviation>
      <Title>The Lancet. Oncology</Title>
      <JournalIssue>
        <PubDate><Year>2024</Year><Month>Feb</Month></PubDate>
      </JournalIssue>
    </Journal>
    <ArticleTitle>Efficacy of <i>BRCA1</i>-targeted therapy: a phase III trial</ArticleTitle>
    <Abstract>
      <AbstractText Label="BACKGROUND">Outcomes remain poor.</AbstractText>
      <AbstractText Label="RESULTS">Median OS was 18.2 months (HR 0.71, 95% CI 0.58-0.87).</AbstractText>
      <AbstractText Label="FUNDING"></AbstractText>
    </Abstract>
    <AuthorList>
      <Author>
        <LastName>Tanaka</LastName>
        <Initials>H</Initials>
        <AffiliationInfo>
          <Affiliation>Department of Radiation Oncology, University of Tokyo, Tokyo, Japan.</Affiliation>
        </AffiliationInfo>
      </Author>
      <Author><LastName>Sato</LastName><Initials>K</Initials></Author>
    </AuthorList>
    <ArticleDate DateType="Electronic"><Year>2024</Year><Month>03</Month><Day>5</Day></ArticleDate>
    <PublicationTypeList>
      <PublicationType>Randomized Controlled Trial</PublicationType>
      <PublicationType>Journal Article</PublicationType>
      <PublicationType>Randomized Controlled Trial</PublicationType>
    </PublicationTypeList>
  </Article>
  <MedlineJournalInfo>
    <MedlineTA>Lancet Oncol</MedlineTA>
  </MedlineJournalInfo>
</MedlineCitation>
<PubmedData>
  <History>
    <PubMedPubDate PubStatus="entrez"><Year>2024</Year><Month>3</Month><Day>6</Day></PubMedPubDate>
  </History>
  <ArticleIdList>
    <ArticleId IdType="pubmed">38012345</ArticleId>
    <ArticleId IdType="doi">10.1016/S1470-2045(24)00001-2</ArticleId>
  </ArticleIdList>
</PubmedData>`

func TestRecordsFullArticle(t *testing.T) {
	var warnings bytes.Buffer
	records := Records(sampleArticle(fullArticle), &warnings)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "38012345", rec.PMID)
	assert.Equal(t, "Efficacy of BRCA1-targeted therapy: a phase III trial", rec.Title)
	assert.Equal(t, "BACKGROUND: Outcomes remain poor.\nRESULTS: Median OS was 18.2 months (HR 0.71, 95% CI 0.58-0.87).", rec.Abstract)
	assert.Equal(t, "Tanaka H, et al. (Japan)", rec.AuthorsDisplay)
	assert.Equal(t, "Lancet Oncol", rec.Journal)
	assert.Equal(t, "2024 Mar 05", rec.PubDate)
	assert.Equal(t, "10.1016/S1470-2045(24)00001-2", rec.DOI)
	assert.Equal(t, "https://pubmed.ncbi.nlm.nih.gov/38012345/", rec.URL)
	assert.Equal(t, []string{"Randomized Controlled Trial", "Journal Article"}, rec.PubTypes)
	assert.Empty(t, warnings.String())
}

func TestRecordsMissingPMIDDiscarded(t *testing.T) {
	blob := sampleArticle(`
<MedlineCitation>
  <Article><ArticleTitle>Orphan article</ArticleTitle></Article>
</MedlineCitation>`)

	var warnings bytes.Buffer
	records := Records(blob, &warnings)
	assert.Empty(t, records)
	assert.Contains(t, warnings.String(), "without PMID")
}

func TestParseMalformedBlob(t *testing.T) {
	var warnings bytes.Buffer
	articles := Parse([]byte("<PubmedArticleSet><broken"), &warnings)
	assert.Empty(t, articles)
	assert.Contains(t, warnings.String(), "malformed")
}

func TestParseEmptyBlob(t *testing.T) {
	var warnings bytes.Buffer
	assert.Empty(t, Parse(nil, &warnings))
	assert.Empty(t, Parse([]byte("   \n"), &warnings))
	assert.Empty(t, warnings.String())
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day string
		want             string
	}{
		{"numeric month and single-digit day", "2024", "3", "5", "2024 Mar 05"},
		{"padded numeric month", "2024", "03", "15", "2024 Mar 15"},
		{"abbreviated month", "2024", "Mar", "05", "2024 Mar 05"},
		{"full month name", "2024", "March", "5", "2024 Mar 05"},
		{"no day", "2024", "Feb", "", "2024 Feb"},
		{"year only", "2024", "", "", "2024"},
		{"year with day but no month", "2024", "", "12", "2024"},
		{"empty", "", "", "", ""},
		{"unknown month passes through", "2024", "Floréal", "1", "2024 Floréal 01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatDate(tt.year, tt.month, tt.day))
		})
	}
}

func TestPubDateFallbackChain(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"electronic date wins over issue date",
			`<MedlineCitation><PMID>1</PMID><Article>
				<Journal><JournalIssue><PubDate><Year>2024</Year><Month>Feb</Month></PubDate></JournalIssue></Journal>
				<ArticleTitle>t1</ArticleTitle>
				<ArticleDate DateType="Electronic"><Year>2024</Year><Month>03</Month><Day>5</Day></ArticleDate>
			</Article></MedlineCitation>`,
			"2024 Mar 05",
		},
		{
			"first article date when none is electronic",
			`<MedlineCitation><PMID>2</PMID><Article>
				<ArticleTitle>t2</ArticleTitle>
				<ArticleDate DateType="Print"><Year>2023</Year><Month>12</Month><Day>01</Day></ArticleDate>
			</Article></MedlineCitation>`,
			"2023 Dec 01",
		},
		{
			"issue date when no article dates",
			`<MedlineCitation><PMID>3</PMID><Article>
				<Journal><JournalIssue><PubDate><Year>2024</Year><Month>Feb</Month></PubDate></JournalIssue></Journal>
				<ArticleTitle>t3</ArticleTitle>
			</Article></MedlineCitation>`,
			"2024 Feb",
		},
		{
			"medline date passes through verbatim",
			`<MedlineCitation><PMID>4</PMID><Article>
				<Journal><JournalIssue><PubDate><MedlineDate>2024 Jan-Feb</MedlineDate></PubDate></JournalIssue></Journal>
				<ArticleTitle>t4</ArticleTitle>
			</Article></MedlineCitation>`,
			"2024 Jan-Feb",
		},
		{
			"history date by status priority",
			`<MedlineCitation><PMID>5</PMID><Article><ArticleTitle>t5</ArticleTitle></Article></MedlineCitation>
			<PubmedData><History>
				<PubMedPubDate PubStatus="medline"><Year>2024</Year><Month>1</Month><Day>20</Day></PubMedPubDate>
				<PubMedPubDate PubStatus="pubmed"><Year>2024</Year><Month>1</Month><Day>18</Day></PubMedPubDate>
			</History></PubmedData>`,
			"2024 Jan 18",
		},
		{
			"no date anywhere",
			`<MedlineCitation><PMID>6</PMID><Article><ArticleTitle>t6</ArticleTitle></Article></MedlineCitation>`,
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			articles := Parse(sampleArticle(tt.body), &bytes.Buffer{})
			require.Len(t, articles, 1)
			assert.Equal(t, tt.want, extractPubDate(&articles[0]))
		})
	}
}

func TestExtractJournalPriority(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"iso abbreviation first",
			`<MedlineCitation><PMID>1</PMID><Article>
				<Journal><Title>Full Title</Title><ISOAbbreviation>Abbr J</ISOAbbreviation></Journal>
				<ArticleTitle>t</ArticleTitle>
			</Article><MedlineJournalInfo><MedlineTA>TA J</MedlineTA></MedlineJournalInfo></MedlineCitation>`,
			"Abbr J",
		},
		{
			"medline ta when no iso",
			`<MedlineCitation><PMID>1</PMID><Article>
				<Journal><Title>Full Title</Title></Journal>
				<ArticleTitle>t</ArticleTitle>
			</Article><MedlineJournalInfo><MedlineTA>TA J</MedlineTA></MedlineJournalInfo></MedlineCitation>`,
			"TA J",
		},
		{
			"full title last",
			`<MedlineCitation><PMID>1</PMID><Article>
				<Journal><Title>Full Title</Title></Journal>
				<ArticleTitle>t</ArticleTitle>
			</Article></MedlineCitation>`,
			"Full Title",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			articles := Parse(sampleArticle(tt.body), &bytes.Buffer{})
			require.Len(t, articles, 1)
			assert.Equal(t, tt.want, extractJournal(&articles[0]))
		})
	}
}

func TestExtractAuthors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"no authors",
			`<MedlineCitation><PMID>1</PMID><Article><ArticleTitle>t</ArticleTitle></Article></MedlineCitation>`,
			"",
		},
		{
			"single author no et al",
			`<MedlineCitation><PMID>1</PMID><Article><ArticleTitle>t</ArticleTitle>
				<AuthorList><Author><LastName>Kim</LastName><Initials>J</Initials></Author></AuthorList>
			</Article></MedlineCitation>`,
			"Kim J",
		},
		{
			"collective name counts as an author",
			`<MedlineCitation><PMID>1</PMID><Article><ArticleTitle>t</ArticleTitle>
				<AuthorList>
					<Author><CollectiveName>EORTC Trial Group</CollectiveName></Author>
					<Author><LastName>Kim</LastName><Initials>J</Initials></Author>
				</AuthorList>
			</Article></MedlineCitation>`,
			"EORTC Trial Group, et al.",
		},
		{
			"empty author nodes are not credited",
			`<MedlineCitation><PMID>1</PMID><Article><ArticleTitle>t</ArticleTitle>
				<AuthorList>
					<Author><LastName>Kim</LastName><Initials>J</Initials></Author>
					<Author></Author>
				</AuthorList>
			</Article></MedlineCitation>`,
			"Kim J",
		},
		{
			"country from a later author's affiliation",
			`<MedlineCitation><PMID>1</PMID><Article><ArticleTitle>t</ArticleTitle>
				<AuthorList>
					<Author><LastName>Kim</LastName><Initials>J</Initials></Author>
					<Author>
						<LastName>Lee</LastName><Initials>S</Initials>
						<AffiliationInfo><Affiliation>Seoul National University, Seoul, Republic of Korea.</Affiliation></AffiliationInfo>
					</Author>
				</AuthorList>
			</Article></MedlineCitation>`,
			"Kim J, et al. (South Korea)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			articles := Parse(sampleArticle(tt.body), &bytes.Buffer{})
			require.Len(t, articles, 1)
			assert.Equal(t, tt.want, extractAuthors(&articles[0]))
		})
	}
}

func TestFlattenInlineMarkup(t *testing.T) {
	got := flatten(`Role of <sup>18</sup>F-FDG PET in &lt;early&gt; staging of  <b>NSCLC</b>`)
	assert.Equal(t, "Role of 18F-FDG PET in <early> staging of NSCLC", got)
}

func TestFormatPubTypes(t *testing.T) {
	pts := []string{"Randomized Controlled Trial", "Journal Article"}

	en := FormatPubTypes(pts, types.PubTypeEnglish)
	assert.Equal(t, "Randomized Controlled Trial, Journal Article", en)

	ja := FormatPubTypes(pts, types.PubTypeJapanese)
	assert.True(t, strings.HasPrefix(ja, "無作為化比較試験"))
	// Unmapped labels pass through unchanged.
	assert.Contains(t, ja, "Journal Article")
}

func TestNormalizeSuspiciousTitleWarning(t *testing.T) {
	articles := Parse(sampleArticle(
		`<MedlineCitation><PMID>9</PMID><Article><ArticleTitle>X</ArticleTitle></Article></MedlineCitation>`,
	), &bytes.Buffer{})
	require.Len(t, articles, 1)

	var warnings bytes.Buffer
	rec, ok := Normalize(&articles[0], &warnings)
	assert.True(t, ok)
	assert.Equal(t, "X", rec.Title)
	assert.Contains(t, warnings.String(), "suspicious title for PMID 9")
}
