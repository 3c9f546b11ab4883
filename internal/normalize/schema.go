// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import "encoding/xml"

// XML structures for PubMed EFetch responses. ArticleTitle, AbstractText,
// and Affiliation capture innerxml so text inside inline markup like
// <i>, <sup>, <sub>, <b> survives extraction.

type articleSet struct {
	XMLName  xml.Name  `xml:"PubmedArticleSet"`
	Articles []Article `xml:"PubmedArticle"`
}

// Article is one raw PubMed article subtree. It is borrowed by the
// normalizer for the duration of one Normalize call.
type Article struct {
	Citation   medlineCitation `xml:"MedlineCitation"`
	PubmedData pubmedData      `xml:"PubmedData"`
}

type medlineCitation struct {
	PMID        string         `xml:"PMID"`
	Article     citedArticle   `xml:"Article"`
	JournalInfo medlineJournal `xml:"MedlineJournalInfo"`
}

type medlineJournal struct {
	MedlineTA string `xml:"MedlineTA"`
}

type citedArticle struct {
	Journal      journal       `xml:"Journal"`
	ArticleTitle innerText     `xml:"ArticleTitle"`
	Abstract     abstract      `xml:"Abstract"`
	AuthorList   authorList    `xml:"AuthorList"`
	ArticleDates []articleDate `xml:"ArticleDate"`
	PubTypeList  pubTypeList   `xml:"PublicationTypeList"`
}

// innerText captures raw innerxml for elements whose text may be wrapped
// in inline markup.
type innerText struct {
	Inner string `xml:",innerxml"`
}

type journal struct {
	Title           string       `xml:"Title"`
	ISOAbbreviation string       `xml:"ISOAbbreviation"`
	Issue           journalIssue `xml:"JournalIssue"`
}

type journalIssue struct {
	PubDate pubDate `xml:"PubDate"`
}

type pubDate struct {
	Year        string `xml:"Year"`
	Month       string `xml:"Month"`
	Day         string `xml:"Day"`
	MedlineDate string `xml:"MedlineDate"`
}

type articleDate struct {
	DateType string `xml:"DateType,attr"`
	Year     string `xml:"Year"`
	Month    string `xml:"Month"`
	Day      string `xml:"Day"`
}

type abstract struct {
	Sections []abstractText `xml:"AbstractText"`
}

type abstractText struct {
	Label string `xml:"Label,attr"`
	Inner string `xml:",innerxml"`
}

type authorList struct {
	Authors []author `xml:"Author"`
}

type author struct {
	LastName       string            `xml:"LastName"`
	Initials       string            `xml:"Initials"`
	CollectiveName string            `xml:"CollectiveName"`
	Affiliations   []affiliationInfo `xml:"AffiliationInfo"`
}

type affiliationInfo struct {
	Affiliation innerText `xml:"Affiliation"`
}

type pubTypeList struct {
	Types []string `xml:"PublicationType"`
}

type pubmedData struct {
	History       history       `xml:"History"`
	ArticleIDList articleIDList `xml:"ArticleIdList"`
}

type history struct {
	Dates []historyDate `xml:"PubMedPubDate"`
}

type historyDate struct {
	PubStatus string `xml:"PubStatus,attr"`
	Year      string `xml:"Year"`
	Month     string `xml:"Month"`
	Day       string `xml:"Day"`
}

type articleIDList struct {
	IDs []articleID `xml:"ArticleId"`
}

type articleID struct {
	IDType string `xml:"IdType,attr"`
	Value  string `xml:",chardata"`
}
