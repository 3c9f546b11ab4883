// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import "strings"

// monthAbbr normalizes the month spellings PubMed emits (numeric with or
// without a leading zero, three-letter, or full name) to the three-letter
// abbreviation. Unrecognized values pass through unchanged.
var monthAbbr = map[string]string{
	"1": "Jan", "01": "Jan", "Jan": "Jan", "January": "Jan",
	"2": "Feb", "02": "Feb", "Feb": "Feb", "February": "Feb",
	"3": "Mar", "03": "Mar", "Mar": "Mar", "March": "Mar",
	"4": "Apr", "04": "Apr", "Apr": "Apr", "April": "Apr",
	"5": "May", "05": "May", "May": "May",
	"6": "Jun", "06": "Jun", "Jun": "Jun", "June": "Jun",
	"7": "Jul", "07": "Jul", "Jul": "Jul", "July": "Jul",
	"8": "Aug", "08": "Aug", "Aug": "Aug", "August": "Aug",
	"9": "Sep", "09": "Sep", "Sep": "Sep", "September": "Sep",
	"10": "Oct", "Oct": "Oct", "October": "Oct",
	"11": "Nov", "Nov": "Nov", "November": "Nov",
	"12": "Dec", "Dec": "Dec", "December": "Dec",
}

// formatDate renders a (year, month, day) triple as "YYYY Mon DD",
// "YYYY Mon" when the day is missing, "YYYY" when only the year is
// present, and "" otherwise. Single-digit days are zero-padded.
func formatDate(year, month, day string) string {
	y := strings.TrimSpace(year)
	m := strings.TrimSpace(month)
	if abbr, ok := monthAbbr[m]; ok {
		m = abbr
	}
	d := strings.TrimSpace(day)
	switch {
	case y != "" && m != "" && d != "":
		if len(d) == 1 && d[0] >= '0' && d[0] <= '9' {
			d = "0" + d
		}
		return y + " " + m + " " + d
	case y != "" && m != "":
		return y + " " + m
	default:
		return y
	}
}

// dateStrategy is one candidate producer in the publication-date fallback
// chain. Strategies are tried in order; the first non-empty result wins.
type dateStrategy struct {
	name    string
	extract func(a *Article) string
}

// pubDateChain is the publication-date fallback order: an explicit
// electronic date, then any article date, then the issue date, then the
// issue's free-text MedlineDate, then processing-history dates.
var pubDateChain = []dateStrategy{
	{"electronic", func(a *Article) string {
		for _, ad := range a.Citation.Article.ArticleDates {
			if strings.EqualFold(ad.DateType, "electronic") {
				return formatDate(ad.Year, ad.Month, ad.Day)
			}
		}
		return ""
	}},
	{"articledate", func(a *Article) string {
		if len(a.Citation.Article.ArticleDates) == 0 {
			return ""
		}
		ad := a.Citation.Article.ArticleDates[0]
		return formatDate(ad.Year, ad.Month, ad.Day)
	}},
	{"issue", func(a *Article) string {
		pd := a.Citation.Article.Journal.Issue.PubDate
		return formatDate(pd.Year, pd.Month, pd.Day)
	}},
	{"medlinedate", func(a *Article) string {
		return strings.TrimSpace(a.Citation.Article.Journal.Issue.PubDate.MedlineDate)
	}},
	{"history", func(a *Article) string {
		for _, status := range []string{"pubmed", "entrez", "medline"} {
			for _, hd := range a.PubmedData.History.Dates {
				if hd.PubStatus == status {
					return formatDate(hd.Year, hd.Month, hd.Day)
				}
			}
		}
		return ""
	}},
}

// extractPubDate walks the fallback chain and returns the first rendered
// date, or "" when no strategy produces one.
func extractPubDate(a *Article) string {
	for _, s := range pubDateChain {
		if v := s.extract(a); v != "" {
			return v
		}
	}
	return ""
}
