package books

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PeriodURLs lists the period selector links of a periodical's
// browse page. A link with an empty href designates the currently
// selected period, represented by selfURL. Pages without a period
// selector yield just selfURL, so a single-period series still
// downloads.
func PeriodURLs(doc *goquery.Document, selfURL string) []string {
	var urls []string
	doc.Find("#period_selector a").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		if strings.TrimSpace(href) == "" {
			urls = append(urls, selfURL)
			return
		}
		urls = append(urls, href)
	})

	if len(urls) == 0 {
		urls = append(urls, selfURL)
	}
	return urls
}

// IssueURLs lists the issue links within the selected period of a
// periodical's browse page.
func IssueURLs(doc *goquery.Document) []string {
	var urls []string
	doc.Find("div.allissues_gallerycell a:first-child").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			urls = append(urls, href)
		}
	})
	return urls
}
