package books

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/bookgrab/bookgrab/internal/model"
)

// ExtractTOC parses the outline entries of a landing page into a map
// keyed by target page identifier.
//
// Each entry's title is the concatenation of all its text nodes, and
// its target pid comes from the pg query parameter of the entry link.
// Entries without a resolvable link are skipped; a later entry for
// the same pid overwrites the earlier one. Entries default to plain
// emphasis and black, the only styling the landing page exposes.
func ExtractTOC(doc *goquery.Document) map[string]model.TocEntry {
	entries := make(map[string]model.TocEntry)

	doc.Find("div.toc_entry").Each(func(_ int, sel *goquery.Selection) {
		title := sel.Text()

		href, ok := sel.Find("a").First().Attr("href")
		if !ok {
			return
		}
		target, err := url.Parse(href)
		if err != nil {
			return
		}
		pid := target.Query().Get("pg")
		if pid == "" {
			return
		}

		entries[pid] = model.TocEntry{Title: title}
	})

	return entries
}
