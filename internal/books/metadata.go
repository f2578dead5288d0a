package books

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/bookgrab/bookgrab/internal/model"
)

const (
	pageCountSuffix = " pages"
	publisherPrefix = "Published by "
	issnPrefix      = "ISSN "
)

// ExtractMetadata parses the bibliographic data out of a document's
// landing page.
//
// The only fatal condition is a missing summary container, which
// yields ErrMetadataUnavailable. Every other selector that matches
// nothing leaves its field empty.
//
// The one-line metadata summary is parsed by content pattern rather
// than position, since the service omits fields that do not apply: a
// token ending in " pages" is the page count, a "Published by "
// prefix marks the publisher, an "ISSN " prefix marks the ISSN, the
// first unclassified token is the publish date and any further one is
// the volume. A secondary bibliography table of label/value rows
// overrides summary values when present.
func ExtractMetadata(id string, doc *goquery.Document) (*model.BookMetadata, error) {
	container := doc.Find("#summary_content_table")
	if container.Length() == 0 {
		return nil, fmt.Errorf("%w: missing summary container for %s", ErrMetadataUnavailable, id)
	}

	meta := &model.BookMetadata{
		ID:          id,
		SeriesName:  firstText(container.Find(".booktitle")),
		Description: firstText(container.Find("#synopsistext")),
	}

	if err := parseSummaryLine(container.Find("#metadata"), meta); err != nil {
		return nil, err
	}
	if err := parseBibliography(doc, meta); err != nil {
		return nil, err
	}

	meta.Type = classifyContent(doc)
	return meta, nil
}

// parseSummaryLine classifies each text node of the #metadata element
// by content pattern.
func parseSummaryLine(sel *goquery.Selection, meta *model.BookMetadata) error {
	for _, token := range textNodes(sel) {
		switch {
		case strings.HasSuffix(token, pageCountSuffix):
			length, err := parseLength(token)
			if err != nil {
				return err
			}
			meta.Length = length
		case strings.HasPrefix(token, publisherPrefix):
			meta.Publisher = strings.TrimPrefix(token, publisherPrefix)
		case strings.HasPrefix(token, issnPrefix):
			meta.ISSN = strings.TrimPrefix(token, issnPrefix)
		case meta.PublishDate == "":
			meta.PublishDate = token
		default:
			meta.Volume = token
		}
	}
	return nil
}

// parseBibliography applies the label/value rows of the bibliography
// table. Later values win over the summary line.
func parseBibliography(doc *goquery.Document, meta *model.BookMetadata) error {
	var err error
	doc.Find(".metadata_row").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		label := firstText(row.Find(".metadata_label"))
		value := firstText(row.Find(".metadata_value span"))
		if label == "" || value == "" {
			return true
		}

		switch label {
		case "Title":
			meta.SeriesName = value
		case "Author":
			meta.Author = value
		case "Publisher":
			meta.Publisher = value
		case "Original from":
			meta.OrigFrom = value
		case "Digitized":
			meta.DateDigitized = value
		case "Length":
			var length int
			if length, err = parseLength(value); err != nil {
				return false
			}
			meta.Length = length
		case "ISBN":
			meta.ISBNs = splitISBNs(value)
		}
		return true
	})
	return err
}

// classifyContent inspects the preview link label to decide what kind
// of publication the page describes. Anything unrecognized is a book.
func classifyContent(doc *goquery.Document) model.ContentType {
	label := firstText(doc.Find("#preview-link span"))
	switch {
	case strings.Contains(label, "magazine"):
		return model.ContentMagazine
	case strings.Contains(label, "newspaper"):
		return model.ContentNewspaper
	default:
		return model.ContentBook
	}
}

func parseLength(text string) (int, error) {
	trimmed := strings.TrimSpace(strings.TrimSuffix(text, pageCountSuffix))
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: page count %q", ErrParse, text)
	}
	return n, nil
}

func splitISBNs(value string) []string {
	var isbns []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			isbns = append(isbns, part)
		}
	}
	return isbns
}

// textNodes returns the trimmed text of every descendant text node of
// the selection's first element, in document order. Whitespace-only
// nodes are dropped.
func textNodes(sel *goquery.Selection) []string {
	var out []string
	var walk func(s *goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, c *goquery.Selection) {
			if goquery.NodeName(c) == "#text" {
				if t := strings.TrimSpace(c.Text()); t != "" {
					out = append(out, t)
				}
				return
			}
			walk(c)
		})
	}
	walk(sel.First())
	return out
}

// firstText returns the first non-empty text node of the selection,
// or "" when there is none.
func firstText(sel *goquery.Selection) string {
	if nodes := textNodes(sel); len(nodes) > 0 {
		return nodes[0]
	}
	return ""
}
