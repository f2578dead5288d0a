package model

import "fmt"

// ContentType classifies what kind of publication a document is.
// The remote service hosts scanned books alongside magazine and
// newspaper issues, and several behaviors (output layout, short
// titles, tiled image downloads) depend on the distinction.
type ContentType int

const (
	// ContentBook is a standalone book.
	ContentBook ContentType = iota

	// ContentMagazine is a single issue of a magazine.
	ContentMagazine

	// ContentNewspaper is a single issue of a newspaper.
	// Newspaper page images are often served as tiles rather than
	// as a single image.
	ContentNewspaper
)

// String returns a human-readable name for the content type.
func (c ContentType) String() string {
	switch c {
	case ContentMagazine:
		return "magazine"
	case ContentNewspaper:
		return "newspaper"
	default:
		return "book"
	}
}

// Periodical reports whether the content is a magazine or newspaper
// issue. Periodicals are filed under a per-series directory and use
// their publish date as the short title.
func (c ContentType) Periodical() bool {
	return c == ContentMagazine || c == ContentNewspaper
}

// BookMetadata holds the bibliographic data extracted from a
// document's landing page.
//
// Every field except ID may be empty or zero; the landing page only
// carries the fields that apply to the publication, and extraction
// never fails on a missing optional field.
type BookMetadata struct {
	// ID is the canonical identifier of the document within the
	// remote service. Immutable once resolved.
	ID string

	// SeriesName is the book title, or for periodicals the name of
	// the series the issue belongs to.
	SeriesName string

	// PublishDate is the date the issue or book was published.
	PublishDate string

	// Volume is the volume designation of a periodical issue.
	Volume string

	// ISSN is the serial number of a periodical, without the
	// "ISSN " prefix.
	ISSN string

	// ISBNs lists the ISBNs found in the bibliographic table.
	ISBNs []string

	// Publisher is the publisher name, without the "Published by "
	// prefix.
	Publisher string

	// Description is the synopsis text from the landing page.
	Description string

	// Type classifies the publication.
	Type ContentType

	// Author is the book author, when listed.
	Author string

	// Length is the page count, 0 when unknown.
	Length int

	// DateDigitized is the date the document was scanned.
	DateDigitized string

	// OrigFrom names the institution the scan originated from.
	OrigFrom string
}

// Title returns the shortest title identifying the document: the
// publish date for periodical issues, the series name for books.
func (m *BookMetadata) Title() string {
	if m.Type.Periodical() {
		return m.PublishDate
	}
	return m.SeriesName
}

// FullTitle returns the full display title, including the series name
// for periodical issues.
func (m *BookMetadata) FullTitle() string {
	if m.Type.Periodical() {
		return fmt.Sprintf("%s - %s", m.SeriesName, m.PublishDate)
	}
	return m.SeriesName
}
