// Package model defines the core data structures used throughout
// bookgrab.
//
// # BookMetadata
//
// BookMetadata holds the bibliographic data parsed from a document's
// landing page, including the ContentType classification that several
// download behaviors depend on:
//
//	meta := &model.BookMetadata{ID: "abc", SeriesName: "LIFE", PublishDate: "Oct 3, 1969", Type: model.ContentMagazine}
//	fmt.Println(meta.FullTitle()) // "LIFE - Oct 3, 1969"
//
// # TableOfContents
//
// TableOfContents maps page image filenames to outline entries and is
// consumed by the PDF assembler to build the document outline.
//
// # FormatSet
//
// FormatSet is the set of requested output formats, tested via set
// membership:
//
//	formats := model.NewFormatSet(model.FormatPDF, model.FormatCBZ)
//	if formats.Contains(model.FormatPDF) { ... }
package model
