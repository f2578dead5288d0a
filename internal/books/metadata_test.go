package books

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/bookgrab/bookgrab/internal/model"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing test document: %v", err)
	}
	return doc
}

func TestExtractMetadataMagazine(t *testing.T) {
	html := `<html><body>
	<table id="summary_content_table"><tr><td>
		<div class="booktitle">LIFE</div>
		<div id="synopsistext">The treasured photographic magazine.</div>
		<div id="metadata">
			<span>Oct 3, 1969</span><span>94 pages</span><span>Vol. 67, No. 14</span>
			<span>ISSN 0024-3019</span><span>Published by Time Inc</span>
		</div>
	</td></tr></table>
	<div id="preview-link"><span>Preview this magazine</span></div>
	</body></html>`

	meta, err := ExtractMetadata("CFEEAAAAMBAJ", parseDoc(t, html))
	if err != nil {
		t.Fatalf("ExtractMetadata failed: %v", err)
	}

	want := &model.BookMetadata{
		ID:          "CFEEAAAAMBAJ",
		SeriesName:  "LIFE",
		PublishDate: "Oct 3, 1969",
		Volume:      "Vol. 67, No. 14",
		ISSN:        "0024-3019",
		Publisher:   "Time Inc",
		Description: "The treasured photographic magazine.",
		Type:        model.ContentMagazine,
		Length:      94,
	}

	if meta.SeriesName != want.SeriesName {
		t.Errorf("SeriesName = %q, want %q", meta.SeriesName, want.SeriesName)
	}
	if meta.PublishDate != want.PublishDate {
		t.Errorf("PublishDate = %q, want %q", meta.PublishDate, want.PublishDate)
	}
	if meta.Volume != want.Volume {
		t.Errorf("Volume = %q, want %q", meta.Volume, want.Volume)
	}
	if meta.ISSN != want.ISSN {
		t.Errorf("ISSN = %q, want %q", meta.ISSN, want.ISSN)
	}
	if meta.Publisher != want.Publisher {
		t.Errorf("Publisher = %q, want %q", meta.Publisher, want.Publisher)
	}
	if meta.Length != want.Length {
		t.Errorf("Length = %d, want %d", meta.Length, want.Length)
	}
	if meta.Type != want.Type {
		t.Errorf("Type = %v, want %v", meta.Type, want.Type)
	}
	if meta.Description != want.Description {
		t.Errorf("Description = %q, want %q", meta.Description, want.Description)
	}
}

func TestExtractMetadataPatternKeyed(t *testing.T) {
	// Fields identified by pattern, not position: here the summary
	// line is just a page count.
	html := `<html><body>
	<div id="summary_content_table">
		<div id="metadata"><span>342 pages</span></div>
	</div>
	</body></html>`

	meta, err := ExtractMetadata("X", parseDoc(t, html))
	if err != nil {
		t.Fatalf("ExtractMetadata failed: %v", err)
	}
	if meta.Length != 342 {
		t.Errorf("Length = %d, want 342", meta.Length)
	}
	if meta.PublishDate != "" {
		t.Errorf("PublishDate = %q, want empty", meta.PublishDate)
	}
	if meta.Type != model.ContentBook {
		t.Errorf("Type = %v, want book", meta.Type)
	}
}

func TestExtractMetadataBibliographyOverrides(t *testing.T) {
	html := `<html><body>
	<div id="summary_content_table">
		<div class="booktitle">Moby Dick</div>
		<div id="metadata"><span>1892</span></div>
	</div>
	<table>
		<tr class="metadata_row">
			<td class="metadata_label">Author</td>
			<td class="metadata_value"><span>Herman Melville</span></td>
		</tr>
		<tr class="metadata_row">
			<td class="metadata_label">Publisher</td>
			<td class="metadata_value"><span>Dana Estes &amp; Company, 1892</span></td>
		</tr>
		<tr class="metadata_row">
			<td class="metadata_label">Original from</td>
			<td class="metadata_value"><span>Harvard University</span></td>
		</tr>
		<tr class="metadata_row">
			<td class="metadata_label">Digitized</td>
			<td class="metadata_value"><span>Mar 20, 2008</span></td>
		</tr>
		<tr class="metadata_row">
			<td class="metadata_label">Length</td>
			<td class="metadata_value"><span>545 pages</span></td>
		</tr>
		<tr class="metadata_row">
			<td class="metadata_label">ISBN</td>
			<td class="metadata_value"><span>0665018924, 9780665018923</span></td>
		</tr>
	</table>
	</body></html>`

	meta, err := ExtractMetadata("XV8XAAAAYAAJ", parseDoc(t, html))
	if err != nil {
		t.Fatalf("ExtractMetadata failed: %v", err)
	}
	if meta.Author != "Herman Melville" {
		t.Errorf("Author = %q", meta.Author)
	}
	if meta.Publisher != "Dana Estes & Company, 1892" {
		t.Errorf("Publisher = %q", meta.Publisher)
	}
	if meta.OrigFrom != "Harvard University" {
		t.Errorf("OrigFrom = %q", meta.OrigFrom)
	}
	if meta.DateDigitized != "Mar 20, 2008" {
		t.Errorf("DateDigitized = %q", meta.DateDigitized)
	}
	if meta.Length != 545 {
		t.Errorf("Length = %d, want 545", meta.Length)
	}
	if len(meta.ISBNs) != 2 || meta.ISBNs[0] != "0665018924" || meta.ISBNs[1] != "9780665018923" {
		t.Errorf("ISBNs = %v", meta.ISBNs)
	}
}

func TestExtractMetadataMissingContainer(t *testing.T) {
	_, err := ExtractMetadata("X", parseDoc(t, `<html><body>nothing here</body></html>`))
	if err == nil {
		t.Fatal("expected error for missing summary container")
	}
	if !errors.Is(err, ErrMetadataUnavailable) {
		t.Errorf("error %v is not ErrMetadataUnavailable", err)
	}
}

func TestExtractMetadataBadPageCount(t *testing.T) {
	html := `<html><body>
	<div id="summary_content_table">
		<div id="metadata"><span>many pages</span></div>
	</div>
	</body></html>`

	_, err := ExtractMetadata("X", parseDoc(t, html))
	if err == nil {
		t.Fatal("expected error for malformed page count")
	}
	if !errors.Is(err, ErrParse) {
		t.Errorf("error %v is not ErrParse", err)
	}
}

func TestClassifyContent(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  model.ContentType
	}{
		{name: "magazine label", label: "Preview this magazine", want: model.ContentMagazine},
		{name: "newspaper label", label: "Browse this newspaper", want: model.ContentNewspaper},
		{name: "book label", label: "Preview this book", want: model.ContentBook},
		{name: "missing label", label: "", want: model.ContentBook},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := `<html><body><div id="summary_content_table"></div>`
			if tt.label != "" {
				html += `<div id="preview-link"><span>` + tt.label + `</span></div>`
			}
			html += `</body></html>`

			meta, err := ExtractMetadata("X", parseDoc(t, html))
			if err != nil {
				t.Fatalf("ExtractMetadata failed: %v", err)
			}
			if meta.Type != tt.want {
				t.Errorf("Type = %v, want %v", meta.Type, tt.want)
			}
		})
	}
}

func TestExtractTOC(t *testing.T) {
	html := `<html><body>
	<div class="toc_entry"><a href="/books?id=X&pg=PA5">Contents</a></div>
	<div class="toc_entry"><a href="/books?id=X&pg=PA9"><span>Chapter </span><span>One</span></a></div>
	<div class="toc_entry"><span>No link here</span></div>
	<div class="toc_entry"><a href="/books?id=X&pg=PA9">Chapter One Revised</a></div>
	</body></html>`

	toc := ExtractTOC(parseDoc(t, html))

	if len(toc) != 2 {
		t.Fatalf("got %d entries, want 2", len(toc))
	}
	if e := toc["PA5"]; e.Title != "Contents" {
		t.Errorf(`toc["PA5"].Title = %q, want "Contents"`, e.Title)
	}
	// Later duplicate wins.
	if e := toc["PA9"]; e.Title != "Chapter One Revised" {
		t.Errorf(`toc["PA9"].Title = %q, want "Chapter One Revised"`, e.Title)
	}
	if e := toc["PA5"]; e.Bold || e.Italic {
		t.Error("entries should default to plain emphasis")
	}
}

func TestExtractTOCConcatenatesTextNodes(t *testing.T) {
	html := `<html><body>
	<div class="toc_entry"><a href="?pg=PA1"><b>Bold</b> and plain</a></div>
	</body></html>`

	toc := ExtractTOC(parseDoc(t, html))
	if e := toc["PA1"]; e.Title != "Bold and plain" {
		t.Errorf("Title = %q, want %q", e.Title, "Bold and plain")
	}
}
