package model

// TocEntry is one outline entry of a document's table of contents.
// Entries carry display styling that is preserved in the generated
// PDF outline.
type TocEntry struct {
	// Title is the entry title as it appears in the outline.
	Title string

	// Bold and Italic are the emphasis flags for the outline entry.
	Bold   bool
	Italic bool

	// Color is the RGB display color, each component in [0,1].
	// The zero value is black.
	Color [3]float32
}

// TableOfContents maps page image filenames to their outline entries.
//
// Entries are keyed by page identifier while the landing page is
// parsed, then associated with image filenames as pages are
// downloaded. The assemblers only ever see the filename-keyed form.
type TableOfContents struct {
	byFile map[string]TocEntry
}

// NewTableOfContents returns an empty table of contents.
func NewTableOfContents() *TableOfContents {
	return &TableOfContents{byFile: make(map[string]TocEntry)}
}

// AddPage associates an outline entry with a page image filename.
// A later entry for the same filename replaces the earlier one.
func (t *TableOfContents) AddPage(filename string, entry TocEntry) {
	t.byFile[filename] = entry
}

// Lookup returns the outline entry for a page image filename.
func (t *TableOfContents) Lookup(filename string) (TocEntry, bool) {
	e, ok := t.byFile[filename]
	return e, ok
}

// Len returns the number of entries.
func (t *TableOfContents) Len() int {
	return len(t.byFile)
}
