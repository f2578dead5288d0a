package model

import (
	"fmt"
	"strings"
)

// Format is an output document format.
type Format string

const (
	// FormatPDF assembles page images into a PDF with a bookmark
	// outline built from the document's table of contents.
	FormatPDF Format = "pdf"

	// FormatCBZ packs page images into a zip archive with a .cbz
	// extension.
	FormatCBZ Format = "cbz"
)

// FormatSet is the set of output formats requested for a download.
type FormatSet map[Format]struct{}

// NewFormatSet builds a set from the given formats.
func NewFormatSet(formats ...Format) FormatSet {
	s := make(FormatSet, len(formats))
	for _, f := range formats {
		s[f] = struct{}{}
	}
	return s
}

// ParseFormatSet parses a comma-separated format list such as
// "pdf,cbz". The special value "all" selects every known format.
func ParseFormatSet(s string) (FormatSet, error) {
	set := make(FormatSet)
	for _, part := range strings.Split(s, ",") {
		switch Format(strings.ToLower(strings.TrimSpace(part))) {
		case FormatPDF:
			set[FormatPDF] = struct{}{}
		case FormatCBZ:
			set[FormatCBZ] = struct{}{}
		case "all":
			set[FormatPDF] = struct{}{}
			set[FormatCBZ] = struct{}{}
		case "":
		default:
			return nil, fmt.Errorf("unknown output format %q", part)
		}
	}
	return set, nil
}

// Contains reports whether f is in the set.
func (s FormatSet) Contains(f Format) bool {
	_, ok := s[f]
	return ok
}

// Remove deletes f from the set.
func (s FormatSet) Remove(f Format) {
	delete(s, f)
}

// Empty reports whether no formats remain.
func (s FormatSet) Empty() bool {
	return len(s) == 0
}

// Clone returns an independent copy of the set.
func (s FormatSet) Clone() FormatSet {
	c := make(FormatSet, len(s))
	for f := range s {
		c[f] = struct{}{}
	}
	return c
}
