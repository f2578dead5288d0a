package model

// TileGeometry describes how a page image is split into tiles by the
// remote service, and carries everything needed to request the
// individual tiles of that page.
type TileGeometry struct {
	// Width and Height are the full page dimensions in pixels at
	// the selected zoom level.
	Width  int
	Height int

	// Zoom is the resolution level the tiles are served at.
	Zoom int

	// X and Y are the page's scan-job coordinates, passed through
	// verbatim on every tile request.
	X int
	Y int

	// Sig is the signing token tile requests must carry. It is
	// extracted from the query string of the page's resolved image
	// source.
	Sig string
}
