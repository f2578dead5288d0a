// Package imaging handles page image processing: normalizing
// downloaded images for PDF embedding and reconstructing pages served
// as tile grids.
//
// # Tile reconstruction
//
// Newspaper pages are often served as 256-pixel square tiles instead
// of a single image. TilePlan computes the strict traversal order the
// service expects (768-pixel groups, row-major at both levels) and
// AssembleTiles fetches and composites the tiles onto a canvas:
//
//	plan := imaging.TilePlan(600, 400) // 6 tiles, one group
//	img, format, err := imaging.AssembleTiles(ctx, w, h, fetchTile)
//
// The tile index passed to the fetch function is the tid request
// parameter, monotonically increasing from 0 per page.
package imaging
