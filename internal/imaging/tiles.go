package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
)

const (
	// TileSize is the pixel edge length of one tile. Edge tiles are
	// truncated to the page bounds.
	TileSize = 256

	// TileGroupSize is the pixel edge length of one request group,
	// up to 3x3 tiles. The service expects tile indices in
	// group-major order.
	TileGroupSize = 768
)

// TileRect is the placement of one tile on the page canvas.
type TileRect struct {
	X, Y int // top-left offset on the canvas
	W, H int // tile dimensions, truncated at the page edges
}

// TileFetchFunc fetches the encoded bytes of one tile. tid is the
// page's monotonic tile index, starting at 0.
type TileFetchFunc func(ctx context.Context, tid int, tile TileRect) ([]byte, error)

// TilePlan computes the tile traversal order for a page of the given
// pixel dimensions.
//
// Tiles are visited group-major then tile-minor, both left-to-right
// then top-to-bottom: group origins advance (0,0), (768,0), (1536,0),
// ... (0,768), ... and within each group tile origins advance in the
// same row-major order. The slice index of each rect is its tid.
func TilePlan(width, height int) []TileRect {
	var plan []TileRect
	for groupY := 0; groupY < height; groupY += TileGroupSize {
		for groupX := 0; groupX < width; groupX += TileGroupSize {
			groupW := min(TileGroupSize, width-groupX)
			groupH := min(TileGroupSize, height-groupY)
			for tileY := 0; tileY < groupH; tileY += TileSize {
				for tileX := 0; tileX < groupW; tileX += TileSize {
					plan = append(plan, TileRect{
						X: groupX + tileX,
						Y: groupY + tileY,
						W: min(TileSize, groupW-tileX),
						H: min(TileSize, groupH-tileY),
					})
				}
			}
		}
	}
	return plan
}

// AssembleTiles reconstructs a full page image from its tiles.
//
// Every tile is fetched and decoded individually and copied onto the
// canvas at its planned offset. A tile that cannot be decoded aborts
// the whole page with ErrImageDecode, since a missing tile would
// corrupt the canvas. The returned format is "png" when any tile
// decoded as PNG, "jpg" otherwise.
func AssembleTiles(ctx context.Context, width, height int, fetch TileFetchFunc) (image.Image, string, error) {
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	format := "jpg"

	for tid, tile := range TilePlan(width, height) {
		data, err := fetch(ctx, tid, tile)
		if err != nil {
			return nil, "", fmt.Errorf("tile %d at (%d,%d): %w", tid, tile.X, tile.Y, err)
		}

		img, kind, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("%w: tile %d at (%d,%d): %v", ErrImageDecode, tid, tile.X, tile.Y, err)
		}
		if kind == "png" {
			format = "png"
		}

		dst := image.Rect(tile.X, tile.Y, tile.X+tile.W, tile.Y+tile.H)
		draw.Draw(canvas, dst, img, img.Bounds().Min, draw.Src)
	}

	return canvas, format, nil
}
