package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// ErrImageDecode indicates a corrupt page or tile image.
var ErrImageDecode = errors.New("imaging: image could not be decoded")

// ExtFromContentType derives an image filename extension from an HTTP
// Content-Type header value. "jpeg" is normalized to "jpg"; an
// unusable header falls back to "jpg".
func ExtFromContentType(contentType string) string {
	ext := contentType
	if i := strings.Index(ext, "/"); i >= 0 {
		ext = ext[i+1:]
	}
	if i := strings.Index(ext, ";"); i >= 0 {
		ext = ext[:i]
	}
	ext = strings.TrimSpace(ext)
	if ext == "jpeg" {
		ext = "jpg"
	}
	if ext == "" {
		ext = "jpg"
	}
	return ext
}

// EnsureRGB re-encodes a PNG to opaque 24-bit RGB when it is not
// already, so the PDF embedder can handle it. Gray, paletted and
// alpha-bearing PNGs are redrawn onto an opaque canvas; anything
// already opaque truecolor passes through untouched. Non-PNG data is
// returned as is.
func EnsureRGB(data []byte) ([]byte, error) {
	img, kind, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	if kind != "png" {
		return data, nil
	}

	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		if opaque, ok := img.(interface{ Opaque() bool }); ok && opaque.Opaque() {
			return data, nil
		}
	}

	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	// White backdrop for transparent regions.
	xdraw.Draw(dst, dst.Bounds(), image.White, image.Point{}, xdraw.Src)
	xdraw.Draw(dst, dst.Bounds(), img, bounds.Min, xdraw.Over)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveImage encodes img to path. format selects the encoder: "png"
// writes PNG, anything else JPEG at high quality.
func SaveImage(path string, img image.Image, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if format == "png" {
		return png.Encode(f, img)
	}
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}
