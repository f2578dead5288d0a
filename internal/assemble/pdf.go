package assemble

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	_ "image/jpeg" // page image decoder registration
	_ "image/png"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpu "github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/color"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/bookgrab/bookgrab/internal/model"
)

// WritePDF assembles the page images in imageDir into a PDF at dest.
//
// Images are embedded one per page in filename order, each page sized
// to its image; the zero-padded sequence prefix of the filenames makes
// that order the page order. Images that cannot be decoded are logged
// and skipped rather than failing the whole document. When the table
// of contents has an entry for an image's filename, a bookmark with
// the entry's title, emphasis and color is attached to that page; a
// document without any bookmarks gets no outline at all.
func WritePDF(imageDir, dest string, toc *model.TableOfContents, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	entries, err := os.ReadDir(imageDir)
	if err != nil {
		return fmt.Errorf("reading image directory: %w", err)
	}

	var files []string
	var bookmarks []pdfcpu.Bookmark
	page := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(imageDir, entry.Name())
		if err := probeImage(path); err != nil {
			logger.Warn("skipping unreadable page image", "file", entry.Name(), "error", err)
			continue
		}

		page++
		files = append(files, path)

		if e, ok := toc.Lookup(entry.Name()); ok {
			bookmarks = append(bookmarks, pdfcpu.Bookmark{
				Title:    e.Title,
				PageFrom: page,
				Bold:     e.Bold,
				Italic:   e.Italic,
				Color:    &color.SimpleColor{R: e.Color[0], G: e.Color[1], B: e.Color[2]},
			})
		}
	}

	if len(files) == 0 {
		return fmt.Errorf("no usable page images in %s", imageDir)
	}

	conf := pdfmodel.NewDefaultConfiguration()
	conf.WriteObjectStream = true

	if err := api.ImportImagesFile(files, dest, pdfcpu.DefaultImportConfig(), conf); err != nil {
		return fmt.Errorf("importing page images: %w", err)
	}

	if len(bookmarks) > 0 {
		if err := api.AddBookmarksFile(dest, "", bookmarks, true, conf); err != nil {
			return fmt.Errorf("adding outline bookmarks: %w", err)
		}
	}
	return nil
}

// probeImage checks that the file decodes as a supported image.
func probeImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, _, err = image.DecodeConfig(f)
	return err
}
