package assemble

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteCBZ packs every file in imageDir into a zip archive at dest,
// one deflate-compressed entry per file, named like the source file.
// Comic readers sort entries by name, which the zero-padded sequence
// prefix of the page filenames satisfies.
func WriteCBZ(imageDir, dest string) error {
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}

	zw := zip.NewWriter(out)

	entries, err := os.ReadDir(imageDir)
	if err != nil {
		out.Close()
		return fmt.Errorf("reading image directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := addZipEntry(zw, filepath.Join(imageDir, entry.Name()), entry.Name()); err != nil {
			out.Close()
			return err
		}
	}

	if err := zw.Close(); err != nil {
		out.Close()
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return out.Close()
}

func addZipEntry(zw *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:   name,
		Method: zip.Deflate,
	})
	if err != nil {
		return fmt.Errorf("creating entry %s: %w", name, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("writing entry %s: %w", name, err)
	}
	return nil
}
