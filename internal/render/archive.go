package render

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// buildArchive zips the rendered clips into one downloadable file. Entries
// keep their base names so the archive lists in segment order.
func buildArchive(zipPath string, files []string) error {
	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, path := range files {
		if err := addFile(zw, path); err != nil {
			zw.Close()
			os.Remove(zipPath)
			return err
		}
	}
	if err := zw.Close(); err != nil {
		os.Remove(zipPath)
		return fmt.Errorf("finalize archive: %w", err)
	}
	return nil
}

func addFile(zw *zip.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	w, err := zw.Create(filepath.Base(path))
	if err != nil {
		return fmt.Errorf("add %s: %w", path, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
