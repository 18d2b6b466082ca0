package memory

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExportArchive writes a zip archive of every persisted record to w. Each
// archive entry is named identically to its record file. This is a read-only
// snapshot; live state is unaffected.
func (s *Store) ExportArchive(w io.Writer) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("listing records: %w", err)
	}

	zw := zip.NewWriter(w)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("reading record %s: %w", entry.Name(), err)
		}

		f, err := zw.Create(entry.Name())
		if err != nil {
			return fmt.Errorf("adding %s to archive: %w", entry.Name(), err)
		}
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("writing %s to archive: %w", entry.Name(), err)
		}
	}

	return zw.Close()
}
