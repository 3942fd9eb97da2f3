package service

import (
	"archive/zip"
	"bytes"
	"fmt"
	"sort"
)

// BuildArchive packs a project file map into a ZIP suitable for download.
// Entries are written in path order so the same project always produces the
// same archive.
func BuildArchive(name string, files map[string]string) ([]byte, error) {
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, path := range paths {
		w, err := zw.Create(name + "/" + path)
		if err != nil {
			return nil, fmt.Errorf("creating archive entry %s: %w", path, err)
		}
		if _, err := w.Write([]byte(files[path])); err != nil {
			return nil, fmt.Errorf("writing archive entry %s: %w", path, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing archive: %w", err)
	}
	return buf.Bytes(), nil
}
