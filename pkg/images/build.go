package images

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dossierlab/dossier/pkg/errors"
	"github.com/dossierlab/dossier/pkg/types"
)

// imageExts are the file extensions indexed as person images.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Build scans the sorted image folders and constructs a fresh index.
// Keys come from file stems with underscores and hyphens treated as
// spaces, title-cased. The "documents" subfolder holds document scans,
// not person photos, and is skipped. Paths are stored relative to
// baseDir. Directory walk order is lexical, so the resulting insertion
// order is stable across runs.
func Build(baseDir, imagesDir string) (*Index, error) {
	ix := NewIndex()
	if _, err := os.Stat(imagesDir); err != nil {
		// No image folders yet; an empty index is a valid result.
		return ix, nil
	}

	err := filepath.WalkDir(imagesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !imageExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		category := filepath.Base(filepath.Dir(path))
		if category == "documents" {
			return nil
		}

		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		stem = strings.ReplaceAll(stem, "_", " ")
		stem = strings.ReplaceAll(stem, "-", " ")
		key := Canonical(stem)
		if key == "" {
			return nil
		}

		rel, relErr := filepath.Rel(baseDir, path)
		if relErr != nil {
			rel = path
		}

		info, infoErr := d.Info()
		var size int64
		if infoErr == nil {
			size = info.Size()
		}

		ix.Add(key, types.ImageRef{
			Path:      filepath.ToSlash(rel),
			Filename:  filepath.Base(path),
			Category:  category,
			SizeBytes: size,
		})
		return nil
	})
	if err != nil {
		return ix, errors.WrapIO("read", imagesDir, err)
	}
	return ix, nil
}

// CategoryCounts reports how many indexed names have at least one image
// in each category.
func (ix *Index) CategoryCounts() map[string]int {
	counts := make(map[string]int)
	for pair := ix.entries.Oldest(); pair != nil; pair = pair.Next() {
		seen := make(map[string]bool)
		for _, ref := range pair.Value {
			if !seen[ref.Category] {
				seen[ref.Category] = true
				counts[ref.Category]++
			}
		}
	}
	return counts
}
