// Package source discovers trait assets under a traits root.
//
// Asset identifiers are slash-separated paths relative to the root, so the
// same corpus yields the same identifiers on every platform. Hidden files
// and directories (leading dot) are ignored; they are where editors and the
// commit step keep their temporary files.
package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	errs "github.com/matzehuels/traitcodec/pkg/errors"
)

// Kind is the file type of an asset.
type Kind string

const (
	Vector Kind = "svg"
	Raster Kind = "png"
)

// Asset is one discovered file.
type Asset struct {
	ID   string // slash path relative to the root
	Path string // path on disk
	Kind Kind
}

// Discover walks root recursively and returns every asset of the given
// kinds, sorted by identifier.
func Discover(ctx context.Context, root string, kinds ...Kind) ([]Asset, error) {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "traits root %s", root)
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, errs.New(errs.ErrCodeInvalidPath, "traits root %s is not a directory", root)
	}

	var out []Asset
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		kind := Kind(strings.ToLower(strings.TrimPrefix(filepath.Ext(p), ".")))
		if !slices.Contains(kinds, kind) {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		out = append(out, Asset{ID: filepath.ToSlash(rel), Path: p, Kind: kind})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	slices.SortFunc(out, func(a, b Asset) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}
