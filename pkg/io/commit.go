package io

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/traitcodec/pkg/codec"
	errs "github.com/matzehuels/traitcodec/pkg/errors"
	"github.com/matzehuels/traitcodec/pkg/reconstruct"
)

// Digest returns the hex SHA-256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FileDigest returns the digest of the file at path, or "" if it does not
// exist.
func FileDigest(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return Digest(data), nil
}

// CommitResult describes a finished commit.
type CommitResult struct {
	Previous string // digest of the replaced document, "" if there was none
	Digest   string // digest of the new document
	Files    int    // files in the new mirror tree
}

// Changed reports whether the document content differs from the one it
// replaced.
func (r CommitResult) Changed() bool { return r.Previous != r.Digest }

// Commit replaces the document at docPath and the whole mirror tree at
// mirrorDir. Every file path must be local to the tree. Either both
// artifacts are replaced or neither is. With an empty docPath only the tree
// is replaced.
func Commit(docPath string, doc codec.Document, mirrorDir string, files []reconstruct.File) (CommitResult, error) {
	data, err := codec.Marshal(doc)
	if err != nil {
		return CommitResult{}, err
	}
	for _, f := range files {
		if !filepath.IsLocal(filepath.FromSlash(f.Path)) {
			return CommitResult{}, errs.New(errs.ErrCodeInvalidPath, "mirror path %q escapes the output tree", f.Path)
		}
	}

	prev := ""
	if docPath != "" {
		if prev, err = FileDigest(docPath); err != nil {
			return CommitResult{}, err
		}
	}

	mirrorDir = filepath.Clean(mirrorDir)
	parent := filepath.Dir(mirrorDir)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return CommitResult{}, fmt.Errorf("create %s: %w", parent, err)
	}
	stage, err := os.MkdirTemp(parent, "."+filepath.Base(mirrorDir)+".new.*")
	if err != nil {
		return CommitResult{}, fmt.Errorf("stage mirror: %w", err)
	}
	// stage is renamed away on success; RemoveAll is then a no-op.
	defer os.RemoveAll(stage)

	for _, f := range files {
		dst := filepath.Join(stage, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return CommitResult{}, fmt.Errorf("create %s: %w", filepath.Dir(dst), err)
		}
		if err := os.WriteFile(dst, f.Data, 0644); err != nil {
			return CommitResult{}, fmt.Errorf("write %s: %w", f.Path, err)
		}
	}
	if err := os.Chmod(stage, 0755); err != nil {
		return CommitResult{}, fmt.Errorf("chmod %s: %w", stage, err)
	}

	docTmp := ""
	if docPath != "" {
		if docTmp, err = stageFile(docPath, data); err != nil {
			return CommitResult{}, err
		}
		defer os.Remove(docTmp)
	}

	backup := ""
	if _, err := os.Stat(mirrorDir); err == nil {
		backup = stage + ".old"
		if err := os.Rename(mirrorDir, backup); err != nil {
			return CommitResult{}, fmt.Errorf("move aside %s: %w", mirrorDir, err)
		}
	} else if !os.IsNotExist(err) {
		return CommitResult{}, fmt.Errorf("stat %s: %w", mirrorDir, err)
	}
	restore := func() {
		_ = os.RemoveAll(mirrorDir)
		if backup != "" {
			_ = os.Rename(backup, mirrorDir)
		}
	}

	if err := os.Rename(stage, mirrorDir); err != nil {
		restore()
		return CommitResult{}, fmt.Errorf("install %s: %w", mirrorDir, err)
	}
	if docTmp != "" {
		if err := os.Rename(docTmp, docPath); err != nil {
			restore()
			return CommitResult{}, fmt.Errorf("replace %s: %w", docPath, err)
		}
	}
	if backup != "" {
		if err := os.RemoveAll(backup); err != nil {
			return CommitResult{}, fmt.Errorf("remove old mirror: %w", err)
		}
	}

	return CommitResult{Previous: prev, Digest: Digest(data), Files: len(files)}, nil
}
