package io

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/traitcodec/pkg/codec"
	errs "github.com/matzehuels/traitcodec/pkg/errors"
)

// ReadDocument decodes and validates a document of any variant from r.
// ReadDocument does not close r.
func ReadDocument(r io.Reader) (codec.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return codec.Unmarshal(data)
}

// ImportDocument reads the document at path.
func ImportDocument(path string) (codec.Document, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	doc, err := ReadDocument(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
