package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/traitcodec/pkg/codec"
	errs "github.com/matzehuels/traitcodec/pkg/errors"
	"github.com/matzehuels/traitcodec/pkg/reconstruct"
)

func sampleDoc() *codec.VectorDocument {
	return &codec.VectorDocument{
		Variant:      codec.VariantPath,
		Geometry:     []string{"M 0,0 H 10"},
		Fill:         []string{"ff0000"},
		Trait:        []codec.VectorTrait{{Asset: "00/000.svg", Codes: []codec.VectorCode{{}}}},
		LayerIndexes: []int{0},
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	data, err := codec.Marshal(sampleDoc())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "}\n") || !strings.Contains(string(data), "\n  \"geometry\"") {
		t.Errorf("unexpected formatting:\n%s", data)
	}
	got, err := ReadDocument(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(codec.Document(sampleDoc()), got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestImportDocumentMissing(t *testing.T) {
	_, err := ImportDocument(filepath.Join(t.TempDir(), "nope.json"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want %s", err, errs.ErrCodeFileNotFound)
	}
}

func TestCommitWritesImportableDocument(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "data", "palettes.json")
	if _, err := Commit(path, sampleDoc(), filepath.Join(root, "out"), nil); err != nil {
		t.Fatal(err)
	}
	doc, err := ImportDocument(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Kind() != codec.VariantPath {
		t.Errorf("Kind = %s", doc.Kind())
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestDigest(t *testing.T) {
	if got := Digest(nil); got != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
		t.Errorf("Digest(nil) = %s", got)
	}
	got, err := FileDigest(filepath.Join(t.TempDir(), "missing"))
	if err != nil || got != "" {
		t.Errorf("FileDigest(missing) = %q, %v", got, err)
	}
}

func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, _ := filepath.Rel(root, p)
		data, err := os.ReadFile(p)
		out[filepath.ToSlash(rel)] = string(data)
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestCommit(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "palettes.json")
	mirror := filepath.Join(dir, "computed")

	first := []reconstruct.File{{Path: "00/000.svg", Data: []byte("a")}, {Path: "01/stale.svg", Data: []byte("b")}}
	res, err := Commit(docPath, sampleDoc(), mirror, first)
	if err != nil {
		t.Fatal(err)
	}
	if res.Previous != "" || !res.Changed() || res.Files != 2 {
		t.Errorf("first commit = %+v", res)
	}

	second := []reconstruct.File{{Path: "00/000.svg", Data: []byte("c")}}
	res, err = Commit(docPath, sampleDoc(), mirror, second)
	if err != nil {
		t.Fatal(err)
	}
	if res.Changed() {
		t.Errorf("identical document reported as changed: %+v", res)
	}
	if diff := cmp.Diff(map[string]string{"00/000.svg": "c"}, readTree(t, mirror)); diff != "" {
		t.Errorf("mirror tree mismatch (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if diff := cmp.Diff([]string{"computed", "palettes.json"}, names); diff != "" {
		t.Errorf("staging left behind (-want +got):\n%s", diff)
	}
}

func TestCommitRejectsEscapingPath(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "palettes.json")
	mirror := filepath.Join(dir, "computed")
	if _, err := Commit(docPath, sampleDoc(), mirror, []reconstruct.File{{Path: "00/a.svg", Data: []byte("keep")}}); err != nil {
		t.Fatal(err)
	}

	_, err := Commit(docPath, sampleDoc(), mirror, []reconstruct.File{{Path: "../evil.svg"}})
	if !errs.Is(err, errs.ErrCodeInvalidPath) {
		t.Fatalf("err = %v, want %s", err, errs.ErrCodeInvalidPath)
	}
	if diff := cmp.Diff(map[string]string{"00/a.svg": "keep"}, readTree(t, mirror)); diff != "" {
		t.Errorf("previous tree disturbed (-want +got):\n%s", diff)
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packed.json")
	if err := ExportJSON(map[string]string{"a": "0x00"}, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{\n  \"a\": \"0x00\"\n}\n" {
		t.Errorf("ExportJSON wrote %q", data)
	}
}

func TestCommitTreeOnly(t *testing.T) {
	mirror := filepath.Join(t.TempDir(), "out")
	res, err := Commit("", sampleDoc(), mirror, []reconstruct.File{{Path: "00/000.svg", Data: []byte("x")}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Previous != "" || res.Files != 1 {
		t.Errorf("result = %+v", res)
	}
	if diff := cmp.Diff(map[string]string{"00/000.svg": "x"}, readTree(t, mirror)); diff != "" {
		t.Errorf("mirror tree mismatch (-want +got):\n%s", diff)
	}
}
