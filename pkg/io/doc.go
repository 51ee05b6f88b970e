// Package io reads and writes encoded documents and commits a run's output
// to disk.
//
// # Documents
//
// [ReadDocument] and [ImportDocument] decode any variant and validate it.
// [Commit] writes the canonical form: two-space indentation and a trailing
// newline, so re-encoding an unchanged corpus yields a byte-identical file.
// [ExportJSON] writes any other JSON value, such as packed storage, with the
// same formatting.
//
// # Commit
//
// A run produces two artifacts: the document and a mirror tree with one
// reconstructed markup file per asset. [Commit] replaces both so that a
// failure at any point leaves either the previous pair or the new pair on
// disk, never a mix:
//
//  1. the new tree is written to a staging directory next to the mirror;
//  2. the new document is written to a temporary file next to the target;
//  3. the old tree is renamed aside, the staged tree renamed into place;
//  4. the document is renamed over the old one;
//  5. the old tree is removed.
//
// If step 3 or 4 fails the old tree is renamed back. Renames are atomic on
// one filesystem, which the sibling staging paths ensure.
//
// # Digests
//
// [Digest] is the SHA-256 of a byte slice in hex. [Commit] reports the
// digests of the previous and new documents so callers can tell whether a
// run changed anything.
package io
