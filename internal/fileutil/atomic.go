// Package fileutil writes output files atomically next to their final location.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	ownerReadWrite = 0o600
	executableBits = 0o111
)

// Output is a temporary file that becomes the output path on Commit.
type Output struct {
	*os.File

	src    os.FileInfo
	target string
	done   bool
}

// Create stats the source file and opens a temporary file in the directory of target.
// Callers must defer Discard.
func Create(source, target string) (*Output, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("getting file info for %q: %w", source, err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%q is not a regular file", source)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file: %w", err)
	}

	return &Output{File: tmp, src: info, target: target}, nil
}

// Commit closes the temporary file, carries over the executable bits of the source,
// renames it onto the target and, if requested, copies the source modification time.
// It returns the size of the committed file.
func (o *Output) Commit(preserveTimestamps bool) (int64, error) {
	perm := os.FileMode(ownerReadWrite) | o.src.Mode()&executableBits

	if err := o.Chmod(perm); err != nil {
		return 0, fmt.Errorf("setting file permissions: %w", err)
	}

	if err := o.Close(); err != nil {
		return 0, fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Rename(o.Name(), o.target); err != nil {
		return 0, fmt.Errorf("renaming output file: %w", err)
	}

	o.done = true

	if preserveTimestamps {
		modTime := o.src.ModTime()
		if err := os.Chtimes(o.target, modTime, modTime); err != nil {
			return 0, fmt.Errorf("preserving timestamps: %w", err)
		}
	}

	info, err := os.Stat(o.target)
	if err != nil {
		return 0, fmt.Errorf("stat output %q: %w", o.target, err)
	}

	return info.Size(), nil
}

// Discard removes the temporary file unless Commit succeeded in renaming it.
func (o *Output) Discard() {
	if o.done {
		return
	}

	o.Close()           //nolint:errcheck,gosec // best-effort cleanup
	os.Remove(o.Name()) //nolint:errcheck,gosec // best-effort cleanup
}
