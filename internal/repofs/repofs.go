// Package repofs provides the small filesystem helpers shared by the
// mutable (non-content-addressed) parts of a repository's .snapfs/
// directory: the stage (C7), references, and HEAD (C8). Unlike the object
// store (C3), these paths are overwritten in place on every update, so
// writes are atomic (temp file + rename) but never marked read-only.
package repofs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/snapfs-vcs/snapfs/internal/canon"
)

// WriteDict canonically encodes dict and atomically replaces the file at
// path, creating parent directories as needed.
func WriteDict(path string, dict map[string]any) error {
	data, err := canon.Encode(dict)
	if err != nil {
		return fmt.Errorf("repofs: encode %s: %w", path, err)
	}
	return WriteFile(path, data)
}

// WriteFile atomically replaces the file at path with data.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("repofs: mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("repofs: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("repofs: write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("repofs: sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("repofs: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("repofs: rename into place: %w", err)
	}
	cleanup = false
	return nil
}

// ReadDict reads and canon-decodes the dictionary stored at path.
func ReadDict(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return canon.Decode(data)
}

// Exists reports whether a path exists, regardless of kind.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
