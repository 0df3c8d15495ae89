// Package tree holds the recursive directory/file data model shared by the
// scanner (C5), the object store (C3), and the comparator (C6): a single
// Tree type represents both an in-memory working-directory snapshot (file
// entries carry a filesystem path, content unhashed) and a tree loaded from
// the object store (file entries carry a known HashId), mirroring how the
// original implementation reused one Directory/File pair for both.
package tree

import (
	"fmt"
	"sort"

	"github.com/snapfs-vcs/snapfs/internal/hashid"
)

// FileEntry names a single file, either a working-copy path waiting to be
// hashed on demand, or an already-materialized blob.
type FileEntry struct {
	Path     string       `json:"path"`
	IsBlob   bool         `json:"is_blob"`
	BlobPath string       `json:"blob_path,omitempty"`
	HashId   hashid.HashId `json:"hashid"`
}

// ContentHash returns the FileEntry's content hash, computing it from the
// working-copy file when the entry isn't already a materialized blob.
func (fe FileEntry) ContentHash() (hashid.HashId, error) {
	if fe.IsBlob && fe.HashId != "" {
		return fe.HashId, nil
	}
	if fe.Path == "" {
		return "", fmt.Errorf("tree: file entry has neither a known hash nor a path to hash")
	}
	return hashid.HashFile(fe.Path)
}

// Tree is a directory snapshot: a mapping of names to child Trees and a
// mapping of names to FileEntries. The maps are unordered; SortedDirNames
// and SortedFileNames give their names in lexicographic order.
type Tree struct {
	Directories map[string]*Tree
	Files       map[string]FileEntry
}

// New returns an empty Tree. An empty Tree is legal and, once stored,
// resolves to the same fixed HashId everywhere (I5).
func New() *Tree {
	return &Tree{
		Directories: map[string]*Tree{},
		Files:       map[string]FileEntry{},
	}
}

// IsEmpty reports whether the tree has no directories and no files.
func (t *Tree) IsEmpty() bool {
	return t == nil || (len(t.Directories) == 0 && len(t.Files) == 0)
}

// SortedDirNames returns directory names in lexicographic order.
func (t *Tree) SortedDirNames() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.Directories))
	for name := range t.Directories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SortedFileNames returns file names in lexicographic order.
func (t *Tree) SortedFileNames() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.Files))
	for name := range t.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Set inserts or replaces a file entry by name.
func (t *Tree) Set(name string, fe FileEntry) {
	t.Files[name] = fe
}

// SetDir inserts or replaces a subdirectory by name.
func (t *Tree) SetDir(name string, sub *Tree) {
	t.Directories[name] = sub
}
