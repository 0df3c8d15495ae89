// Package diff implements the tree comparator (C6): a typed difference set
// between two tree.Tree values, recursing on matching directory names and
// treating a missing side as the empty tree.
package diff

import (
	"path/filepath"

	"github.com/snapfs-vcs/snapfs/internal/hashid"
	"github.com/snapfs-vcs/snapfs/internal/tree"
)

// accumulator collects entries bucketed by kind, in traversal order within
// each bucket. The final Differences sequence concatenates Added, then
// Updated, then Removed; within a bucket, entries follow the recursion
// (subdirectories before files at each level, names sorted within each).
type accumulator struct {
	added, updated, removed []tree.FileEntry
}

func (a *accumulator) result() tree.Differences {
	out := make(tree.Differences, 0, len(a.added)+len(a.updated)+len(a.removed))
	for _, fe := range a.added {
		out = append(out, tree.Difference{Kind: tree.Added, File: fe})
	}
	for _, fe := range a.updated {
		out = append(out, tree.Difference{Kind: tree.Updated, File: fe})
	}
	for _, fe := range a.removed {
		out = append(out, tree.Difference{Kind: tree.Removed, File: fe})
	}
	return out
}

// Hasher resolves a FileEntry's content hash. tree.FileEntry.ContentHash is
// the default; a caller holding a statcache.DB can pass its ContentHash
// method instead to skip re-hashing unchanged working-copy files.
type Hasher func(tree.FileEntry) (hashid.HashId, error)

// Compare produces a typed difference set between old and new, rooted at
// basePath. Either tree may be nil, treated as the empty tree.
func Compare(basePath string, old, new *tree.Tree) (tree.Differences, error) {
	return CompareWithHasher(basePath, old, new, tree.FileEntry.ContentHash)
}

// CompareWithHasher is Compare with the content-hash resolution strategy
// made explicit, letting callers plug in a cached hasher (statcache.DB).
func CompareWithHasher(basePath string, old, new *tree.Tree, hash Hasher) (tree.Differences, error) {
	acc := &accumulator{}
	if err := compareInto(basePath, old, new, hash, acc); err != nil {
		return nil, err
	}
	return acc.result(), nil
}

func compareInto(basePath string, old, new *tree.Tree, hash Hasher, acc *accumulator) error {
	if old == nil {
		old = tree.New()
	}
	if new == nil {
		new = tree.New()
	}

	for _, name := range new.SortedDirNames() {
		childPath := joinPath(basePath, name)
		oldChild := old.Directories[name] // nil when absent: treated as empty
		if err := compareInto(childPath, oldChild, new.Directories[name], hash, acc); err != nil {
			return err
		}
	}

	for _, name := range new.SortedFileNames() {
		filePath := joinPath(basePath, name)
		newFE := withPath(new.Files[name], filePath)

		oldFE, existed := old.Files[name]
		if !existed {
			acc.added = append(acc.added, newFE)
			continue
		}

		newHash, err := hash(new.Files[name])
		if err != nil {
			return err
		}
		oldHash, err := hash(oldFE)
		if err != nil {
			return err
		}
		if newHash != oldHash {
			acc.updated = append(acc.updated, newFE)
		}
	}

	for _, name := range old.SortedFileNames() {
		if _, stillPresent := new.Files[name]; stillPresent {
			continue
		}
		filePath := joinPath(basePath, name)
		acc.removed = append(acc.removed, withPath(old.Files[name], filePath))
	}

	for _, name := range old.SortedDirNames() {
		if _, stillPresent := new.Directories[name]; stillPresent {
			continue
		}
		childPath := joinPath(basePath, name)
		if err := compareInto(childPath, old.Directories[name], tree.New(), hash, acc); err != nil {
			return err
		}
	}

	return nil
}

// withPath returns a copy of fe with its display Path set to the
// repo-relative path being reported, preserving IsBlob/HashId/BlobPath so
// callers can tell whether the entry's content hash is already known.
func withPath(fe tree.FileEntry, p string) tree.FileEntry {
	fe.Path = p
	return fe
}

// joinPath reconstructs the path a name has at this recursion depth. When
// basePath is an actual working-directory root, this lines up exactly with
// the path the scanner (C5) used to build the corresponding FileEntry, so
// withPath's override of Path is a no-op for real scans and only meaningful when
// comparing two detached trees that were never backed by a live directory.
func joinPath(base, name string) string {
	return filepath.Join(base, name)
}
