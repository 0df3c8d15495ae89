// Package scan implements the working-tree scanner (C5): it walks a
// directory and builds an in-memory tree.Tree honoring the ignore filter,
// with entries sorted lexicographically and empty subdirectories pruned.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/snapfs-vcs/snapfs/internal/ignore"
	"github.com/snapfs-vcs/snapfs/internal/tree"
)

// Directory builds a tree.Tree rooted at root, extending the inherited
// pattern list with any .ignore file found at each directory level.
// excludeRootDirs names directories to drop by exact name, but only at
// root itself (e.g. the repository's own control directory) — this is a
// hard structural exclusion, independent of the glob fold ignore.Keep
// applies to files, so it never interacts with a directory's own name
// the way a pattern would.
func Directory(root string, excludeRootDirs []string) (*tree.Tree, error) {
	return scanDir(root, root, nil, excludeRootDirs)
}

func scanDir(dir, root string, inherited []string, excludeRootDirs []string) (*tree.Tree, error) {
	local, err := ignore.LoadFile(dir)
	if err != nil {
		return nil, fmt.Errorf("scan: load %s: %w", filepath.Join(dir, ignore.FileName), err)
	}
	patterns := append(append([]string{}, inherited...), local...)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan: read dir %s: %w", dir, err)
	}

	names := make([]string, len(entries))
	byName := make(map[string]os.DirEntry, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
		byName[e.Name()] = e
	}
	sort.Strings(names)

	result := tree.New()
	for _, name := range names {
		entry := byName[name]
		itemPath := filepath.Join(dir, name)

		if entry.IsDir() {
			if dir == root && containsName(excludeRootDirs, name) {
				continue
			}
			sub, err := scanDir(itemPath, root, patterns, excludeRootDirs)
			if err != nil {
				return nil, err
			}
			if !sub.IsEmpty() {
				result.SetDir(name, sub)
			}
			continue
		}

		if !entry.Type().IsRegular() {
			// Non-regular files (symlinks, devices, sockets) are outside
			// spec.md's scope ("no support for symbolic links ... or
			// file metadata beyond byte content"); skip them.
			continue
		}

		if ignore.Keep(name, patterns) {
			result.Set(name, tree.FileEntry{Path: itemPath})
		}
	}

	return result, nil
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
