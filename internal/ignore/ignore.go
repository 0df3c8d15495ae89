// Package ignore implements the pattern-based inclusion/exclusion filter
// (C4): glob patterns with a leading "^" denoting a re-include override,
// evaluated as a left fold over the pattern list.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/snapfs-vcs/snapfs/internal/globfold"
)

// FileName is the name of the per-directory pattern file.
const FileName = ".ignore"

// Keep implements patterns_filter: the scanning-side fold (§4.4), matching
// name as a single path component — never containing "/" — so shell
// file-name matching (filepath.Match) is equivalent to Python's fnmatch.
func Keep(name string, patterns []string) bool {
	return globfold.Keep(name, patterns, matches)
}

// Ignore implements the diff post-filter surface: the complement of Keep.
func Ignore(name string, patterns []string) bool {
	return !Keep(name, patterns)
}

// matches reports whether name matches a single glob pattern, using shell
// file-name matching semantics equivalent to Python's fnmatch (the
// original implementation's matcher).
func matches(name, glob string) bool {
	ok, err := filepath.Match(glob, name)
	if err != nil {
		return false
	}
	return ok
}

// LoadFile reads a .ignore file from dir, returning its patterns in file
// order. A missing file yields no patterns. Comment lines (leading "#")
// and blank lines are skipped.
func LoadFile(dir string) ([]string, error) {
	path := filepath.Join(dir, FileName)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return patterns, nil
}
