// Package stage implements the stage (C7): a single persisted record
// partitioning a difference set into added/updated/removed file entries by
// a glob pattern, using the same fold rule as the ignore filter (§4.4,
// S6-normative) but matched against each difference's whole file path (as
// the comparator reports it, rooted at its base path) rather than single
// path components, so "*" crosses "/" the way the original
// implementation's fnmatch-backed patterns_filter does.
package stage

import (
	"github.com/snapfs-vcs/snapfs/internal/fnmatch"
	"github.com/snapfs-vcs/snapfs/internal/globfold"
	"github.com/snapfs-vcs/snapfs/internal/repofs"
	"github.com/snapfs-vcs/snapfs/internal/tree"
)

// Load reads the stage record at path. A missing file is not valid; callers
// should only call Load once C9's init has written the initial empty stage.
func Load(path string) (tree.Stage, error) {
	dict, err := repofs.ReadDict(path)
	if err != nil {
		return tree.Stage{}, err
	}
	return tree.StageFromDict(dict)
}

// Store atomically persists s at path. Storing the same selection twice is
// idempotent: the written bytes are identical both times (canon encoding is
// deterministic), so the operation is a semantic no-op on repeat.
func Store(path string, s tree.Stage) error {
	return repofs.WriteDict(path, s.ToDict())
}

// Select filters differences to those whose file path survives the §4.4
// fold against patterns, then partitions the survivors by kind into a
// Stage. An empty pattern list keeps everything.
func Select(differences tree.Differences, patterns []string) tree.Stage {
	var s tree.Stage
	for _, d := range differences {
		if !globfold.Keep(d.File.Path, patterns, fnmatch.Match) {
			continue
		}
		switch d.Kind {
		case tree.Added:
			s.Added = append(s.Added, d.File)
		case tree.Updated:
			s.Updated = append(s.Updated, d.File)
		case tree.Removed:
			s.Removed = append(s.Removed, d.File)
		}
	}
	return s
}
