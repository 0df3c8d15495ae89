package tree

import "github.com/snapfs-vcs/snapfs/internal/hashid"

// Author identifies who made a commit.
type Author struct {
	Name     string `json:"name"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
}

// Commit is an immutable record referencing a tree and its parents.
type Commit struct {
	Author                 Author         `json:"author"`
	Message                string         `json:"message"`
	TreeHashId             hashid.HashId  `json:"tree_hashid"`
	PreviousCommitsHashIds []hashid.HashId `json:"previous_commits_hashids"`
}

// Head names the currently active reference or commit.
type Head struct {
	Ref string `json:"ref"`
}

// Branch is a movable pointer that advances on every commit made while it
// is the active reference.
type Branch struct {
	CommitHashId hashid.HashId `json:"commit_hashid"`
}

// Tag is a pointer that does not advance on commit.
type Tag struct {
	CommitHashId hashid.HashId `json:"commit_hashid"`
	Message      string        `json:"message"`
}

// DiffKind tags a Difference entry.
type DiffKind int

const (
	Added DiffKind = iota
	Updated
	Removed
)

// String renders a DiffKind as a lowercase word ("added", "updated",
// "removed"); status output uses termcolor.Printer.Kind's letters instead.
func (k DiffKind) String() string {
	switch k {
	case Added:
		return "added"
	case Updated:
		return "updated"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Difference is a single tagged entry in a difference set.
type Difference struct {
	Kind DiffKind
	File FileEntry
}

// Differences is an ordered difference set: all Added entries (in traversal
// order), then all Updated entries, then all Removed entries (§4.6).
type Differences []Difference

// Added returns the Added-kind entries, preserving their relative order.
func (d Differences) Added() []FileEntry { return d.filter(Added) }

// UpdatedEntries returns the Updated-kind entries.
func (d Differences) UpdatedEntries() []FileEntry { return d.filter(Updated) }

// Removed returns the Removed-kind entries.
func (d Differences) Removed() []FileEntry { return d.filter(Removed) }

func (d Differences) filter(kind DiffKind) []FileEntry {
	var out []FileEntry
	for _, entry := range d {
		if entry.Kind == kind {
			out = append(out, entry.File)
		}
	}
	return out
}

// Stage is a persisted selection of pending differences, partitioned by
// kind.
type Stage struct {
	Added   []FileEntry `json:"added_files"`
	Updated []FileEntry `json:"updated_files"`
	Removed []FileEntry `json:"removed_files"`
}

// IsEmpty reports whether the stage has no pending entries.
func (s Stage) IsEmpty() bool {
	return len(s.Added) == 0 && len(s.Updated) == 0 && len(s.Removed) == 0
}
