// Package refs implements the reference set (C8): branch and tag pointers
// on disk plus the HEAD state machine that resolves to one of Empty,
// OnBranch, OnTag, or Detached (§4.8), grounded on the teacher's
// internal/refs Timeline/RefsManager file-per-reference layout, adapted
// from a single-timeline-kind model to snapfs's branch/tag/HEAD triad.
package refs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/snapfs-vcs/snapfs/internal/hashid"
	"github.com/snapfs-vcs/snapfs/internal/repoerr"
	"github.com/snapfs-vcs/snapfs/internal/repofs"
	"github.com/snapfs-vcs/snapfs/internal/tree"
)

const (
	branchesDir = "references/branches"
	tagsDir     = "references/tags"
	headFile    = "HEAD"
)

// State tags which arm of the HEAD variant is active (§9).
type State int

const (
	Empty State = iota
	OnBranch
	OnTag
	Detached
)

// Refs is a handle onto the reference set rooted at a .snapfs/ directory.
type Refs struct {
	root string // the .snapfs/ directory
}

// Open returns a Refs handle rooted at snapfsDir. It does not create any
// files; callers use Init for that.
func Open(snapfsDir string) *Refs {
	return &Refs{root: snapfsDir}
}

func (r *Refs) branchPath(name string) string { return filepath.Join(r.root, branchesDir, name) }
func (r *Refs) tagPath(name string) string     { return filepath.Join(r.root, tagsDir, name) }
func (r *Refs) headPath() string               { return filepath.Join(r.root, headFile) }

// Init creates an empty HEAD record (S1: HEAD is written empty; checkout
// establishes "main" separately, per §4.8's init transition).
func (r *Refs) Init() error {
	return r.writeHead(tree.Head{Ref: ""})
}

// ReadHead loads the HEAD record.
func (r *Refs) ReadHead() (tree.Head, error) {
	dict, err := repofs.ReadDict(r.headPath())
	if err != nil {
		return tree.Head{}, fmt.Errorf("refs: read HEAD: %w", err)
	}
	return tree.HeadFromDict(dict)
}

func (r *Refs) writeHead(h tree.Head) error {
	return repofs.WriteDict(r.headPath(), h.ToDict())
}

// Resolve classifies the current HEAD into its state-machine arm and, for
// OnBranch/OnTag, the referenced name.
func (r *Refs) Resolve() (State, string, error) {
	head, err := r.ReadHead()
	if err != nil {
		return Empty, "", err
	}
	switch {
	case head.Ref == "":
		return Empty, "", nil
	case strings.HasPrefix(head.Ref, branchesDir+"/"):
		return OnBranch, strings.TrimPrefix(head.Ref, branchesDir+"/"), nil
	case strings.HasPrefix(head.Ref, tagsDir+"/"):
		return OnTag, strings.TrimPrefix(head.Ref, tagsDir+"/"), nil
	default:
		return Detached, head.Ref, nil
	}
}

// ReadBranch loads a branch record by name.
func (r *Refs) ReadBranch(name string) (tree.Branch, error) {
	dict, err := repofs.ReadDict(r.branchPath(name))
	if err != nil {
		return tree.Branch{}, fmt.Errorf("refs: read branch %q: %w", name, err)
	}
	return tree.BranchFromDict(dict)
}

// WriteBranch atomically persists a branch record.
func (r *Refs) WriteBranch(name string, b tree.Branch) error {
	return repofs.WriteDict(r.branchPath(name), b.ToDict())
}

// ReadTag loads a tag record by name.
func (r *Refs) ReadTag(name string) (tree.Tag, error) {
	dict, err := repofs.ReadDict(r.tagPath(name))
	if err != nil {
		return tree.Tag{}, fmt.Errorf("refs: read tag %q: %w", name, err)
	}
	return tree.TagFromDict(dict)
}

// WriteTag atomically persists a tag record.
func (r *Refs) WriteTag(name string, t tree.Tag) error {
	return repofs.WriteDict(r.tagPath(name), t.ToDict())
}

// BranchExists reports whether a branch file exists for name.
func (r *Refs) BranchExists(name string) bool {
	return repofs.Exists(r.branchPath(name))
}

// TagExists reports whether a tag file exists for name.
func (r *Refs) TagExists(name string) bool {
	return repofs.Exists(r.tagPath(name))
}

// Checkout implements §4.8's checkout(name) transition: prefer an existing
// branch, then an existing tag (detaching onto its target), and otherwise
// create a new branch at the current latest commit.
func (r *Refs) Checkout(name string) error {
	if r.BranchExists(name) {
		return r.writeHead(tree.Head{Ref: branchesDir + "/" + name})
	}
	if r.TagExists(name) {
		t, err := r.ReadTag(name)
		if err != nil {
			return err
		}
		return r.writeHead(tree.Head{Ref: string(t.CommitHashId)})
	}

	latest, err := r.LatestCommitHashId()
	if err != nil {
		return err
	}
	if err := r.WriteBranch(name, tree.Branch{CommitHashId: latest}); err != nil {
		return fmt.Errorf("refs: checkout %q: %w", name, err)
	}
	return r.writeHead(tree.Head{Ref: branchesDir + "/" + name})
}

// LatestCommitHashId implements get_latest_commit_hashid(): "" in Empty,
// the branch's target in OnBranch, the tag's target in OnTag, or HEAD
// itself in Detached.
func (r *Refs) LatestCommitHashId() (hashid.HashId, error) {
	state, name, err := r.Resolve()
	if err != nil {
		return "", err
	}
	switch state {
	case Empty:
		return "", nil
	case OnBranch:
		if !r.BranchExists(name) {
			return "", fmt.Errorf("%w: branch %q", repoerr.ErrInvalidReference, name)
		}
		b, err := r.ReadBranch(name)
		if err != nil {
			return "", err
		}
		return b.CommitHashId, nil
	case OnTag:
		if !r.TagExists(name) {
			return "", fmt.Errorf("%w: tag %q", repoerr.ErrInvalidReference, name)
		}
		t, err := r.ReadTag(name)
		if err != nil {
			return "", err
		}
		return t.CommitHashId, nil
	default: // Detached
		return hashid.HashId(name), nil
	}
}

// GetReference returns the active reference name (branch or tag), or the
// raw commit hash in the Detached state, failing with ErrNoReference in the
// Empty state.
func (r *Refs) GetReference() (string, error) {
	state, name, err := r.Resolve()
	if err != nil {
		return "", err
	}
	if state == Empty {
		return "", repoerr.ErrNoReference
	}
	return name, nil
}

// Advance implements §4.8's commit-time HEAD update: if OnBranch, rewrite
// the branch file with newCommit; otherwise (OnTag, Detached, or Empty)
// rewrite HEAD itself to point at the raw commit hash.
func (r *Refs) Advance(newCommit hashid.HashId) error {
	state, name, err := r.Resolve()
	if err != nil {
		return err
	}
	if state == OnBranch {
		return r.WriteBranch(name, tree.Branch{CommitHashId: newCommit})
	}
	return r.writeHead(tree.Head{Ref: string(newCommit)})
}

// ListBranches returns all branch names, sorted, by reading the branches
// directory (a supplemented feature the spec doesn't forbid: it only
// states branches live one-file-per-name under references/branches/).
func (r *Refs) ListBranches() ([]string, error) {
	return listNames(filepath.Join(r.root, branchesDir))
}

// ListTags returns all tag names, sorted.
func (r *Refs) ListTags() ([]string, error) {
	return listNames(filepath.Join(r.root, tagsDir))
}

func listNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("refs: list %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
