// Package repo implements the repository orchestrator (C9): the path
// helpers, initialization, status, stage, commit, and checkout workflows
// that wire the object store (C3), ignore filter (C4), scanner (C5),
// comparator (C6), stage (C7), and reference set (C8) together, grounded
// on the original implementation's Repository class (original_source's
// new.py/repository.py).
package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/snapfs-vcs/snapfs/internal/diff"
	"github.com/snapfs-vcs/snapfs/internal/hashid"
	"github.com/snapfs-vcs/snapfs/internal/refs"
	"github.com/snapfs-vcs/snapfs/internal/repoerr"
	"github.com/snapfs-vcs/snapfs/internal/repofs"
	"github.com/snapfs-vcs/snapfs/internal/scan"
	"github.com/snapfs-vcs/snapfs/internal/stage"
	"github.com/snapfs-vcs/snapfs/internal/statcache"
	"github.com/snapfs-vcs/snapfs/internal/store"
	"github.com/snapfs-vcs/snapfs/internal/tree"
)

// dirName is the control directory's name at the root of a working tree.
// The scanner always excludes it from the working tree it builds.
const dirName = ".snapfs"

// Repository is a value handle carrying a working-directory root; every
// operation takes it explicitly and there is no package-level state (§9).
// StatCache is nil until EnableStatCache is called; every operation falls
// back to hashing working-copy files directly when it is nil.
type Repository struct {
	WorkingDir string
	Store      *store.Store
	Refs       *refs.Refs
	StatCache  *statcache.Handle
}

func snapfsDir(workingDir string) string    { return filepath.Join(workingDir, dirName) }
func blobsDir(workingDir string) string     { return filepath.Join(snapfsDir(workingDir), "blobs") }
func stagePath(workingDir string) string    { return filepath.Join(snapfsDir(workingDir), "stage") }
func statCachePath(workingDir string) string {
	return filepath.Join(snapfsDir(workingDir), "statcache.db")
}

// Open returns a Repository handle rooted at workingDir without touching
// the filesystem. Call Init for a fresh repository or IsInitialized to
// check an existing one before issuing other operations.
func Open(workingDir string) *Repository {
	return &Repository{
		WorkingDir: workingDir,
		Store:      mustStoreHandle(workingDir),
		Refs:       refs.Open(snapfsDir(workingDir)),
	}
}

// mustStoreHandle builds a Store value without creating directories; the
// actual blobs/ directory is created by Init.
func mustStoreHandle(workingDir string) *store.Store {
	s, _ := store.Open(blobsDir(workingDir))
	return s
}

// IsInitialized reports whether every path in the closed namespace under
// .snapfs/ exists with the expected kind (§4.9).
func (r *Repository) IsInitialized() bool {
	dir := snapfsDir(r.WorkingDir)
	head, stageFile := filepath.Join(dir, "HEAD"), filepath.Join(dir, "stage")
	return repofs.IsDir(filepath.Join(dir, "blobs")) &&
		repofs.IsDir(filepath.Join(dir, "references", "branches")) &&
		repofs.IsDir(filepath.Join(dir, "references", "tags")) &&
		repofs.Exists(head) && !repofs.IsDir(head) &&
		repofs.Exists(stageFile) && !repofs.IsDir(stageFile)
}

// Init creates the directory layout, writes an empty Stage and an empty
// HEAD, then checks out "main" (§4.8's init transition, S1).
func (r *Repository) Init() error {
	dir := snapfsDir(r.WorkingDir)
	for _, sub := range []string{"blobs", filepath.Join("references", "branches"), filepath.Join("references", "tags")} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return fmt.Errorf("repo: init: %w", err)
		}
	}

	if err := stage.Store(stagePath(r.WorkingDir), tree.Stage{}); err != nil {
		return fmt.Errorf("repo: init: write stage: %w", err)
	}
	if err := r.Refs.Init(); err != nil {
		return fmt.Errorf("repo: init: write HEAD: %w", err)
	}
	if err := r.Refs.Checkout("main"); err != nil {
		return fmt.Errorf("repo: init: checkout main: %w", err)
	}
	return nil
}

// EnableStatCache opens this repository's bbolt-backed stat cache,
// accelerating repeated Status/Stage/Commit calls over unchanged files.
// Purely an optimization: callers that never call this still get correct
// results, just without the cache's speedup.
func (r *Repository) EnableStatCache() error {
	h, err := statcache.Shared(statCachePath(r.WorkingDir))
	if err != nil {
		return fmt.Errorf("repo: enable stat cache: %w", err)
	}
	r.StatCache = h
	return nil
}

// CloseStatCache releases the stat cache handle, if one was opened.
func (r *Repository) CloseStatCache() error {
	if r.StatCache == nil {
		return nil
	}
	err := r.StatCache.Close()
	r.StatCache = nil
	return err
}

// contentHasher returns the statcache-backed hasher when available,
// falling back to tree.FileEntry's own on-demand hashing otherwise.
func (r *Repository) contentHasher() diff.Hasher {
	if r.StatCache != nil {
		return r.StatCache.ContentHash
	}
	return tree.FileEntry.ContentHash
}

// resolveKnownHashes annotates every working-copy FileEntry in t with its
// content hash up front, using the statcache-backed hasher when one is
// enabled. A file whose hash is already known lets Store.PutTree skip
// re-reading and re-writing its bytes when that hash is already present
// in the object store (putFileEntry's Has-check fast path).
func (r *Repository) resolveKnownHashes(t *tree.Tree) error {
	hash := r.contentHasher()
	for name, fe := range t.Files {
		id, err := hash(fe)
		if err != nil {
			return fmt.Errorf("hash %s: %w", fe.Path, err)
		}
		fe.IsBlob = true
		fe.HashId = id
		t.Set(name, fe)
	}
	for _, sub := range t.Directories {
		if err := r.resolveKnownHashes(sub); err != nil {
			return err
		}
	}
	return nil
}

// requireInitialized guards operations that assume an initialized
// repository, surfacing §7's NotInitialized error kind.
func (r *Repository) requireInitialized() error {
	if !r.IsInitialized() {
		return fmt.Errorf("%w: %s", repoerr.ErrNotInitialized, snapfsDir(r.WorkingDir))
	}
	return nil
}

// WorkingTree scans the repository's working directory, excluding the
// control directory itself from the result.
func (r *Repository) WorkingTree() (*tree.Tree, error) {
	return scan.Directory(r.WorkingDir, []string{dirName})
}

// LatestCommit loads the commit pointed to by the active reference,
// returning the zero Commit when HEAD is Empty or points at no commit yet.
func (r *Repository) LatestCommit() (tree.Commit, error) {
	id, err := r.Refs.LatestCommitHashId()
	if err != nil {
		return tree.Commit{}, err
	}
	if id == "" {
		return tree.Commit{}, nil
	}
	return r.Store.GetCommit(id)
}

// LatestCommitTree resolves the tree of the latest commit, or the empty
// tree when there is no commit yet (§4.9).
func (r *Repository) LatestCommitTree() (*tree.Tree, error) {
	c, err := r.LatestCommit()
	if err != nil {
		return nil, err
	}
	if c.TreeHashId == "" {
		return tree.New(), nil
	}
	return r.Store.GetTree(c.TreeHashId)
}

// Status computes the repository's pending differences: the working tree
// compared against the latest commit's tree (§4.9). The comparator's old
// argument is the working tree and its new argument is the committed
// tree, matching §4.9's literal formula; Added here means "present in the
// commit but not (yet) in the working copy" and Removed the converse.
func (r *Repository) Status() (tree.Differences, error) {
	if err := r.requireInitialized(); err != nil {
		return nil, err
	}
	working, err := r.WorkingTree()
	if err != nil {
		return nil, fmt.Errorf("repo: status: scan: %w", err)
	}
	committed, err := r.LatestCommitTree()
	if err != nil {
		return nil, fmt.Errorf("repo: status: latest tree: %w", err)
	}
	return diff.CompareWithHasher(r.WorkingDir, working, committed, r.contentHasher())
}

// LoadStage reads the persisted stage record.
func (r *Repository) LoadStage() (tree.Stage, error) {
	return stage.Load(stagePath(r.WorkingDir))
}

// Stage partitions Status()'s differences by patterns and persists the
// result, replacing whatever was staged before (§4.7).
func (r *Repository) Stage(patterns []string) (tree.Stage, error) {
	if err := r.requireInitialized(); err != nil {
		return tree.Stage{}, err
	}
	differences, err := r.Status()
	if err != nil {
		return tree.Stage{}, err
	}
	selected := stage.Select(differences, patterns)
	if err := stage.Store(stagePath(r.WorkingDir), selected); err != nil {
		return tree.Stage{}, fmt.Errorf("repo: stage: %w", err)
	}
	return selected, nil
}

// Unstage clears the stage (§4.7's "clearing stage: store(empty Stage)").
func (r *Repository) Unstage() error {
	if err := r.requireInitialized(); err != nil {
		return err
	}
	return stage.Store(stagePath(r.WorkingDir), tree.Stage{})
}

// Checkout switches the active reference (§4.8).
func (r *Repository) Checkout(name string) error {
	if err := r.requireInitialized(); err != nil {
		return err
	}
	return r.Refs.Checkout(name)
}

// Commit materializes the current working tree into the object store and
// advances the active reference (§4.8's commit transition). The tree
// committed is the repository's full current working tree; the stage does
// not change what is committed and is cleared once the commit succeeds,
// following the original implementation's model of staging as a review
// step rather than a separate index.
func (r *Repository) Commit(author tree.Author, message string) (hashid.HashId, error) {
	if err := r.requireInitialized(); err != nil {
		return "", err
	}

	previous, err := r.Refs.LatestCommitHashId()
	if err != nil {
		return "", fmt.Errorf("repo: commit: %w", err)
	}

	working, err := r.WorkingTree()
	if err != nil {
		return "", fmt.Errorf("repo: commit: scan: %w", err)
	}
	if err := r.resolveKnownHashes(working); err != nil {
		return "", fmt.Errorf("repo: commit: resolve hashes: %w", err)
	}
	treeHashId, err := r.Store.PutTree(working)
	if err != nil {
		return "", fmt.Errorf("repo: commit: put tree: %w", err)
	}

	var parents []hashid.HashId
	if previous != "" {
		parents = []hashid.HashId{previous}
	}

	commitHashId, err := r.Store.PutCommit(tree.Commit{
		Author:                 author,
		Message:                message,
		TreeHashId:             treeHashId,
		PreviousCommitsHashIds: parents,
	})
	if err != nil {
		return "", fmt.Errorf("repo: commit: put commit: %w", err)
	}

	if err := r.Refs.Advance(commitHashId); err != nil {
		return "", fmt.Errorf("repo: commit: advance reference: %w", err)
	}
	if err := r.Unstage(); err != nil {
		return "", fmt.Errorf("repo: commit: clear stage: %w", err)
	}
	return commitHashId, nil
}

// Log returns the commit lineage reachable from the latest commit via
// PreviousCommitsHashIds, newest first. This is a supplemented feature:
// the spec's core scope stops at the commit object and reference set, but
// any complete implementation of this system needs a way to walk the
// history those primitives already encode.
func (r *Repository) Log() ([]hashid.HashId, []tree.Commit, error) {
	if err := r.requireInitialized(); err != nil {
		return nil, nil, err
	}
	id, err := r.Refs.LatestCommitHashId()
	if err != nil {
		return nil, nil, err
	}

	var ids []hashid.HashId
	var commits []tree.Commit
	for id != "" {
		c, err := r.Store.GetCommit(id)
		if err != nil {
			return nil, nil, fmt.Errorf("repo: log: %w", err)
		}
		ids = append(ids, id)
		commits = append(commits, c)
		if len(c.PreviousCommitsHashIds) == 0 {
			break
		}
		id = c.PreviousCommitsHashIds[0]
	}
	return ids, commits, nil
}
