package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/snapfs-vcs/snapfs/internal/tree"
)

func TestInitMatchesS1(t *testing.T) {
	root := t.TempDir()
	r := Open(root)
	if err := r.Init(); err != nil {
		t.Fatal(err)
	}
	if !r.IsInitialized() {
		t.Fatal("expected repository to report initialized after Init")
	}

	for _, p := range []string{
		filepath.Join(root, ".snapfs", "blobs"),
		filepath.Join(root, ".snapfs", "references", "branches"),
		filepath.Join(root, ".snapfs", "references", "tags"),
		filepath.Join(root, ".snapfs", "HEAD"),
		filepath.Join(root, ".snapfs", "stage"),
	} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected %s to exist: %v", p, err)
		}
	}

	head, err := r.Refs.ReadHead()
	if err != nil {
		t.Fatal(err)
	}
	if head.Ref != "references/branches/main" {
		t.Fatalf("HEAD.ref = %q, want references/branches/main", head.Ref)
	}
	main, err := r.Refs.ReadBranch("main")
	if err != nil {
		t.Fatal(err)
	}
	if main.CommitHashId != "" {
		t.Fatalf("main.commit_hashid = %q, want empty", main.CommitHashId)
	}
}

func TestOpenDoesNotTouchFilesystem(t *testing.T) {
	root := t.TempDir()
	Open(root)
	if _, err := os.Stat(filepath.Join(root, dirName)); !os.IsNotExist(err) {
		t.Fatalf("Open() created %s on disk, want no filesystem side effects", dirName)
	}
}

func TestCommitTwiceSharesTreeHashAndChainsParent(t *testing.T) {
	root := t.TempDir()
	r := Open(root)
	if err := r.Init(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	author := tree.Author{Name: "alice", Email: "alice@example.com"}
	first, err := r.Commit(author, "initial commit")
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Commit(author, "no-op commit")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatal("expected distinct commit hashes for distinct commit metadata")
	}

	firstCommit, err := r.Store.GetCommit(first)
	if err != nil {
		t.Fatal(err)
	}
	secondCommit, err := r.Store.GetCommit(second)
	if err != nil {
		t.Fatal(err)
	}
	if firstCommit.TreeHashId != secondCommit.TreeHashId {
		t.Fatalf("expected identical tree_hashid across identical working trees (S5), got %s vs %s", firstCommit.TreeHashId, secondCommit.TreeHashId)
	}
	if len(secondCommit.PreviousCommitsHashIds) != 1 || secondCommit.PreviousCommitsHashIds[0] != first {
		t.Fatalf("expected second commit's parent to be the first commit, got %v", secondCommit.PreviousCommitsHashIds)
	}

	main, err := r.Refs.ReadBranch("main")
	if err != nil {
		t.Fatal(err)
	}
	if main.CommitHashId != second {
		t.Fatalf("main.commit_hashid = %s, want %s (P5: branch advances on commit)", main.CommitHashId, second)
	}
	head, err := r.Refs.ReadHead()
	if err != nil {
		t.Fatal(err)
	}
	if head.Ref != "references/branches/main" {
		t.Fatalf("HEAD changed to %q, want unchanged branch path while OnBranch (P5)", head.Ref)
	}
}

func TestCommitClearsStage(t *testing.T) {
	root := t.TempDir()
	r := Open(root)
	if err := r.Init(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Stage(nil); err != nil {
		t.Fatal(err)
	}
	before, err := r.LoadStage()
	if err != nil {
		t.Fatal(err)
	}
	if before.IsEmpty() {
		t.Fatal("expected a non-empty stage before commit")
	}

	if _, err := r.Commit(tree.Author{Name: "bob"}, "commit"); err != nil {
		t.Fatal(err)
	}
	after, err := r.LoadStage()
	if err != nil {
		t.Fatal(err)
	}
	if !after.IsEmpty() {
		t.Fatalf("expected stage cleared after commit, got %+v", after)
	}
}

func TestCommitWithStatCacheSharesTreeHashAcrossUnchangedFiles(t *testing.T) {
	root := t.TempDir()
	r := Open(root)
	if err := r.Init(); err != nil {
		t.Fatal(err)
	}
	if err := r.EnableStatCache(); err != nil {
		t.Fatal(err)
	}
	defer r.CloseStatCache()

	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	author := tree.Author{Name: "alice", Email: "alice@example.com"}
	first, err := r.Commit(author, "initial commit")
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Commit(author, "no-op commit")
	if err != nil {
		t.Fatal(err)
	}

	firstCommit, err := r.Store.GetCommit(first)
	if err != nil {
		t.Fatal(err)
	}
	secondCommit, err := r.Store.GetCommit(second)
	if err != nil {
		t.Fatal(err)
	}
	if firstCommit.TreeHashId != secondCommit.TreeHashId {
		t.Fatalf("expected identical tree_hashid with an active stat cache, got %s vs %s", firstCommit.TreeHashId, secondCommit.TreeHashId)
	}
}

func TestLogWalksParentChain(t *testing.T) {
	root := t.TempDir()
	r := Open(root)
	if err := r.Init(); err != nil {
		t.Fatal(err)
	}
	author := tree.Author{Name: "alice"}
	if _, err := r.Commit(author, "first"); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "b.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Commit(author, "second"); err != nil {
		t.Fatal(err)
	}

	ids, commits, err := r.Log()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || len(commits) != 2 {
		t.Fatalf("Log() returned %d entries, want 2", len(ids))
	}
	if commits[0].Message != "second" || commits[1].Message != "first" {
		t.Fatalf("Log() order = [%q, %q], want [second, first]", commits[0].Message, commits[1].Message)
	}
}
