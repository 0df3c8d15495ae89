package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/snapfs-vcs/snapfs/internal/tree"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "blobs"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestPutBytesAsBlobRoundTrip(t *testing.T) {
	s := openTestStore(t)
	content := []byte("hello world")

	id, err := s.PutBytesAsBlob(content)
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.GetBlobBytes(id)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("GetBlobBytes() = %q, want %q", got, content)
	}
}

func TestPutBytesAsBlobIsDeduplicatedAndReadOnly(t *testing.T) {
	s := openTestStore(t)
	content := []byte("duplicate me")

	id1, err := s.PutBytesAsBlob(content)
	if err != nil {
		t.Fatal(err)
	}
	id2, err := s.PutBytesAsBlob(content)
	if err != nil {
		t.Fatal(err)
	}
	if id1 != id2 {
		t.Fatalf("expected identical hash ids, got %s and %s", id1, id2)
	}

	info, err := os.Stat(s.PathFor(id1))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o200 != 0 {
		t.Fatalf("expected object file to be read-only, got mode %v", info.Mode())
	}
}

func TestGetBlobBytesMissingObject(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetBlobBytes("deadbeef"); err == nil {
		t.Fatal("expected error for missing object")
	}
}

func TestPutTreeEmpty(t *testing.T) {
	s := openTestStore(t)
	id, err := s.PutTree(tree.New())
	if err != nil {
		t.Fatal(err)
	}

	id2, err := s.PutTree(nil)
	if err != nil {
		t.Fatal(err)
	}
	if id != id2 {
		t.Fatalf("expected empty tree hash to be stable, got %s and %s", id, id2)
	}

	loaded, err := s.GetTree(id)
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.IsEmpty() {
		t.Fatalf("expected loaded tree to be empty")
	}
}

func TestPutTreeRoundTripWithFiles(t *testing.T) {
	s := openTestStore(t)
	dir := t.TempDir()
	filePath := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(filePath, []byte("A"), 0o644); err != nil {
		t.Fatal(err)
	}

	working := tree.New()
	sub := tree.New()
	sub.Set("a.txt", tree.FileEntry{Path: filePath})
	working.SetDir("sub", sub)

	id, err := s.PutTree(working)
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := s.GetTree(id)
	if err != nil {
		t.Fatal(err)
	}
	loadedSub, ok := loaded.Directories["sub"]
	if !ok {
		t.Fatal("expected subdirectory 'sub' in loaded tree")
	}
	fe, ok := loadedSub.Files["a.txt"]
	if !ok {
		t.Fatal("expected file 'a.txt' in loaded subtree")
	}
	if !fe.IsBlob || fe.HashId == "" {
		t.Fatalf("expected loaded file entry to be a resolved blob, got %+v", fe)
	}
}

func TestPutCommitRoundTrip(t *testing.T) {
	s := openTestStore(t)
	c := tree.Commit{
		Author:                 tree.Author{Name: "alice", Email: "alice@example.com"},
		Message:                "initial commit",
		TreeHashId:             "",
		PreviousCommitsHashIds: nil,
	}

	id, err := s.PutCommit(c)
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.GetCommit(id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Message != c.Message || got.Author.Name != c.Author.Name {
		t.Fatalf("GetCommit() = %+v, want %+v", got, c)
	}
	if len(got.PreviousCommitsHashIds) != 0 {
		t.Fatalf("expected no parents, got %v", got.PreviousCommitsHashIds)
	}
}
