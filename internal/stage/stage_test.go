package stage

import (
	"path/filepath"
	"testing"

	"github.com/snapfs-vcs/snapfs/internal/hashid"
	"github.com/snapfs-vcs/snapfs/internal/tree"
)

func sampleDifferences() tree.Differences {
	return tree.Differences{
		{Kind: tree.Added, File: tree.FileEntry{Path: "src/a.go", HashId: hashid.HashId("h1")}},
		{Kind: tree.Added, File: tree.FileEntry{Path: "docs/readme.md", HashId: hashid.HashId("h2")}},
		{Kind: tree.Updated, File: tree.FileEntry{Path: "src/b.go", HashId: hashid.HashId("h3")}},
		{Kind: tree.Removed, File: tree.FileEntry{Path: "src/old/c.go", HashId: hashid.HashId("h4")}},
	}
}

func TestSelectNoPatternsKeepsEverything(t *testing.T) {
	s := Select(sampleDifferences(), nil)
	if len(s.Added) != 2 || len(s.Updated) != 1 || len(s.Removed) != 1 {
		t.Fatalf("Select(nil) = %+v, want everything kept", s)
	}
}

func TestSelectGlobCrossesSlash(t *testing.T) {
	// "src/*" must match "src/old/c.go", which filepath.Match would refuse
	// since "*" there stops at "/". A matching pattern drops the entry from
	// the selection (the same fold as the ignore filter), so only the docs/
	// entry survives.
	s := Select(sampleDifferences(), []string{"src/*"})
	if len(s.Added) != 1 || s.Added[0].Path != "docs/readme.md" {
		t.Fatalf("Select(src/*).Added = %+v, want only docs/readme.md", s.Added)
	}
	if len(s.Updated) != 0 {
		t.Fatalf("Select(src/*).Updated = %+v, want src/b.go dropped", s.Updated)
	}
	if len(s.Removed) != 0 {
		t.Fatalf("Select(src/*).Removed = %+v, want src/old/c.go dropped", s.Removed)
	}
}

func TestSelectReIncludeOverride(t *testing.T) {
	s := Select(sampleDifferences(), []string{"*", "^docs/*"})
	if len(s.Added) != 1 || s.Added[0].Path != "docs/readme.md" {
		t.Fatalf("Select(*, ^docs/*).Added = %+v, want only docs/readme.md", s.Added)
	}
	if len(s.Updated) != 0 || len(s.Removed) != 0 {
		t.Fatalf("Select(*, ^docs/*) should exclude everything else, got %+v", s)
	}
}

func TestStoreLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stage")
	want := tree.Stage{
		Added: []tree.FileEntry{{Path: "a.go", IsBlob: true, HashId: hashid.HashId("h1")}},
	}
	if err := Store(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Added) != 1 || got.Added[0].Path != "a.go" {
		t.Fatalf("Load() = %+v, want %+v", got, want)
	}
}

func TestStoreIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stage")
	s := tree.Stage{Added: []tree.FileEntry{{Path: "a.go", HashId: hashid.HashId("h1")}}}
	if err := Store(path, s); err != nil {
		t.Fatal(err)
	}
	first, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := Store(path, s); err != nil {
		t.Fatal(err)
	}
	second, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Added) != len(second.Added) || first.Added[0].Path != second.Added[0].Path {
		t.Fatalf("storing the same stage twice changed the result: %+v vs %+v", first, second)
	}
}
