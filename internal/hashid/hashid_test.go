package hashid

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHashBytesDeterministic(t *testing.T) {
	a := HashBytes([]byte("hello world"))
	b := HashBytes([]byte("hello world"))
	if a != b {
		t.Fatalf("hash not deterministic: %s != %s", a, b)
	}
	if !Valid(string(a)) {
		t.Fatalf("hash %q does not look like a valid HashId", a)
	}
}

func TestHashBytesDiffersOnContent(t *testing.T) {
	a := HashBytes([]byte("hello world"))
	b := HashBytes([]byte("hello world!"))
	if a == b {
		t.Fatalf("expected different hashes for different content")
	}
}

func TestHashFileMatchesHashBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	content := []byte("hello world")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	fromFile, err := HashFile(path)
	if err != nil {
		t.Fatal(err)
	}

	fromBytes := HashBytes(content)
	if fromFile != fromBytes {
		t.Fatalf("HashFile() = %s, want %s", fromFile, fromBytes)
	}
}

func TestToRelPath(t *testing.T) {
	id := HashId("abcdef0123456789")
	got := ToRelPath(id, 1, 2)
	want := "ab/cdef0123456789"
	if got != want {
		t.Fatalf("ToRelPath() = %q, want %q", got, want)
	}
}
