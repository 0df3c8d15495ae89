package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestKeepFoldRule(t *testing.T) {
	patterns := []string{"*", "^*.c4d", "^*.png"}

	cases := map[string]bool{
		"filename.txt": false,
		"filename.png": true,
		"filename.c4d": true,
	}

	for name, want := range cases {
		if got := Keep(name, patterns); got != want {
			t.Errorf("Keep(%q, %v) = %v, want %v", name, patterns, got, want)
		}
	}
}

func TestKeepNoPatterns(t *testing.T) {
	if !Keep("anything.go", nil) {
		t.Fatal("expected Keep with no patterns to keep everything")
	}
}

func TestIgnoreIsComplementOfKeep(t *testing.T) {
	patterns := []string{"*", "^*.c4d"}
	for _, name := range []string{"a.txt", "a.c4d"} {
		if Ignore(name, patterns) == Keep(name, patterns) {
			t.Fatalf("Ignore and Keep should disagree for %q", name)
		}
	}
}

func TestLoadFileSkipsCommentsAndBlanks(t *testing.T) {
	dir := t.TempDir()
	content := "# comment\n\n*.log\n^keep.log\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	patterns, err := LoadFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"*.log", "^keep.log"}
	if len(patterns) != len(want) {
		t.Fatalf("LoadFile() = %v, want %v", patterns, want)
	}
	for i := range want {
		if patterns[i] != want[i] {
			t.Fatalf("LoadFile()[%d] = %q, want %q", i, patterns[i], want[i])
		}
	}
}

func TestLoadFileMissing(t *testing.T) {
	patterns, err := LoadFile(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if patterns != nil {
		t.Fatalf("expected no patterns, got %v", patterns)
	}
}
