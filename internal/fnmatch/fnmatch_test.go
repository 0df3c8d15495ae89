package fnmatch

import "testing"

func TestMatchCrossesSlash(t *testing.T) {
	cases := []struct {
		name, glob string
		want       bool
	}{
		{"src/old/c.go", "src/*", true},
		{"src/a.go", "src/*", true},
		{"docs/readme.md", "src/*", false},
		{"a.txt", "*.txt", true},
		{"a.txt", "?.txt", true},
		{"ab.txt", "?.txt", false},
		{"file.c4d", "[a-z]*.c4d", true},
		{"FILE.c4d", "[a-z]*.c4d", false},
	}
	for _, c := range cases {
		if got := Match(c.name, c.glob); got != c.want {
			t.Errorf("Match(%q, %q) = %v, want %v", c.name, c.glob, got, c.want)
		}
	}
}
