package termcolor

import (
	"strings"
	"testing"

	"github.com/snapfs-vcs/snapfs/internal/tree"
)

func TestDisabledPrinterPassesTextThrough(t *testing.T) {
	p := NewPrinter(false)
	if got := p.Bold("hello"); got != "hello" {
		t.Fatalf("Bold() = %q, want unmodified text when disabled", got)
	}
	if got := p.Kind(tree.Added); got != "A" {
		t.Fatalf("Kind(Added) = %q, want bare letter when disabled", got)
	}
}

func TestEnabledPrinterWrapsWithEscapeCodes(t *testing.T) {
	p := NewPrinter(true)
	got := p.Kind(tree.Removed)
	if !strings.Contains(got, "D") || !strings.HasSuffix(got, reset) {
		t.Fatalf("Kind(Removed) = %q, want ANSI-wrapped D", got)
	}
}

func TestDifferenceFormatsPathAfterKind(t *testing.T) {
	p := NewPrinter(false)
	d := tree.Difference{Kind: tree.Updated, File: tree.FileEntry{Path: "a/b.txt"}}
	got := p.Difference(d)
	if !strings.Contains(got, "U") || !strings.Contains(got, "a/b.txt") {
		t.Fatalf("Difference() = %q, want kind and path", got)
	}
}
