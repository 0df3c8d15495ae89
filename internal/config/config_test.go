package config

import (
	"path/filepath"
	"testing"
)

func TestSaveRepoThenLoadRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	snapfsDir := filepath.Join(t.TempDir(), ".snapfs")

	cfg := Default()
	cfg.Author.Name = "alice"
	cfg.Author.Email = "alice@example.com"
	if err := SaveRepo(snapfsDir, cfg); err != nil {
		t.Fatal(err)
	}

	got, err := Load(snapfsDir)
	if err != nil {
		t.Fatal(err)
	}
	if got.Author.Name != "alice" || got.Author.Email != "alice@example.com" {
		t.Fatalf("Load() = %+v, want alice's identity", got)
	}
}

func TestLoadWithNoFilesReturnsDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	got, err := Load(filepath.Join(t.TempDir(), ".snapfs"))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Color.UI {
		t.Fatalf("Load() with no config files = %+v, want default color.ui=true", got)
	}
}
