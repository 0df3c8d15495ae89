package cliapp

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/snapfs-vcs/snapfs/internal/config"
	"github.com/snapfs-vcs/snapfs/internal/repo"
	"github.com/snapfs-vcs/snapfs/internal/termcolor"
)

// openRepository resolves the working directory and returns a handle,
// failing fast when the repository hasn't been initialized unless the
// caller is the init command itself.
func openRepository(requireInitialized bool) (*repo.Repository, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	r := repo.Open(workDir)
	if requireInitialized && !r.IsInitialized() {
		return nil, fmt.Errorf("not a snapfs repository (no .snapfs directory found)")
	}
	return r, nil
}

// openRepositoryForScan is openRepository for commands that scan the
// working tree (status, stage, commit): it turns on the bbolt-backed stat
// cache so repeated scans skip re-hashing unchanged files, and returns a
// closer the caller must defer.
func openRepositoryForScan() (*repo.Repository, func(), error) {
	r, err := openRepository(true)
	if err != nil {
		return nil, nil, err
	}
	if err := r.EnableStatCache(); err != nil {
		return nil, nil, fmt.Errorf("enable stat cache: %w", err)
	}
	return r, func() { r.CloseStatCache() }, nil
}

// printer builds a termcolor.Printer honoring the repository's color
// config and NO_COLOR/FORCE_COLOR/TTY detection.
func printer(r *repo.Repository) termcolor.Printer {
	cfg, err := config.Load(snapfsDirFor(r))
	enabled := err == nil && cfg.Color.UI && termcolor.ShouldColorize(os.Stdout)
	return termcolor.NewPrinter(enabled)
}

func snapfsDirFor(r *repo.Repository) string {
	return filepath.Join(r.WorkingDir, ".snapfs")
}
