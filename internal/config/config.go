// Package config holds the ambient, repository-independent settings the
// core object model has no opinion about: the author identity attached to
// commits and whether CLI output should use color. Adapted from the
// teacher's internal/config global/repo JSON config with override merging,
// trimmed to the fields snapfs actually needs and renamed to its own
// namespace.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/snapfs-vcs/snapfs/internal/tree"
)

// Config is the merged view of global and per-repository settings.
type Config struct {
	Author tree.Author `json:"author"`
	Color  ColorConfig `json:"color"`
}

// ColorConfig gates ANSI color output per surface.
type ColorConfig struct {
	UI bool `json:"ui"`
}

// Default returns a Config with color enabled and an empty author, which
// callers should reject for commit-producing operations until filled in.
func Default() Config {
	return Config{Color: ColorConfig{UI: true}}
}

func globalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: home directory: %w", err)
	}
	return filepath.Join(home, ".snapfsconfig"), nil
}

func repoPath(snapfsDir string) string {
	return filepath.Join(snapfsDir, "config")
}

// Load merges the global config (~/.snapfsconfig) with the repository
// config (<snapfsDir>/config), the latter taking precedence. Either file
// may be absent; Load never fails solely because a config file is missing.
func Load(snapfsDir string) (Config, error) {
	cfg, err := LoadGlobal()
	if err != nil {
		return Config{}, err
	}
	if err := mergeFile(&cfg, repoPath(snapfsDir)); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadGlobal reads only ~/.snapfsconfig, ignoring any repository override.
func LoadGlobal() (Config, error) {
	cfg := Default()
	if path, err := globalPath(); err == nil {
		if err := mergeFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var overlay Config
	if err := json.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	merge(cfg, overlay)
	return nil
}

func merge(dst *Config, src Config) {
	if src.Author.Name != "" {
		dst.Author.Name = src.Author.Name
	}
	if src.Author.Fullname != "" {
		dst.Author.Fullname = src.Author.Fullname
	}
	if src.Author.Email != "" {
		dst.Author.Email = src.Author.Email
	}
	dst.Color = src.Color
}

// SaveGlobal writes cfg to ~/.snapfsconfig, overwriting it.
func SaveGlobal(cfg Config) error {
	path, err := globalPath()
	if err != nil {
		return err
	}
	return save(path, cfg)
}

// SaveRepo writes cfg to <snapfsDir>/config, overwriting it.
func SaveRepo(snapfsDir string, cfg Config) error {
	return save(repoPath(snapfsDir), cfg)
}

func save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: mkdir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
