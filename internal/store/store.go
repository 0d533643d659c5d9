// Package store provides the durable collaborators behind a navcard store
// directory: the diskv-backed node records and order sequences, the card
// registry, the SQLite event log, and small JSON state files (global config,
// TUI state).
package store

import (
	"os"
	"path/filepath"
	"strings"
)

const storeDirName = ".navcard"

type Store struct {
	Dir string
}

// DiscoverDir walks upward from start looking for an existing .navcard
// directory, the same way version control roots are found.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, storeDirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir resolves the store directory: the NAVCARD_DIR environment
// variable wins, then the nearest .navcard above the working directory,
// then .navcard in the working directory itself.
func DefaultDir() (string, error) {
	if env := strings.TrimSpace(os.Getenv("NAVCARD_DIR")); env != "" {
		return env, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, storeDirName), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) dataDir() string {
	return filepath.Join(s.Dir, "data")
}

// writeFileAtomic writes via a temp file and rename so readers never see a
// half-written file.
func writeFileAtomic(path string, b []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
