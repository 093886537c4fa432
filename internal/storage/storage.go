package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Storage writes exported documents into a single directory
type Storage struct {
	dir string
}

// New creates a new Storage instance, creating dir if needed.
// A leading ~/ is expanded to the user's home directory.
func New(dir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Storage{dir: dir}, nil
}

// Path returns where a document called name is written
func (s *Storage) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Write stores data under name and returns the file path.
// The file is written to a temporary name first and renamed into place, so a
// reader never sees a partial document.
func (s *Storage) Write(name string, data []byte) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid document name: %q", name)
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() // nolint:errcheck
		return "", fmt.Errorf("writing document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing document: %w", err)
	}

	path := s.Path(name)
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("moving document into place: %w", err)
	}

	return path, nil
}
