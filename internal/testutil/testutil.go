// Package testutil provides common test helpers for the uvsync project.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// TempRCFile creates a shell startup file with the given content in a fresh
// temporary directory and returns its path.
func TempRCFile(t *testing.T, name, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("TempRCFile: write failed: %v", err)
	}

	return path
}

// TempConfigFile creates a temporary config.toml with the given content
// and returns its path.
func TempConfigFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("TempConfigFile: write failed: %v", err)
	}

	return path
}

// WriteFile writes content to path on fsys, creating parent directories.
func WriteFile(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()

	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("WriteFile: mkdir failed: %v", err)
	}
	if err := afero.WriteFile(fsys, path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: write failed: %v", err)
	}
}

// ReadFile reads path from fsys and fails the test on error.
func ReadFile(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Fatalf("ReadFile: read failed: %v", err)
	}
	return string(data)
}
