package db

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteUsersFile writes content to db/user.json under a fresh temp dir and
// returns the file path.
func WriteUsersFile(t testing.TB, content string) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "db")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("Failed to create db dir: %v", err)
	}

	path := filepath.Join(dir, "user.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write users file: %v", err)
	}
	return path
}

// NewTestConfig returns a file-backed DBConfig whose document holds content.
func NewTestConfig(t testing.TB, content string) DBConfig {
	return DBConfig{
		Type: BackendFile,
		Path: WriteUsersFile(t, content),
	}
}

// NewTestSQLiteConfig returns a DBConfig for a sqlite database in a temp dir.
func NewTestSQLiteConfig(t testing.TB) DBConfig {
	return DBConfig{
		Type: BackendSQLite,
		Path: filepath.Join(t.TempDir(), "roster-test.db"),
	}
}
