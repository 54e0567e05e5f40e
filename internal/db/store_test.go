package db

import (
	"context"
	"testing"
)

func TestNewStore_File(t *testing.T) {
	s, err := NewStore(NewTestConfig(t, `{"users":[{"id":1}]}`))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	if _, ok := s.(*FileStore); !ok {
		t.Fatalf("expected *FileStore, got %T", s)
	}

	users, err := s.LoadUsers(context.Background())
	if err != nil {
		t.Fatalf("LoadUsers failed: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("expected 1 user, got %d", len(users))
	}
}

func TestNewStore_DefaultsToFile(t *testing.T) {
	s, err := NewStore(DBConfig{Path: "db/user.json"})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if fs, ok := s.(*FileStore); !ok || fs.Path() != "db/user.json" {
		t.Errorf("expected file store for db/user.json, got %#v", s)
	}
}

func TestNewStore_SQLite(t *testing.T) {
	s, err := NewStore(NewTestSQLiteConfig(t))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	if _, ok := s.(*SQLStore); !ok {
		t.Fatalf("expected *SQLStore, got %T", s)
	}
}

func TestNewStore_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  DBConfig
	}{
		{"unknown backend", DBConfig{Type: "redis"}},
		{"file without path", DBConfig{Type: BackendFile}},
		{"postgres without url", DBConfig{Type: BackendPostgres}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewStore(tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
