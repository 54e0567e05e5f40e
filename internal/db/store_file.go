package db

import (
	"bytes"
	"context"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

// FileStore reads users from a JSON document of the form {"users": [...]}.
// The document is read in full on every call; nothing is cached and the file
// is never written.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) LoadUsers(ctx context.Context) ([]User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read users file: %w", err)
	}

	users, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return users, nil
}

// Ping reports whether the document exists and can be opened for reading.
func (s *FileStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return err
	}
	return f.Close()
}

func (s *FileStore) Close() error {
	return nil
}

var jsonNull = []byte("null")

func decodeDocument(data []byte) ([]User, error) {
	if !json.Valid(data) {
		// Unmarshal again to surface the syntax error with its offset.
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parse users document: %w", err)
		}
		return nil, fmt.Errorf("parse users document: invalid JSON")
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	raw, ok := doc["users"]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return nil, fmt.Errorf("%w: missing users field", ErrMalformedDocument)
	}

	var users []User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("%w: users is not an array: %v", ErrMalformedDocument, err)
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}
