package db

import (
	"context"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

// ErrMalformedDocument is returned when the persisted data parses as JSON but
// does not carry a usable users collection.
var ErrMalformedDocument = errors.New("malformed users document")

// User is a single record of the collection. Records are opaque: they are
// forwarded byte for byte and never interpreted.
type User = json.RawMessage

// UserLoader is the read capability the service layer depends on.
type UserLoader interface {
	LoadUsers(ctx context.Context) ([]User, error)
}

// Store is a UserLoader that can also report readiness and release resources.
type Store interface {
	UserLoader
	Ping(ctx context.Context) error
	Close() error
}

// Backend names the concrete user source.
type Backend string

const (
	BackendFile     Backend = "file"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// DBConfig selects and addresses a user source. Path is the JSON document for
// the file backend or the database file for sqlite; URL is the postgres DSN.
type DBConfig struct {
	Type Backend
	Path string
	URL  string
}

// NewStore opens the backend named by cfg.Type.
func NewStore(cfg DBConfig) (Store, error) {
	switch cfg.Type {
	case BackendFile, "":
		if cfg.Path == "" {
			return nil, errors.New("users file path is required")
		}
		return NewFileStore(cfg.Path), nil
	case BackendSQLite, BackendPostgres:
		return NewSQLStore(cfg)
	default:
		return nil, fmt.Errorf("unknown users backend %q", cfg.Type)
	}
}
