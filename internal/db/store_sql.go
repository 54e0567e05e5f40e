package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	json "github.com/goccy/go-json"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/projecthelena/roster/internal/logging"
)

//go:embed migrations/*.sql
var migrations embed.FS

// goose keeps its dialect and filesystem in package globals.
var migrateMu sync.Mutex

// SQLStore serves users from a relational table, one JSON record per row,
// ordered by seq. It only ever reads rows; the schema is created on open.
type SQLStore struct {
	db      *sql.DB
	backend Backend
}

// NewSQLStore connects to sqlite or postgres and applies pending migrations.
func NewSQLStore(cfg DBConfig) (*SQLStore, error) {
	driver, dsn, err := driverFor(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connect %s: %w", cfg.Type, err)
	}

	s := newSQLStore(conn, cfg.Type)
	if err := s.migrate(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrate %s: %w", cfg.Type, err)
	}
	return s, nil
}

func newSQLStore(conn *sql.DB, backend Backend) *SQLStore {
	return &SQLStore{db: conn, backend: backend}
}

func driverFor(cfg DBConfig) (driver, dsn string, err error) {
	switch cfg.Type {
	case BackendSQLite:
		if cfg.Path == "" {
			return "", "", fmt.Errorf("sqlite backend requires a database path")
		}
		return "sqlite3", cfg.Path, nil
	case BackendPostgres:
		if cfg.URL == "" {
			return "", "", fmt.Errorf("postgres backend requires a database URL")
		}
		return "postgres", cfg.URL, nil
	default:
		return "", "", fmt.Errorf("backend %q is not SQL", cfg.Type)
	}
}

func (s *SQLStore) gooseDialect() string {
	if s.backend == BackendPostgres {
		return "postgres"
	}
	return "sqlite3"
}

func (s *SQLStore) migrate() error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(logging.New("db"))

	if err := goose.SetDialect(s.gooseDialect()); err != nil {
		return err
	}
	return goose.Up(s.db, "migrations")
}

func (s *SQLStore) LoadUsers(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT data FROM users ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := []User{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		if !json.Valid([]byte(data)) {
			return nil, fmt.Errorf("%w: row %d is not valid JSON", ErrMalformedDocument, len(users)+1)
		}
		users = append(users, User(data))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
