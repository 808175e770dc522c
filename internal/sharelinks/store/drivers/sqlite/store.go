package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/sharelinks/internal/sharelinks/store"

	_ "modernc.org/sqlite"
)

// Store wraps the SQLite database holding the share-link history.
type Store struct {
	db  *sql.DB
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Links returns the link-history repository.
func (s *Store) Links() store.Links { return &linksRepo{db: s.db} }
