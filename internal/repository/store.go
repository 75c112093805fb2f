// Package repository provides the SQL persistence layer for users, tags,
// contacts and their assignments.
//
// Queries are written with PostgreSQL placeholders ($1, $2, ...) and rebound
// to SQLite numbered parameters (?1, ?2, ...) when the store runs on SQLite.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/atinyakov/ContactKeeper/internal/db"
)

// ErrNoRecord is returned by single-row lookups that match nothing.
var ErrNoRecord = errors.New("record not found")

// DBTX is the subset of *sql.DB and *sql.Tx used by Queries.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries runs the ContactKeeper statements against a DBTX.
type Queries struct {
	conn   DBTX
	driver db.Driver
}

// New returns Queries bound to conn. driver selects the placeholder style.
func New(conn DBTX, driver db.Driver) *Queries {
	return &Queries{conn: conn, driver: driver}
}

func (q *Queries) rebind(query string) string {
	if q.driver == db.SQLite {
		return strings.ReplaceAll(query, "$", "?")
	}
	return query
}

// Store owns the connection pool and hands out one transaction per operation.
type Store struct {
	// DB is the shared connection pool.
	DB     *sql.DB
	driver db.Driver
}

// NewStore wraps an open pool.
func NewStore(sqlDB *sql.DB, driver db.Driver) *Store {
	return &Store{DB: sqlDB, driver: driver}
}

// InTx runs fn inside a single transaction. The transaction commits only if
// fn returns nil; any error, including a failed commit, leaves no writes behind.
func (s *Store) InTx(ctx context.Context, fn func(q *Queries) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(New(tx, s.driver)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Ping verifies the pool can reach the database.
func (s *Store) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}
