// Package database opens the MySQL pool, creates the schema and provides the
// request-scoped unit of work.
package database

import (
	"context"
	"database/sql"
	"errors"
)

// ErrSessionClosed is returned when a Session is used after Commit or Close.
var ErrSessionClosed = errors.New("session closed")

// DBTX is the query surface shared by *sql.DB, *sql.Tx and *Session.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Session is one unit of work: a single transaction owned by one request.
// Commit is explicit; Close always releases the transaction and rolls back
// anything not committed.
type Session struct {
	tx   *sql.Tx
	done bool
}

// Begin opens a Session on db.
func Begin(ctx context.Context, db *sql.DB) (*Session, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Session{tx: tx}, nil
}

func (s *Session) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.tx.ExecContext(ctx, query, args...)
}

func (s *Session) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.tx.QueryContext(ctx, query, args...)
}

func (s *Session) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return s.tx.QueryRowContext(ctx, query, args...)
}

// Commit makes the session's changes durable.
func (s *Session) Commit() error {
	if s.done {
		return ErrSessionClosed
	}
	s.done = true
	return s.tx.Commit()
}

// Close rolls back an uncommitted session. It is safe to call more than once
// and after Commit.
func (s *Session) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	return s.tx.Rollback()
}
