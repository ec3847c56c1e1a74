package database

import (
	"context"
	"errors"
)

// ErrNoRows is returned by Row.Scan when the statement matched nothing,
// whichever engine ran it.
var ErrNoRows = errors.New("no rows in result set")

// Row is the result of Engine.QueryOne.
type Row interface {
	Scan(dest ...any) error
}

// Rows is a cursor returned by Engine.QueryAll. Callers must Close it.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Engine is the primitive set every repository is written against. Each
// supported database supplies one implementation.
type Engine interface {
	Dialect() Dialect
	// Run executes a statement and reports the number of affected rows.
	Run(ctx context.Context, stmt string, args ...any) (int64, error)
	// QueryOne executes a statement expected to return at most one row.
	QueryOne(ctx context.Context, stmt string, args ...any) Row
	// QueryAll executes a statement returning any number of rows.
	QueryAll(ctx context.Context, stmt string, args ...any) (Rows, error)
	// WithConnection runs fn on an engine pinned to a single connection.
	// The connection is released when fn returns, whatever the outcome.
	WithConnection(ctx context.Context, fn func(conn Engine) error) error
	Close() error
}

type scanner interface {
	Scan(dest ...any) error
}

// collect drains rows through scan, closing them on every path.
func collect[T any](rows Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
