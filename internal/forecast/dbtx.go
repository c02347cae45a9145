package forecast

import (
	"context"
	"database/sql"
)

// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
}

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier interface {
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
}

// Scanner is the interface that wraps the Scan method of *sql.Row and
// *sql.Rows.
type Scanner interface {
	Scan(...any) error
}
