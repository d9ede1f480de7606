// Package storage defines the host-side SQL capability consumed by the
// dialect adapter: a synchronous, single-connection execution primitive
// returning materialized cursors, and a scoped transaction mechanism that
// commits when its callback returns and rolls back when it fails.
//
// The package also ships a reference Engine backed by an embedded SQLite
// database (see Open), which stands in for the host runtime's storage
// handle in tests and in single-process deployments.
package storage

import "errors"

// Row is a single result row keyed by column name. Values carry the
// driver's native representations (int64, float64, string, []byte, nil).
type Row map[string]any

// Cursor iterates over the rows produced by Engine.Exec. Engines return
// fully materialized cursors: iteration never touches the database again.
type Cursor interface {
	// Next advances the cursor and reports whether a row is available.
	Next() bool

	// Row returns the current row. Valid only after a true Next.
	Row() Row

	// Columns returns the result column names, in select order.
	Columns() []string

	// Err returns the first error encountered while producing rows.
	Err() error
}

// Engine is the storage primitive the host hands to each actor instance.
//
// Engines are single-connection by construction and are driven by at most
// one handler at a time; implementations need no internal locking as long
// as that precondition holds. Porting to a genuinely concurrent host
// requires wrapping calls in a mutex.
type Engine interface {
	// Exec runs a single SQL statement with positional parameters
	// (numbers, text, binary, nil) and returns a cursor over its rows.
	Exec(query string, args ...any) (Cursor, error)

	// TransactionSync runs fn atomically on the engine's connection.
	// It commits when fn returns nil and rolls back and returns fn's
	// error otherwise. Statements issued through Exec inside fn are part
	// of the transaction. Not reentrant.
	TransactionSync(fn func() error) error
}

var (
	// ErrClosed is returned when the engine has been closed.
	ErrClosed = errors.New("storage: engine is closed")

	// ErrNestedTransaction is returned when TransactionSync is invoked
	// from within an active TransactionSync callback.
	ErrNestedTransaction = errors.New("storage: nested TransactionSync is not supported")
)

// rowsCursor is a Cursor over an already materialized row slice.
type rowsCursor struct {
	columns []string
	rows    []Row
	pos     int
	err     error
}

// NewCursor returns a materialized Cursor over the given rows.
// Engine implementations and tests use it to satisfy the Cursor contract.
func NewCursor(columns []string, rows []Row) Cursor {
	return &rowsCursor{columns: columns, rows: rows}
}

func (c *rowsCursor) Next() bool {
	if c.pos >= len(c.rows) {
		return false
	}
	c.pos++
	return true
}

func (c *rowsCursor) Row() Row {
	if c.pos == 0 || c.pos > len(c.rows) {
		return nil
	}
	return c.rows[c.pos-1]
}

func (c *rowsCursor) Columns() []string { return c.columns }

func (c *rowsCursor) Err() error { return c.err }
