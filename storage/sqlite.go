package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteEngine is the reference Engine implementation, backed by an
// embedded SQLite database. It pins a single connection for its whole
// lifetime, mirroring the one-handle-per-actor model of the host runtime.
type SQLiteEngine struct {
	db     *sqlx.DB
	conn   *sqlx.Conn
	id     string
	log    *slog.Logger
	inTx   bool
	closed bool
}

// EngineOption configures a SQLiteEngine.
type EngineOption func(*SQLiteEngine)

// WithLogger sets the logger used for engine lifecycle and rollback
// diagnostics. Defaults to slog.Default().
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *SQLiteEngine) {
		e.log = l
	}
}

// WithInstanceID overrides the generated engine instance id used in logs.
func WithInstanceID(id string) EngineOption {
	return func(e *SQLiteEngine) {
		e.id = id
	}
}

// Open opens an embedded SQLite database at the given data source name
// and pins a single connection to it.
func Open(ctx context.Context, dataSourceName string, opts ...EngineOption) (*SQLiteEngine, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("storage: open: %w", err)
	}
	db.SetMaxOpenConns(1)
	e, err := OpenDB(ctx, db, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return e, nil
}

// OpenDB wraps an existing database handle with a SQLiteEngine. The engine
// pins one connection from the pool and owns the handle from then on:
// Close closes both.
func OpenDB(ctx context.Context, db *sqlx.DB, opts ...EngineOption) (*SQLiteEngine, error) {
	conn, err := db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage: open: %w", err)
	}
	e := &SQLiteEngine{
		db:   db,
		conn: conn,
		id:   uuid.NewString(),
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log.Debug("storage: engine opened", "engine", e.id)
	return e, nil
}

// InstanceID returns the engine's instance identifier.
func (e *SQLiteEngine) InstanceID() string { return e.id }

// Exec implements Engine. Rows are drained into a materialized cursor
// before returning; statements that produce no rows return an empty one.
func (e *SQLiteEngine) Exec(query string, args ...any) (Cursor, error) {
	if e.closed {
		return nil, ErrClosed
	}
	rows, err := e.conn.QueryxContext(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: exec: %w", err)
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("storage: exec: %w", err)
	}
	var out []Row
	for rows.Next() {
		row := make(Row, len(cols))
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("storage: exec: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: exec: %w", err)
	}
	return NewCursor(cols, out), nil
}

// TransactionSync implements Engine. The callback's error is returned
// unchanged after the rollback, so callers observe the original failure.
func (e *SQLiteEngine) TransactionSync(fn func() error) error {
	if e.closed {
		return ErrClosed
	}
	if e.inTx {
		return ErrNestedTransaction
	}
	ctx := context.Background()
	if _, err := e.conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return fmt.Errorf("storage: begin: %w", err)
	}
	e.inTx = true
	defer func() { e.inTx = false }()
	if err := fn(); err != nil {
		if _, rbErr := e.conn.ExecContext(ctx, "ROLLBACK"); rbErr != nil {
			e.log.Error("storage: rollback failed", "engine", e.id, "error", rbErr)
		}
		return err
	}
	if _, err := e.conn.ExecContext(ctx, "COMMIT"); err != nil {
		_, _ = e.conn.ExecContext(ctx, "ROLLBACK")
		return fmt.Errorf("storage: commit: %w", err)
	}
	return nil
}

// Close releases the pinned connection and the underlying database handle.
func (e *SQLiteEngine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.log.Debug("storage: engine closed", "engine", e.id)
	cerr := e.conn.Close()
	if err := e.db.Close(); err != nil {
		return err
	}
	return cerr
}

var _ Engine = (*SQLiteEngine)(nil)
