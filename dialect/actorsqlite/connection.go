package actorsqlite

import (
	"context"

	"github.com/edgekit/actorsql/dialect"
	"github.com/edgekit/actorsql/storage"
)

// Connection executes compiled queries against the actor's storage
// engine. A Driver creates exactly one Connection and hands it out for
// every acquisition; the host runtime runs at most one handler per actor
// at a time, so the shared instance needs no locking.
type Connection struct {
	store storage.Engine

	// inTx is advisory only. It records that BeginTransaction was
	// invoked; it does not gate or serialize execution, since real
	// atomicity comes from the storage engine's TransactionSync scope.
	inTx bool
}

func newConnection(store storage.Engine) *Connection {
	return &Connection{store: store}
}

// ExecuteQuery runs the compiled query and drains the storage cursor
// into a fully materialized result. The storage primitive reports
// neither affected-row counts nor insert ids, so both stay nil.
func (c *Connection) ExecuteQuery(ctx context.Context, q dialect.CompiledQuery) (*dialect.QueryResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cur, err := c.store.Exec(q.SQL, q.Parameters...)
	if err != nil {
		return nil, &ExecError{SQL: q.SQL, Err: err}
	}
	var rows []dialect.Row
	for cur.Next() {
		rows = append(rows, dialect.Row(cur.Row()))
	}
	if err := cur.Err(); err != nil {
		return nil, &ExecError{SQL: q.SQL, Err: err}
	}
	return &dialect.QueryResult{Rows: rows}, nil
}

// StreamQuery simulates streaming over a storage primitive that cannot
// stream: the returned stream executes the query once on first Next and
// yields that single result as its only batch. It is not restartable.
func (c *Connection) StreamQuery(ctx context.Context, q dialect.CompiledQuery) dialect.QueryStream {
	return &queryStream{conn: c, ctx: ctx, query: q}
}

// BeginTransaction always fails with ErrTransactionsUnsupported. The
// advisory marker is still recorded so InTransaction reflects the
// attempt.
func (c *Connection) BeginTransaction(context.Context) error {
	c.inTx = true
	return ErrTransactionsUnsupported
}

// CommitTransaction is a no-op: the storage engine's TransactionSync
// commits on its own when the scoped callback returns.
func (c *Connection) CommitTransaction(context.Context) error {
	c.inTx = false
	return nil
}

// RollbackTransaction is a no-op: TransactionSync rolls back on its own
// when the scoped callback fails.
func (c *Connection) RollbackTransaction(context.Context) error {
	c.inTx = false
	return nil
}

// InTransaction reports the advisory transaction marker.
func (c *Connection) InTransaction() bool { return c.inTx }

// queryStream yields the result of a single execution as its only batch.
type queryStream struct {
	conn  *Connection
	ctx   context.Context
	query dialect.CompiledQuery
	res   *dialect.QueryResult
	err   error
	done  bool
}

func (s *queryStream) Next() bool {
	if s.done {
		s.res = nil
		return false
	}
	s.done = true
	s.res, s.err = s.conn.ExecuteQuery(s.ctx, s.query)
	return s.err == nil
}

func (s *queryStream) Result() *dialect.QueryResult { return s.res }

func (s *queryStream) Err() error { return s.err }

var (
	_ dialect.Connection  = (*Connection)(nil)
	_ dialect.QueryStream = (*queryStream)(nil)
)
