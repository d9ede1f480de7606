package actorsqlite

import (
	"context"

	"github.com/edgekit/actorsql/dialect"
)

// Driver owns the backend's single Connection for the lifetime of the
// host actor. There is no pool: acquisitions always return the same
// instance and releases are no-ops.
type Driver struct {
	conn *Connection
}

// NewDriver returns a Driver bound to the storage engine in cfg.
func NewDriver(cfg Config) *Driver {
	return &Driver{conn: newConnection(cfg.Storage)}
}

// Init is a no-op: the storage handle is already live when the actor
// starts.
func (*Driver) Init(context.Context) error { return nil }

// AcquireConnection returns the driver's single shared Connection. It
// never waits and never fails.
func (d *Driver) AcquireConnection(context.Context) (dialect.Connection, error) {
	return d.conn, nil
}

// BeginTransaction delegates to the owned Connection, which fails with
// ErrTransactionsUnsupported. Builder-level transaction attempts surface
// that error instead of silently doing nothing, so callers cannot
// believe they obtained atomicity through the wrong door.
func (d *Driver) BeginTransaction(ctx context.Context, conn dialect.Connection) error {
	if c, ok := conn.(*Connection); ok && c == d.conn {
		return c.BeginTransaction(ctx)
	}
	return nil
}

// CommitTransaction delegates to the owned Connection's no-op commit.
// Foreign connections have no effect.
func (d *Driver) CommitTransaction(ctx context.Context, conn dialect.Connection) error {
	if c, ok := conn.(*Connection); ok && c == d.conn {
		return c.CommitTransaction(ctx)
	}
	return nil
}

// RollbackTransaction delegates to the owned Connection's no-op
// rollback. Foreign connections have no effect.
func (d *Driver) RollbackTransaction(ctx context.Context, conn dialect.Connection) error {
	if c, ok := conn.(*Connection); ok && c == d.conn {
		return c.RollbackTransaction(ctx)
	}
	return nil
}

// ReleaseConnection is a no-op: connection lifetime is tied to the
// driver, not to acquire/release cycles.
func (*Driver) ReleaseConnection(context.Context, dialect.Connection) error { return nil }

// Destroy is a no-op: the storage handle belongs to the host actor and
// outlives the driver.
func (*Driver) Destroy(context.Context) error { return nil }

var _ dialect.Driver = (*Driver)(nil)
