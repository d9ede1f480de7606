// Package actorsqlite binds the dialect backend contract to the SQL
// storage engine an actor runtime hands to each actor instance.
//
// The backend has deliberately asymmetric transaction support: the
// storage engine exposes no begin/commit/rollback primitives, only the
// all-or-nothing storage.Engine.TransactionSync scope, which the host
// actor invokes directly. Every statement issued through the query
// builder while inside that scope shares the backend's single Connection
// and is atomic together with the rest. The builder's own transaction
// path instead fails with ErrTransactionsUnsupported.
//
// The backend assumes the host's single-threaded-per-actor execution
// guarantee; wrap access in a mutex before using it from a genuinely
// concurrent host.
package actorsqlite

import (
	"errors"

	"github.com/edgekit/actorsql/dialect"
	"github.com/edgekit/actorsql/dialect/sqlite"
	"github.com/edgekit/actorsql/storage"
)

// Config carries the host actor's persistent storage handle. It is
// immutable once constructed and shared by reference into the Driver and
// its Connection.
type Config struct {
	// Storage is the actor's storage engine. Required.
	Storage storage.Engine
}

// Dialect is the backend's composition root: a pure factory bundling the
// generic SQLite adapter, this package's Driver, the generic SQLite
// introspector and the generic SQLite query compiler.
type Dialect struct {
	cfg Config
}

// New returns a Dialect for the given configuration.
func New(cfg Config) (*Dialect, error) {
	if cfg.Storage == nil {
		return nil, errors.New("actorsqlite: config: storage engine is required")
	}
	return &Dialect{cfg: cfg}, nil
}

// CreateAdapter returns the generic SQLite capability adapter.
func (*Dialect) CreateAdapter() dialect.Adapter { return sqlite.NewAdapter() }

// CreateDriver returns a Driver bound to the configured storage engine.
// The driver creates the backend's single Connection at construction.
func (d *Dialect) CreateDriver() dialect.Driver { return NewDriver(d.cfg) }

// CreateIntrospector returns the generic SQLite introspector bound to
// the given query surface.
func (*Dialect) CreateIntrospector(q dialect.Queryable) dialect.Introspector {
	return sqlite.NewIntrospector(q)
}

// CreateQueryCompiler returns the generic SQLite query compiler.
func (*Dialect) CreateQueryCompiler() dialect.QueryCompiler {
	return sqlite.NewQueryCompiler()
}

var _ dialect.Dialect = (*Dialect)(nil)
