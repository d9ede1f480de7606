// Package sqlite provides the generic SQLite collaborators of the dialect
// contract: capability adapter, query compiler and schema introspector.
// They carry no connection state of their own and are composed into a
// concrete backend by its Dialect (see dialect/actorsqlite).
package sqlite

import (
	"context"

	"github.com/edgekit/actorsql/dialect"
)

// Adapter reports SQLite's dialect capabilities.
type Adapter struct{}

// NewAdapter returns the SQLite capability adapter.
func NewAdapter() *Adapter { return &Adapter{} }

// SupportsReturning reports RETURNING clause support. SQLite has it
// since 3.35.
func (*Adapter) SupportsReturning() bool { return true }

// SupportsTransactionalDDL reports that SQLite DDL participates in
// transactions.
func (*Adapter) SupportsTransactionalDDL() bool { return true }

// SupportsCreateIfNotExists reports IF NOT EXISTS support on create
// statements.
func (*Adapter) SupportsCreateIfNotExists() bool { return true }

// AcquireMigrationLock is a no-op: a single-connection SQLite database
// serializes migrators by construction.
func (*Adapter) AcquireMigrationLock(context.Context, dialect.Connection) error { return nil }

// ReleaseMigrationLock is a no-op, see AcquireMigrationLock.
func (*Adapter) ReleaseMigrationLock(context.Context, dialect.Connection) error { return nil }

var _ dialect.Adapter = (*Adapter)(nil)
