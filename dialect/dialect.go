package dialect

import "context"

// Row is a single result row keyed by column name.
type Row map[string]any

// CompiledQuery is a dialect-specific SQL statement with its ordered
// positional parameter values. It is produced by a QueryCompiler and
// consumed by a Connection; the adapter layer never builds one itself.
type CompiledQuery struct {
	// SQL is the statement text with positional placeholders.
	SQL string
	// Parameters are the placeholder values, in placeholder order.
	// Supported types are the storage primitives: numbers, text,
	// binary and nil.
	Parameters []any
}

// QueryResult is the response shape returned to the query builder.
type QueryResult struct {
	// Rows are the result rows, in cursor order.
	Rows []Row
	// NumAffectedRows is the number of rows changed by the statement,
	// or nil when the backend's storage primitive does not report it.
	NumAffectedRows *int64
	// InsertID is the row id generated by an insert, or nil when the
	// backend's storage primitive does not report it.
	InsertID *int64
}

// QueryStream delivers results of a streamed query in batches. Backends
// that cannot stream deliver a single batch holding every row. A stream
// is finite and cannot be restarted; re-streaming requires a fresh
// StreamQuery call.
type QueryStream interface {
	// Next advances to the next batch and reports whether one is
	// available. It returns false once the stream is exhausted or has
	// failed; consult Err to distinguish.
	Next() bool

	// Result returns the current batch. Valid only after a true Next.
	Result() *QueryResult

	// Err returns the error that terminated the stream, if any.
	Err() error
}

// Connection executes compiled queries against a single backend
// connection.
type Connection interface {
	// ExecuteQuery runs the compiled query and returns its fully
	// materialized result.
	ExecuteQuery(ctx context.Context, q CompiledQuery) (*QueryResult, error)

	// StreamQuery runs the compiled query and delivers its result
	// through a QueryStream.
	StreamQuery(ctx context.Context, q CompiledQuery) QueryStream

	// BeginTransaction starts a builder-level transaction on the
	// connection. Backends whose transaction control lives outside the
	// connection fail here instead of pretending to provide atomicity.
	BeginTransaction(ctx context.Context) error

	// CommitTransaction commits a builder-level transaction.
	CommitTransaction(ctx context.Context) error

	// RollbackTransaction rolls back a builder-level transaction.
	RollbackTransaction(ctx context.Context) error
}

// Driver manages the lifecycle of backend connections on behalf of the
// query builder engine.
type Driver interface {
	// Init prepares the driver for use. Called once before any other
	// method.
	Init(ctx context.Context) error

	// AcquireConnection returns a connection for executing queries.
	AcquireConnection(ctx context.Context) (Connection, error)

	// BeginTransaction begins a transaction on the given connection.
	BeginTransaction(ctx context.Context, conn Connection) error

	// CommitTransaction commits a transaction on the given connection.
	CommitTransaction(ctx context.Context, conn Connection) error

	// RollbackTransaction rolls back a transaction on the given
	// connection.
	RollbackTransaction(ctx context.Context, conn Connection) error

	// ReleaseConnection returns a previously acquired connection.
	ReleaseConnection(ctx context.Context, conn Connection) error

	// Destroy releases all driver resources. No method is called after
	// Destroy.
	Destroy(ctx context.Context) error
}

// Adapter reports the capabilities of a SQL dialect to the builder
// engine.
type Adapter interface {
	// SupportsReturning reports whether the dialect supports RETURNING
	// clauses on mutating statements.
	SupportsReturning() bool

	// SupportsTransactionalDDL reports whether schema changes
	// participate in transactions.
	SupportsTransactionalDDL() bool

	// SupportsCreateIfNotExists reports whether the dialect supports
	// IF NOT EXISTS on create statements.
	SupportsCreateIfNotExists() bool

	// AcquireMigrationLock takes the dialect's migration lock, if it
	// has one, so that concurrent migrators do not interleave.
	AcquireMigrationLock(ctx context.Context, conn Connection) error

	// ReleaseMigrationLock releases the migration lock.
	ReleaseMigrationLock(ctx context.Context, conn Connection) error
}

// QueryCompiler renders statements into dialect-specific compiled
// queries.
type QueryCompiler interface {
	// CompileRaw pairs already dialect-specific SQL text with its
	// positional parameters.
	CompileRaw(sql string, args ...any) CompiledQuery

	// QuoteIdentifier quotes a table or column name for safe
	// interpolation into SQL text.
	QuoteIdentifier(name string) string

	// Placeholder returns the placeholder token for the n-th parameter
	// (1-based).
	Placeholder(n int) string
}

// Queryable is the minimal query surface the Introspector needs. It is
// satisfied by Connection.
type Queryable interface {
	ExecuteQuery(ctx context.Context, q CompiledQuery) (*QueryResult, error)
}

// TableMetadata describes one table or view found by an Introspector.
type TableMetadata struct {
	Name   string
	IsView bool
}

// ColumnMetadata describes one column of an introspected table.
type ColumnMetadata struct {
	Name         string
	DataType     string
	NotNull      bool
	HasDefault   bool
	IsPrimaryKey bool
}

// Introspector reads schema metadata through a backend connection.
type Introspector interface {
	// Tables lists the user tables and views, sorted by name.
	Tables(ctx context.Context) ([]TableMetadata, error)

	// Columns lists the columns of the named table, in declaration
	// order.
	Columns(ctx context.Context, table string) ([]ColumnMetadata, error)
}

// Dialect is the four-method factory the query builder engine uses to
// obtain the pieces of a backend. Implementations are pure composition:
// every method except CreateDriver is side-effect-free, and CreateDriver
// binds whatever connection state the backend needs.
type Dialect interface {
	CreateAdapter() Adapter
	CreateDriver() Driver
	CreateIntrospector(q Queryable) Introspector
	CreateQueryCompiler() QueryCompiler
}
