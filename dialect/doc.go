// Package dialect defines the pluggable backend contract a query builder
// uses to talk to a storage backend.
//
// A backend is described by a Dialect, a four-method factory producing the
// pieces the builder engine needs:
//
//	type Dialect interface {
//	    CreateAdapter() Adapter
//	    CreateDriver() Driver
//	    CreateIntrospector(q Queryable) Introspector
//	    CreateQueryCompiler() QueryCompiler
//	}
//
// The Driver owns connection lifecycle and transaction boundaries, the
// Connection executes compiled queries, the Adapter reports dialect
// capabilities, the QueryCompiler renders statements into CompiledQuery
// values, and the Introspector reads schema metadata.
//
// # Implementations
//
// This module ships one concrete backend:
//
//   - dialect/actorsqlite: binds the contract to an actor-hosted embedded
//     SQLite storage engine (see the storage package), reusing the generic
//     SQLite collaborators from dialect/sqlite.
//
// # Queries and results
//
// A CompiledQuery is dialect-specific SQL text plus ordered positional
// parameters. Executing one yields a QueryResult: the materialized rows
// plus optional affected-row count and insert id, which backends whose
// storage primitive does not report them leave nil.
package dialect
