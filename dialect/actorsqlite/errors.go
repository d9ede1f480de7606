package actorsqlite

import (
	"errors"
	"fmt"
)

// ErrTransactionsUnsupported is returned whenever the query builder's own
// transaction path reaches this backend. The storage engine exposes no
// begin/commit/rollback primitives; atomicity is only available through
// the host's storage.Engine.TransactionSync scope, which the caller must
// invoke directly.
var ErrTransactionsUnsupported = errors.New(
	"actorsqlite: driver-level transactions are not supported: wrap statements in the storage engine's TransactionSync instead")

// ExecError wraps a statement failure reported by the storage engine.
type ExecError struct {
	SQL string // Statement text that failed
	Err error  // Underlying storage engine error
}

// Error returns the error string.
func (e *ExecError) Error() string {
	return fmt.Sprintf("actorsqlite: exec: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *ExecError) Unwrap() error {
	return e.Err
}

// IsExecError returns true if the error is an ExecError.
func IsExecError(err error) bool {
	if err == nil {
		return false
	}
	var e *ExecError
	return errors.As(err, &e)
}
