// Package database provides the store gateway for the employees table.
//
// FILE: errors.go
// PURPOSE: Error taxonomy for storage operations. Every failure surfaced by
// the store or the loader is an *OpError whose Kind is one of the sentinels
// below, so callers can branch with errors.Is on either the kind or the cause.
//
// RELATED FILES:
// - queries.go: Connection lifecycle, schema and purge
// - unit.go: Units of work used by the loader
package database

import (
	"errors"
	"fmt"
)

// Error kinds
var (
	// ErrConnection means the store is unreachable. It is fatal for a run.
	ErrConnection = errors.New("connection error")

	// ErrBulkLoadFailed means a bulk copy was rolled back
	ErrBulkLoadFailed = errors.New("bulk load failed")

	// ErrInsertFailed means a single-row insert was rolled back
	ErrInsertFailed = errors.New("insert failed")

	// ErrPurgeFailed means the purge was rolled back
	ErrPurgeFailed = errors.New("purge failed")

	// ErrUnknownDriver means no dialect exists for the configured driver
	ErrUnknownDriver = errors.New("unknown database driver")
)

// OpError describes a failed storage operation
type OpError struct {
	Kind error  // one of the Err* sentinels
	Op   string // short operation name, e.g. "copy", "commit"
	Err  error  // underlying cause
}

// NewOpError wraps err as an operation failure of the given kind
func NewOpError(kind error, op string, err error) *OpError {
	return &OpError{Kind: kind, Op: op, Err: err}
}

func (e *OpError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Op, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As
func (e *OpError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// IsFatal reports whether err should terminate the process.
// Only connection failures are fatal; everything else is rolled back and logged.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConnection)
}
