// Package database provides the store gateway for the employees table.
//
// FILE: unit.go
// PURPOSE: Explicit transaction boundaries. A unit of work is begun on the
// store, receives one or more writes, and is committed or rolled back once.
//
// KEY TYPES:
// - UnitOfWork: the interface the loader writes through
// - unit: *sql.Tx backed implementation
package database

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"time"

	"github.com/willfong/employeedb/internal/models"
)

// UnitOfWork is a transaction over the employees table.
// Rollback after Commit is a no-op, so it is safe to defer.
type UnitOfWork interface {
	// CopyFrom streams CSV rows with the given column order into table
	CopyFrom(ctx context.Context, table string, columns []string, r io.Reader) (int64, error)

	// Insert adds one employee with a parameterized statement
	Insert(ctx context.Context, e models.Employee) error

	Commit() error
	Rollback() error
}

type unit struct {
	tx      *sql.Tx
	dialect dialect
	pool    *Pool
	done    bool
}

// Begin opens a new unit of work
func (s *Store) Begin(ctx context.Context) (UnitOfWork, error) {
	tx, err := s.pool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &unit{tx: tx, dialect: s.dialect, pool: s.pool}, nil
}

func (u *unit) CopyFrom(ctx context.Context, table string, columns []string, r io.Reader) (int64, error) {
	start := time.Now()
	n, err := u.dialect.copyFrom(ctx, u.tx, table, columns, r)
	u.pool.recordQuery(time.Since(start), err)
	return n, err
}

func (u *unit) Insert(ctx context.Context, e models.Employee) error {
	start := time.Now()
	_, err := u.tx.ExecContext(ctx, insertSQL(u.dialect, TableEmployees, Columns),
		e.FullName, e.BirthDateString(), string(e.Gender))
	u.pool.recordQuery(time.Since(start), err)
	return err
}

func (u *unit) Commit() error {
	if u.done {
		return sql.ErrTxDone
	}
	u.done = true
	return u.tx.Commit()
}

func (u *unit) Rollback() error {
	if u.done {
		return nil
	}
	u.done = true
	if err := u.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}
