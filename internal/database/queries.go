// Package database provides the store gateway for the employees table.
//
// FILE: queries.go
// PURPOSE: Store struct and constructor. This is the entry point for all
// database operations: connection lifecycle, schema and index bootstrap,
// and the full purge.
//
// KEY TYPES:
// - Store: owns the single connection and the dialect
//
// RELATED FILES:
// - queries_employee.go: ListAll and Find reads
// - unit.go: Units of work for inserts and bulk copies
// - scanners.go: Row scanning helper functions
package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/willfong/employeedb/internal/config"
)

// Store provides database operations on the employees table.
// It owns one connection and must not be shared across goroutines.
type Store struct {
	pool    *Pool
	dialect dialect
	log     *slog.Logger
}

// Open connects to the configured store. On any failure no Store is
// returned, so the caller only ever closes a connected store.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*Store, error) {
	d, err := lookupDialect(cfg.Driver)
	if err != nil {
		return nil, NewOpError(ErrConnection, "open", err)
	}

	pool, err := NewPool(d.driverName(), cfg)
	if err != nil {
		return nil, NewOpError(ErrConnection, "open", err)
	}

	if err := pool.Connect(ctx); err != nil {
		pool.Close()
		return nil, NewOpError(ErrConnection, "connect", err)
	}

	log.Debug("connected to database", "driver", cfg.Driver, "dsn", cfg.MaskedConnectionString())

	return &Store{pool: pool, dialect: d, log: log}, nil
}

// Close gracefully releases the connection
func (s *Store) Close() error {
	return s.pool.Close()
}

// Stats returns connection and query statistics
func (s *Store) Stats() PoolStats {
	return s.pool.Stats()
}

// CreateSchema creates the employees table if it does not exist
func (s *Store) CreateSchema(ctx context.Context) error {
	if _, err := s.pool.ExecContext(ctx, s.dialect.createTableSQL()); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// CreateIndexes adds the indexes used by Find. Existing indexes are kept.
func (s *Store) CreateIndexes(ctx context.Context) error {
	for _, idx := range indexes {
		stmt := s.dialect.createIndexSQL(idx.name, TableEmployees, idx.column)
		if _, err := s.pool.ExecContext(ctx, stmt); err != nil {
			if s.dialect.isDuplicateIndex(err) {
				s.log.Debug("index already exists", "index", idx.name)
				continue
			}
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}
	return nil
}

// Purge deletes every row in one transaction and returns the number removed
func (s *Store) Purge(ctx context.Context) (int64, error) {
	tx, err := s.pool.BeginTx(ctx, nil)
	if err != nil {
		return 0, NewOpError(ErrPurgeFailed, "begin", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM "+TableEmployees)
	if err != nil {
		return 0, NewOpError(ErrPurgeFailed, "delete", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, NewOpError(ErrPurgeFailed, "rows affected", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, NewOpError(ErrPurgeFailed, "commit", err)
	}
	return deleted, nil
}
