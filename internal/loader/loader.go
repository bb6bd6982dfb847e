// Package loader writes employees to the store, either as one bulk copy
// per batch or one row per call. Both paths run inside an explicit unit
// of work that is committed or rolled back exactly once.
package loader

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/willfong/employeedb/internal/database"
	"github.com/willfong/employeedb/internal/models"
)

// Sink opens units of work. *database.Store satisfies it.
type Sink interface {
	Begin(ctx context.Context) (database.UnitOfWork, error)
}

// Loader writes employees through a Sink
type Loader struct {
	sink Sink
	log  *slog.Logger
}

// New creates a Loader writing to sink
func New(sink Sink, log *slog.Logger) *Loader {
	return &Loader{sink: sink, log: log}
}

// LoadBulk serializes all employees into one buffer and submits it with a
// single bulk copy in one transaction. Any failure rolls back the whole
// batch and returns an error matching database.ErrBulkLoadFailed.
func (l *Loader) LoadBulk(ctx context.Context, employees []models.Employee) (int64, error) {
	if len(employees) == 0 {
		return 0, nil
	}

	batch := uuid.NewString()
	log := l.log.With("batch", batch, "records", len(employees))
	start := time.Now()

	var buf bytes.Buffer
	buf.Grow(len(employees) * approxRowBytes)
	if _, err := EncodeEmployees(&buf, employees); err != nil {
		return 0, database.NewOpError(database.ErrBulkLoadFailed, "encode", err)
	}
	log.Debug("encoded bulk batch", "bytes", buf.Len())

	uow, err := l.sink.Begin(ctx)
	if err != nil {
		return 0, database.NewOpError(database.ErrBulkLoadFailed, "begin", err)
	}
	defer uow.Rollback()

	loaded, err := uow.CopyFrom(ctx, database.TableEmployees, database.Columns, &buf)
	if err != nil {
		l.rollback(log, uow)
		return 0, database.NewOpError(database.ErrBulkLoadFailed, "copy", err)
	}
	if loaded != int64(len(employees)) {
		l.rollback(log, uow)
		return 0, database.NewOpError(database.ErrBulkLoadFailed, "copy",
			fmt.Errorf("store accepted %d of %d rows", loaded, len(employees)))
	}

	if err := uow.Commit(); err != nil {
		return 0, database.NewOpError(database.ErrBulkLoadFailed, "commit", err)
	}

	log.Debug("bulk batch committed", "elapsed", time.Since(start))
	return loaded, nil
}

// InsertOne inserts a single employee and commits immediately.
// It is not idempotent: calling it twice stores two rows.
func (l *Loader) InsertOne(ctx context.Context, e models.Employee) error {
	uow, err := l.sink.Begin(ctx)
	if err != nil {
		return database.NewOpError(database.ErrInsertFailed, "begin", err)
	}
	defer uow.Rollback()

	if err := uow.Insert(ctx, e); err != nil {
		l.rollback(l.log, uow)
		return database.NewOpError(database.ErrInsertFailed, "insert", err)
	}

	if err := uow.Commit(); err != nil {
		return database.NewOpError(database.ErrInsertFailed, "commit", err)
	}
	return nil
}

func (l *Loader) rollback(log *slog.Logger, uow database.UnitOfWork) {
	if err := uow.Rollback(); err != nil {
		log.Error("rollback failed", "err", err)
	}
}
