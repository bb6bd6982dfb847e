package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/lib/pq"
)

// postgresDialect targets PostgreSQL through lib/pq
type postgresDialect struct{}

func (postgresDialect) driverName() string { return "postgres" }

func (postgresDialect) createTableSQL() string {
	return `CREATE TABLE IF NOT EXISTS employees (
	id SERIAL PRIMARY KEY,
	full_name VARCHAR(255),
	birth_date DATE,
	gender VARCHAR(50)
)`
}

func (postgresDialect) createIndexSQL(name, table, column string) string {
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", name, table, column)
}

func (postgresDialect) isDuplicateIndex(err error) bool {
	var pqErr *pq.Error
	// 42P07 duplicate_table also covers relations such as indexes
	return errors.As(err, &pqErr) && pqErr.Code == "42P07"
}

func (postgresDialect) placeholder(n int) string { return fmt.Sprintf("$%d", n) }

func (postgresDialect) ageExpr() string {
	return "CAST(EXTRACT(YEAR FROM AGE(birth_date)) AS INTEGER)"
}

func (postgresDialect) dateTextExpr() string {
	return "to_char(birth_date, 'YYYY-MM-DD')"
}

func (postgresDialect) prefixMatch(column, ph string) string {
	return column + " LIKE " + ph
}

func (postgresDialect) prefixPattern(prefix string) string {
	return likeEscaper.Replace(prefix) + "%"
}

// copyFrom runs COPY ... FROM STDIN. lib/pq takes row values and does the
// COPY text encoding itself, so the CSV stream is decoded and replayed into
// the copy statement; the server still sees a single COPY.
func (postgresDialect) copyFrom(ctx context.Context, tx *sql.Tx, table string, columns []string, r io.Reader) (int64, error) {
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table, columns...))
	if err != nil {
		return 0, fmt.Errorf("prepare copy: %w", err)
	}

	n, err := replayCSV(ctx, stmt, r, len(columns))
	if err != nil {
		stmt.Close()
		return n, err
	}

	// An Exec with no arguments flushes the buffered rows and ends the COPY
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return n, fmt.Errorf("finish copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return n, fmt.Errorf("close copy: %w", err)
	}
	return n, nil
}
