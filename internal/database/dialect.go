// Package database provides the store gateway for the employees table.
//
// FILE: dialect.go
// PURPOSE: SQL differences between the supported stores. The gateway builds
// every statement through a dialect so that one code path serves PostgreSQL,
// MySQL/MariaDB and SQLite.
//
// KEY TYPES:
// - dialect: per-store DDL, expressions, placeholders and bulk copy
//
// RELATED FILES:
// - dialect_postgres.go: lib/pq, COPY FROM STDIN
// - dialect_mysql.go: go-sql-driver/mysql, LOAD DATA LOCAL INFILE from a reader
// - dialect_sqlite.go: modernc.org/sqlite, prepared inserts in one transaction
package database

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// TableEmployees is the only table managed by the store
const TableEmployees = "employees"

// Columns is the column order of the bulk transfer format
var Columns = []string{"full_name", "birth_date", "gender"}

// indexes maps index name to indexed column
var indexes = []struct {
	name   string
	column string
}{
	{"idx_gender", "gender"},
	{"idx_full_name", "full_name"},
}

type dialect interface {
	// driverName is the database/sql driver registered by the library
	driverName() string

	// createTableSQL returns an idempotent CREATE TABLE statement
	createTableSQL() string

	// createIndexSQL returns a CREATE INDEX statement for one column
	createIndexSQL(name, table, column string) string

	// isDuplicateIndex reports whether err means the index already exists
	isDuplicateIndex(err error) bool

	// placeholder returns the n-th (1-based) bind parameter marker
	placeholder(n int) string

	// ageExpr computes whole years since birth_date in SQL
	ageExpr() string

	// dateTextExpr renders birth_date as YYYY-MM-DD text
	dateTextExpr() string

	// prefixMatch returns a case-sensitive, left-anchored predicate on column
	prefixMatch(column, ph string) string

	// prefixPattern turns a literal prefix into the bind value for prefixMatch
	prefixPattern(prefix string) string

	// copyFrom streams CSV rows from r into table inside tx
	copyFrom(ctx context.Context, tx *sql.Tx, table string, columns []string, r io.Reader) (int64, error)
}

func lookupDialect(driver string) (dialect, error) {
	switch driver {
	case "postgres", "postgresql":
		return postgresDialect{}, nil
	case "mysql", "mariadb":
		return mysqlDialect{}, nil
	case "sqlite", "sqlite3":
		return sqliteDialect{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// insertSQL builds the parameterized single-row insert
func insertSQL(d dialect, table string, columns []string) string {
	phs := make([]string, len(columns))
	for i := range columns {
		phs[i] = d.placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(phs, ", "))
}

// replayCSV feeds every CSV record from r into stmt, one Exec per record.
// Used by drivers whose bulk path takes values rather than raw text.
func replayCSV(ctx context.Context, stmt *sql.Stmt, r io.Reader, width int) (int64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = width
	cr.ReuseRecord = true

	args := make([]any, width)
	var n int64
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("reading record %d: %w", n+1, err)
		}

		for i, field := range record {
			args[i] = field
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return n, fmt.Errorf("record %d: %w", n+1, err)
		}
		n++
	}
}

// likeEscaper escapes LIKE metacharacters with the default backslash escape
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// globEscaper wraps GLOB metacharacters in single-character classes
var globEscaper = strings.NewReplacer(`*`, `[*]`, `?`, `[?]`, `[`, `[[]`)
