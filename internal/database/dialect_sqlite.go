package database

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	_ "modernc.org/sqlite"
)

// sqliteDialect targets an embedded SQLite file through modernc.org/sqlite
type sqliteDialect struct{}

func (sqliteDialect) driverName() string { return "sqlite" }

func (sqliteDialect) createTableSQL() string {
	return `CREATE TABLE IF NOT EXISTS employees (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	full_name VARCHAR(255),
	birth_date DATE,
	gender VARCHAR(50)
)`
}

func (sqliteDialect) createIndexSQL(name, table, column string) string {
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", name, table, column)
}

func (sqliteDialect) isDuplicateIndex(err error) bool {
	return err != nil && strings.Contains(err.Error(), "already exists")
}

func (sqliteDialect) placeholder(int) string { return "?" }

// ageExpr subtracts one year while today's month-day sorts before the birthday
func (sqliteDialect) ageExpr() string {
	return "(CAST(strftime('%Y', 'now') AS INTEGER) - CAST(strftime('%Y', birth_date) AS INTEGER)" +
		" - (strftime('%m-%d', 'now') < strftime('%m-%d', birth_date)))"
}

func (sqliteDialect) dateTextExpr() string {
	return "strftime('%Y-%m-%d', birth_date)"
}

// prefixMatch uses GLOB because SQLite's LIKE ignores ASCII case
func (sqliteDialect) prefixMatch(column, ph string) string {
	return column + " GLOB " + ph
}

func (sqliteDialect) prefixPattern(prefix string) string {
	return globEscaper.Replace(prefix) + "*"
}

// copyFrom has no native bulk path to use, so the CSV stream is replayed
// into one prepared insert. The caller's transaction keeps it atomic.
func (d sqliteDialect) copyFrom(ctx context.Context, tx *sql.Tx, table string, columns []string, r io.Reader) (int64, error) {
	stmt, err := tx.PrepareContext(ctx, insertSQL(d, table, columns))
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	return replayCSV(ctx, stmt, r, len(columns))
}
