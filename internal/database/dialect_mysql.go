package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
)

// erDupKeyName is MySQL's "Duplicate key name" error number
const erDupKeyName = 1061

// mysqlDialect targets MySQL 8 and MariaDB through go-sql-driver/mysql
type mysqlDialect struct{}

func (mysqlDialect) driverName() string { return "mysql" }

func (mysqlDialect) createTableSQL() string {
	return `CREATE TABLE IF NOT EXISTS employees (
	id SERIAL PRIMARY KEY,
	full_name VARCHAR(255),
	birth_date DATE,
	gender VARCHAR(50)
) DEFAULT CHARSET=utf8mb4`
}

// createIndexSQL omits IF NOT EXISTS, which MySQL 8 does not accept for
// indexes; duplicates are detected by isDuplicateIndex instead.
func (mysqlDialect) createIndexSQL(name, table, column string) string {
	return fmt.Sprintf("CREATE INDEX %s ON %s (%s)", name, table, column)
}

func (mysqlDialect) isDuplicateIndex(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == erDupKeyName
	}
	// Ignore "already exists" errors from MariaDB forks with other codes
	return err != nil && (strings.Contains(err.Error(), "Duplicate") ||
		strings.Contains(err.Error(), "already exists"))
}

func (mysqlDialect) placeholder(int) string { return "?" }

func (mysqlDialect) ageExpr() string {
	return "TIMESTAMPDIFF(YEAR, birth_date, CURDATE())"
}

func (mysqlDialect) dateTextExpr() string {
	return "DATE_FORMAT(birth_date, '%Y-%m-%d')"
}

func (mysqlDialect) prefixMatch(column, ph string) string {
	// The default collation is case-insensitive
	return column + " COLLATE utf8mb4_bin LIKE " + ph
}

func (mysqlDialect) prefixPattern(prefix string) string {
	return likeEscaper.Replace(prefix) + "%"
}

// loadDataSQL reads RFC 4180 CSV: fields optionally enclosed in double
// quotes, embedded quotes doubled, no backslash escapes.
const loadDataSQL = `LOAD DATA LOCAL INFILE 'Reader::%s'
INTO TABLE %s
CHARACTER SET utf8mb4
FIELDS TERMINATED BY ','
OPTIONALLY ENCLOSED BY '"'
ESCAPED BY ''
LINES TERMINATED BY '\n'
(%s)`

// copyFrom streams r to the server with LOAD DATA LOCAL INFILE via a
// registered reader handler. The server must allow local_infile.
func (mysqlDialect) copyFrom(ctx context.Context, tx *sql.Tx, table string, columns []string, r io.Reader) (int64, error) {
	handler := "employees-" + uuid.NewString()
	mysql.RegisterReaderHandler(handler, func() io.Reader { return r })
	defer mysql.DeregisterReaderHandler(handler)

	stmt := fmt.Sprintf(loadDataSQL, handler, table, strings.Join(columns, ", "))
	res, err := tx.ExecContext(ctx, stmt)
	if err != nil {
		return 0, fmt.Errorf("LOAD DATA failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("LOAD DATA row count: %w", err)
	}
	return rows, nil
}
