// Package config contains compile-time defaults and the runtime
// configuration for employeedb.
package config

import "time"

// =============================================================================
// DATABASE DEFAULTS
// =============================================================================

const (
	// DBDriver is the database driver to use (postgres, mysql, sqlite)
	DBDriver = "postgres"

	// DBName is the database holding the employees table
	DBName = "employees"

	// DBHost is the default database host
	DBHost = "localhost"

	// DBSSLMode is the PostgreSQL sslmode parameter
	DBSSLMode = "disable"

	// DBMaxOpenConns is one: every command runs on a single connection
	DBMaxOpenConns = 1

	// DBConnectTimeout bounds the initial ping
	DBConnectTimeout = 10 * time.Second
)

// Default ports per driver
const (
	PostgresPort = 5432
	MySQLPort    = 3306
)

// =============================================================================
// BULK GENERATION DEFAULTS
// =============================================================================

const (
	// BulkCount is the size of the general synthetic population
	BulkCount = 1000000

	// SpecialCount is the size of the F-surname male population
	SpecialCount = 100

	// MinAgeYears is the youngest generated employee
	MinAgeYears = 18

	// MaxAgeYears is the oldest generated employee
	MaxAgeYears = 65
)

// =============================================================================
// QUERY DEFAULTS
// =============================================================================

const (
	// FindGender is the gender used by find-filtered when none is given
	FindGender = "Male"

	// FindPrefix is the name prefix used by find-filtered when none is given
	FindPrefix = "F"
)

// =============================================================================
// LOGGING
// =============================================================================

const (
	// LogLevel is the default slog level
	LogLevel = "info"

	// LogFormat is the default slog handler ("text" or "json")
	LogFormat = "text"
)
