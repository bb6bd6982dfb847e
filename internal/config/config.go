package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

// Config holds all configuration for employeedb
type Config struct {
	// Database connection settings
	Database DatabaseConfig `mapstructure:"database"`

	// Synthetic data generation settings
	Generate GenerateConfig `mapstructure:"generate"`

	// Logging
	Log LogConfig `mapstructure:"log"`

	Verbose bool `mapstructure:"verbose"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	// Driver (postgres, mysql, sqlite)
	Driver string `mapstructure:"driver"`

	// DSN overrides the individual connection fields when set.
	// For sqlite, Name is the database file path.
	DSN string `mapstructure:"dsn"`

	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"` // 0 = driver default
	SSLMode  string `mapstructure:"sslmode"`

	// Connection pool settings
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`

	// ConnectTimeout bounds the initial reachability check
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// GenerateConfig holds synthetic data generation settings
type GenerateConfig struct {
	// Random seed for reproducibility (0 = random)
	Seed int64 `mapstructure:"seed"`

	// Volume settings
	BulkCount    int `mapstructure:"bulk_count"`
	SpecialCount int `mapstructure:"special_count"`

	// Age band in years
	MinAgeYears int `mapstructure:"min_age_years"`
	MaxAgeYears int `mapstructure:"max_age_years"`
}

// LogConfig holds structured logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:         DBDriver,
			Name:           DBName,
			Host:           DBHost,
			SSLMode:        DBSSLMode,
			MaxOpenConns:   DBMaxOpenConns,
			ConnectTimeout: DBConnectTimeout,
		},
		Generate: GenerateConfig{
			Seed:         0,
			BulkCount:    BulkCount,
			SpecialCount: SpecialCount,
			MinAgeYears:  MinAgeYears,
			MaxAgeYears:  MaxAgeYears,
		},
		Log: LogConfig{
			Level:  LogLevel,
			Format: LogFormat,
		},
		Verbose: false,
	}
}

// Load reads configuration from viper into a Config struct
func Load(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	// Unmarshal viper config into struct
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Verbose && !v.IsSet("log.level") {
		cfg.Log.Level = "debug"
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []string

	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		errs = append(errs, fmt.Sprintf("database.driver must be postgres, mysql or sqlite (got %q)", c.Database.Driver))
	}
	if c.Database.DSN == "" && c.Database.Name == "" {
		errs = append(errs, "database.name or database.dsn is required")
	}
	if c.Database.Port < 0 || c.Database.Port > 65535 {
		errs = append(errs, "database.port must be between 0 and 65535")
	}
	if c.Database.MaxOpenConns < 1 {
		errs = append(errs, "database.max_open_conns must be >= 1")
	}
	if c.Database.MaxIdleConns < 0 {
		errs = append(errs, "database.max_idle_conns must be >= 0")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = append(errs, "database.max_idle_conns should not exceed max_open_conns")
	}

	if c.Generate.BulkCount < 0 {
		errs = append(errs, "generate.bulk_count must be non-negative")
	}
	if c.Generate.SpecialCount < 0 {
		errs = append(errs, "generate.special_count must be non-negative")
	}
	if c.Generate.MinAgeYears < 0 {
		errs = append(errs, "generate.min_age_years must be non-negative")
	}
	if c.Generate.MaxAgeYears < c.Generate.MinAgeYears {
		errs = append(errs, "generate.max_age_years must be >= min_age_years")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level must be debug, info, warn or error (got %q)", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be text or json (got %q)", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors:\n  - %s", joinErrors(errs))
	}

	return nil
}

// MinAgeDays returns the lower age bound as whole days
func (g GenerateConfig) MinAgeDays() int {
	return g.MinAgeYears * 365
}

// MaxAgeDays returns the upper age bound as whole days
func (g GenerateConfig) MaxAgeDays() int {
	return g.MaxAgeYears * 365
}

// ConnectionString returns the driver-specific DSN. An explicit DSN wins.
func (d DatabaseConfig) ConnectionString() string {
	if d.DSN != "" {
		return d.DSN
	}

	switch d.Driver {
	case "mysql":
		mc := mysql.NewConfig()
		mc.User = d.User
		mc.Passwd = d.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(d.Host, strconv.Itoa(d.portOr(MySQLPort)))
		mc.DBName = d.Name
		return mc.FormatDSN()
	case "sqlite":
		return d.Name
	default:
		u := url.URL{
			Scheme: "postgres",
			Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.portOr(PostgresPort))),
			Path:   "/" + d.Name,
		}
		if d.User != "" {
			if d.Password != "" {
				u.User = url.UserPassword(d.User, d.Password)
			} else {
				u.User = url.User(d.User)
			}
		}
		if d.SSLMode != "" {
			u.RawQuery = url.Values{"sslmode": {d.SSLMode}}.Encode()
		}
		return u.String()
	}
}

// MaskedConnectionString returns the DSN with any password replaced
func (d DatabaseConfig) MaskedConnectionString() string {
	masked := d
	if masked.Password != "" {
		masked.Password = "***"
	}
	if d.DSN != "" {
		return maskDSN(d.DSN)
	}
	return masked.ConnectionString()
}

func (d DatabaseConfig) portOr(def int) int {
	if d.Port > 0 {
		return d.Port
	}
	return def
}

// maskDSN masks a password between ':' and '@' in user:pass@host style DSNs
func maskDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	if at < 0 {
		return dsn
	}
	head := dsn[:at]
	start := strings.LastIndex(head, "//") + 2
	if start < 2 {
		start = 0
	}
	if colon := strings.Index(head[start:], ":"); colon >= 0 {
		return head[:start+colon+1] + "***" + dsn[at:]
	}
	return dsn
}

// joinErrors joins error messages with newline and bullet points
func joinErrors(errs []string) string {
	result := errs[0]
	for i := 1; i < len(errs); i++ {
		result += "\n  - " + errs[i]
	}
	return result
}
