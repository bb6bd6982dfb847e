package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/willfong/employeedb/internal/config"
	"github.com/willfong/employeedb/internal/database"
	"github.com/willfong/employeedb/internal/logging"
	"github.com/willfong/employeedb/internal/ui"
)

var (
	cfgFile string
	noColor bool

	v = viper.New()

	// Set up by PersistentPreRunE for every command
	cfg    *config.Config
	logger *slog.Logger
	out    *ui.UI
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "employeedb",
	Short: "Manage and bulk-load a synthetic employees table",
	Long: `A command-line utility for a single employees table.

It creates the schema, inserts one record or a large synthetic population
through the store's bulk copy path, lists and filters records, adds
indexes and purges all rows. PostgreSQL, MySQL/MariaDB and SQLite are
supported.

The numeric modes of the legacy script are available as aliases:
  1 create-schema   2 insert-one   3 list-all   4 bulk-load
  5 find-filtered   6 optimize     flush purge

Configuration is read from flags, EMPLOYEEDB_* environment variables,
DB_NAME/DB_USER/DB_PASS/DB_HOST, and an optional config file.

Example usage:
  employeedb create-schema
  employeedb insert-one "Smith John" 1990-04-12 Male
  employeedb bulk-load --count 100000 --seed 42
  employeedb find-filtered --gender Male --prefix F
  employeedb --driver sqlite --db-name ./employees.db list-all`,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and runs it.
// The returned error is non-nil only for fatal failures.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && logger == nil {
		// Failed before the logger existed: bad flags, config or command
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	flags.BoolP("verbose", "v", false, "enable verbose output")
	flags.BoolVar(&noColor, "no-color", false, "disable colors and animations")

	flags.String("driver", config.DBDriver, "database driver: postgres, mysql or sqlite")
	flags.String("dsn", "", "full connection string (overrides the individual fields)")
	flags.String("db-name", config.DBName, "database name (file path for sqlite)")
	flags.String("db-user", "", "database user")
	flags.String("db-password", "", "database password")
	flags.String("db-host", config.DBHost, "database host")
	flags.Int("db-port", 0, "database port (0 = driver default)")
	flags.String("log-level", config.LogLevel, "log level: debug, info, warn or error")
	flags.String("log-format", config.LogFormat, "log format: text or json")

	bindFlag("verbose", "verbose")
	bindFlag("database.driver", "driver")
	bindFlag("database.dsn", "dsn")
	bindFlag("database.name", "db-name")
	bindFlag("database.user", "db-user")
	bindFlag("database.password", "db-password")
	bindFlag("database.host", "db-host")
	bindFlag("database.port", "db-port")
	bindFlag("log.level", "log-level")
	bindFlag("log.format", "log-format")

	// Failures are logged by the commands themselves
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func bindFlag(key, flag string) {
	if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag, err))
	}
}

// setup loads configuration and builds the logger and terminal UI
func setup(cmd *cobra.Command, args []string) error {
	if err := readConfig(v); err != nil {
		return err
	}

	loaded, err := config.Load(v)
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	cfg = loaded
	logger = logging.New(cfg.Log, os.Stderr)
	out = ui.New()
	if noColor {
		out.SetNoColor(true)
	}
	return nil
}

// readConfig wires the environment and the optional config file into v
func readConfig(v *viper.Viper) error {
	v.SetEnvPrefix("EMPLOYEEDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Variable names of the legacy deployment
	envAliases := map[string]string{
		"database.name":     "DB_NAME",
		"database.user":     "DB_USER",
		"database.password": "DB_PASS",
		"database.host":     "DB_HOST",
	}
	for key, env := range envAliases {
		envKey := "EMPLOYEEDB_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envKey, env); err != nil {
			return fmt.Errorf("binding %s: %w", env, err)
		}
	}

	// Unmarshal only sees keys viper knows about
	setDefaults(v, config.DefaultConfig())

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("employeedb")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper, c *config.Config) {
	v.SetDefault("database.driver", c.Database.Driver)
	v.SetDefault("database.dsn", c.Database.DSN)
	v.SetDefault("database.name", c.Database.Name)
	v.SetDefault("database.user", c.Database.User)
	v.SetDefault("database.password", c.Database.Password)
	v.SetDefault("database.host", c.Database.Host)
	v.SetDefault("database.port", c.Database.Port)
	v.SetDefault("database.sslmode", c.Database.SSLMode)
	v.SetDefault("database.max_open_conns", c.Database.MaxOpenConns)
	v.SetDefault("database.max_idle_conns", c.Database.MaxIdleConns)
	v.SetDefault("database.conn_max_lifetime", c.Database.ConnMaxLifetime)
	v.SetDefault("database.conn_max_idle_time", c.Database.ConnMaxIdleTime)
	v.SetDefault("database.connect_timeout", c.Database.ConnectTimeout)

	v.SetDefault("generate.seed", c.Generate.Seed)
	v.SetDefault("generate.bulk_count", c.Generate.BulkCount)
	v.SetDefault("generate.special_count", c.Generate.SpecialCount)
	v.SetDefault("generate.min_age_years", c.Generate.MinAgeYears)
	v.SetDefault("generate.max_age_years", c.Generate.MaxAgeYears)

	// log.level has no default here so that --verbose can tell whether
	// it was set explicitly
	v.SetDefault("log.format", c.Log.Format)
	v.SetDefault("verbose", c.Verbose)
}

// withStore opens the store, runs fn and closes the store. Only a
// connection failure is returned; other failures were already logged by
// fn and the unit of work rolled back.
func withStore(ctx context.Context, fn func(store *database.Store) error) error {
	store, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("Error connecting to DB", "driver", cfg.Database.Driver,
			"dsn", cfg.Database.MaskedConnectionString(), "err", err)
		return err
	}
	defer store.Close()

	err = fn(store)

	stats := store.Stats()
	logger.Debug("connection stats",
		"queries", stats.TotalQueries,
		"failed", stats.FailedQueries,
		"avg_latency", stats.AvgLatency)

	if database.IsFatal(err) {
		return err
	}
	return nil
}
