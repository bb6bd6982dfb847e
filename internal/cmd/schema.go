package cmd

import (
	"github.com/spf13/cobra"

	"github.com/willfong/employeedb/internal/database"
)

// createSchemaCmd represents the create-schema command
var createSchemaCmd = &cobra.Command{
	Use:     "create-schema",
	Aliases: []string{"1"},
	Short:   "Create the employees table if it does not exist",
	Long: `Create the employees table if it does not exist.

Running it against an existing table is a no-op. Indexes are not created
here so that bulk loads into a fresh table stay fast; run optimize after
loading.

Example:
  employeedb create-schema
  employeedb 1`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(store *database.Store) error {
			if err := store.CreateSchema(cmd.Context()); err != nil {
				logger.Error("failed to create table", "err", err)
				return err
			}
			logger.Info("Table created successfully.")
			return nil
		})
	},
}

// optimizeCmd represents the optimize command
var optimizeCmd = &cobra.Command{
	Use:     "optimize",
	Aliases: []string{"6"},
	Short:   "Create the indexes used by find-filtered",
	Long: `Create indexes on gender and full_name.

Existing indexes are left in place, so the command can be run repeatedly.

Example:
  employeedb optimize
  employeedb 6`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(store *database.Store) error {
			if err := store.CreateIndexes(cmd.Context()); err != nil {
				logger.Error("failed to optimize database", "err", err)
				return err
			}
			logger.Info("Database optimized.")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(createSchemaCmd)
	rootCmd.AddCommand(optimizeCmd)
}
