package cmd

import (
	"github.com/spf13/cobra"

	"github.com/willfong/employeedb/internal/database"
)

// purgeCmd represents the purge command
var purgeCmd = &cobra.Command{
	Use:     "purge",
	Aliases: []string{"flush"},
	Short:   "Delete every employee",
	Long: `Delete all rows from the employees table in one transaction.

The table and its indexes are kept. On failure nothing is deleted.

Example:
  employeedb purge
  employeedb flush`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(store *database.Store) error {
			deleted, err := store.Purge(cmd.Context())
			if err != nil {
				logger.Error("Error flushing database", "err", err)
				return err
			}
			logger.Info("Database flushed successfully.", "deleted", deleted)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(purgeCmd)
}
