package cmd

import (
	"github.com/spf13/cobra"

	"github.com/willfong/employeedb/internal/config"
	"github.com/willfong/employeedb/internal/database"
	"github.com/willfong/employeedb/internal/models"
)

var (
	findGender string
	findPrefix string
)

// findFilteredCmd represents the find-filtered command
var findFilteredCmd = &cobra.Command{
	Use:     "find-filtered",
	Aliases: []string{"5"},
	Short:   "Run the filtered query and report its time",
	Long: `Select employees of one gender whose name starts with a prefix
(case-sensitive) and log how long the query took. This is the query the
optimize indexes are meant to speed up.

Example:
  employeedb find-filtered
  employeedb find-filtered --gender Female --prefix Fr`,
	Args: cobra.NoArgs,
	RunE: runFindFiltered,
}

func init() {
	rootCmd.AddCommand(findFilteredCmd)

	findFilteredCmd.Flags().StringVar(&findGender, "gender", config.FindGender, "gender to match (Male or Female)")
	findFilteredCmd.Flags().StringVar(&findPrefix, "prefix", config.FindPrefix, "case-sensitive name prefix")
}

func runFindFiltered(cmd *cobra.Command, args []string) error {
	gender, err := models.ParseGender(findGender)
	if err != nil {
		logger.Warn("invalid gender", "err", err)
		return nil
	}

	return withStore(cmd.Context(), func(store *database.Store) error {
		result, err := store.Find(cmd.Context(), gender, findPrefix)
		if err != nil {
			logger.Error("filtered query failed", "err", err)
			return err
		}
		logger.Info("Query Time", "seconds", result.Elapsed.Seconds(),
			"rows", len(result.Employees), "gender", gender, "prefix", findPrefix)
		return nil
	})
}
