package cmd

import (
	"github.com/spf13/cobra"

	"github.com/willfong/employeedb/internal/database"
	"github.com/willfong/employeedb/internal/loader"
	"github.com/willfong/employeedb/internal/models"
)

// insertOneCmd represents the insert-one command
var insertOneCmd = &cobra.Command{
	Use:     "insert-one <full_name> <birth_date> <gender>",
	Aliases: []string{"2"},
	Short:   "Insert a single employee",
	Long: `Insert a single employee and commit immediately.

The birth date is YYYY-MM-DD and gender is Male or Female. Missing or
invalid arguments are reported as a warning and nothing is written.
Running the command twice stores two rows.

Example:
  employeedb insert-one "Smith John" 1990-04-12 Male
  employeedb 2 "Ford Anna" 1985-11-02 Female`,
	Args: cobra.ArbitraryArgs,
	RunE: runInsertOne,
}

func init() {
	rootCmd.AddCommand(insertOneCmd)
}

func runInsertOne(cmd *cobra.Command, args []string) error {
	if len(args) < 3 {
		logger.Warn("Not enough arguments provided for adding an employee.",
			"want", "<full_name> <birth_date> <gender>", "got", len(args))
		return nil
	}

	employee, err := models.NewEmployee(args[0], args[1], args[2])
	if err != nil {
		logger.Warn("invalid employee", "err", err)
		return nil
	}

	return withStore(cmd.Context(), func(store *database.Store) error {
		l := loader.New(store, logger)
		if err := l.InsertOne(cmd.Context(), employee); err != nil {
			logger.Error("failed to add employee", "name", employee.FullName, "err", err)
			return err
		}
		logger.Info("Employee added successfully.", "name", employee.FullName)
		return nil
	})
}
