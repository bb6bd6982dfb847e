package cmd

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/willfong/employeedb/internal/database"
	"github.com/willfong/employeedb/internal/models"
)

// listAllCmd represents the list-all command
var listAllCmd = &cobra.Command{
	Use:     "list-all",
	Aliases: []string{"3"},
	Short:   "Print every distinct employee with their age",
	Long: `Print every distinct (name, birth date, gender) row with the age
computed by the database, ordered by name, birth date and age.

Rows go to stdout, one per line:
  Name: Smith John, Date of Birth: 1990-04-12, Gender: Male, Age: 34

Example:
  employeedb list-all
  employeedb 3 > employees.txt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(store *database.Store) error {
			employees, err := store.ListAll(cmd.Context())
			if err != nil {
				logger.Error("failed to list employees", "err", err)
				return err
			}
			if err := printEmployees(cmd.OutOrStdout(), employees); err != nil {
				logger.Error("failed to write listing", "err", err)
				return err
			}
			logger.Debug("listed employees", "rows", len(employees))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(listAllCmd)
}

func printEmployees(w io.Writer, employees []models.ListedEmployee) error {
	bw := bufio.NewWriter(w)
	for _, e := range employees {
		fmt.Fprintf(bw, "Name: %s, Date of Birth: %s, Gender: %s, Age: %d\n",
			e.FullName, e.BirthDateString(), e.Gender, e.Age)
	}
	return bw.Flush()
}
