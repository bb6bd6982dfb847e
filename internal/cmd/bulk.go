package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/willfong/employeedb/internal/config"
	"github.com/willfong/employeedb/internal/data"
	"github.com/willfong/employeedb/internal/database"
	"github.com/willfong/employeedb/internal/generator"
	"github.com/willfong/employeedb/internal/loader"
	"github.com/willfong/employeedb/internal/models"
	"github.com/willfong/employeedb/internal/ui"
	"github.com/willfong/employeedb/internal/utils"
)

// bulkLoadCmd represents the bulk-load command
var bulkLoadCmd = &cobra.Command{
	Use:     "bulk-load",
	Aliases: []string{"4"},
	Short:   "Generate and bulk-load synthetic employees",
	Long: `Generate a large general population plus a small population of
"F" surnames with gender Male, and load each with one bulk copy.

Each population is its own transaction. If the first load fails it is
rolled back and logged, and the second still runs.

Counts, seed and the age band can also be set in the config file under
generate.*.

Example:
  employeedb bulk-load
  employeedb bulk-load --count 100000 --special 50
  employeedb bulk-load --seed 42   # Reproducible`,
	Args: cobra.NoArgs,
	RunE: runBulkLoad,
}

func init() {
	rootCmd.AddCommand(bulkLoadCmd)

	flags := bulkLoadCmd.Flags()
	flags.Int("count", config.BulkCount, "number of general employees to generate")
	flags.Int("special", config.SpecialCount, "number of special (F surname, Male) employees")
	flags.Int64("seed", 0, "random seed for reproducibility (0 = random)")

	for key, flag := range map[string]string{
		"generate.bulk_count":    "count",
		"generate.special_count": "special",
		"generate.seed":          "seed",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}
}

// population is one generated batch and the label it is reported under
type population struct {
	label     string
	employees []models.Employee
}

func runBulkLoad(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	gc := cfg.Generate

	vocab, err := data.Load()
	if err != nil {
		logger.Error("failed to load name vocabulary", "err", err)
		return nil
	}

	return withStore(ctx, func(store *database.Store) error {
		rng := utils.NewRandom(gc.Seed)
		logger.Debug("generator seeded", "seed", rng.Seed())

		out.Println(out.Header("Bulk Load"))
		out.Println(out.KeyValue("Driver", cfg.Database.Driver))
		out.Println(out.KeyValue("General", fmt.Sprintf("%d", gc.BulkCount)))
		out.Println(out.KeyValue("Special", fmt.Sprintf("%d", gc.SpecialCount)))
		out.Println(out.KeyValue("Ages", fmt.Sprintf("%d-%d years", gc.MinAgeYears, gc.MaxAgeYears)))
		out.Println("")

		bar := out.NewProgressBar("Generating", int64(gc.BulkCount))
		gen := generator.NewEmployeeGenerator(rng, generator.EmployeeGeneratorConfig{
			MinAgeDays: gc.MinAgeDays(),
			MaxAgeDays: gc.MaxAgeDays(),
			OnProgress: bar.Report,
		})

		general := gen.GenerateBulk(gc.BulkCount,
			vocab.General.LastNames, vocab.General.FirstNames, vocab.General.Genders,
			gc.MinAgeDays(), gc.MaxAgeDays())
		bar.Complete()

		special := gen.GenerateSpecial(gc.SpecialCount, vocab.Special.LastNames, vocab.Special.FirstNames)

		l := loader.New(store, logger)
		start := time.Now()
		var added int64
		status := "Success"

		for _, p := range []population{
			{label: "general", employees: general},
			{label: "special", employees: special},
		} {
			n, err := loadPopulation(ctx, l, out, p)
			if database.IsFatal(err) {
				return err
			}
			if err != nil {
				status = "Partially failed"
				continue
			}
			added += n
		}

		out.Println(out.SummaryBox("Bulk Load Complete", []ui.KV{
			{Key: "Added", Value: fmt.Sprintf("%d", added)},
			{Key: "Duration", Value: time.Since(start).Round(time.Millisecond).String()},
			{Key: "Status", Value: status},
		}))
		return nil
	})
}

// loadPopulation copies one population and logs the outcome. A failed
// load is already rolled back when this returns.
func loadPopulation(ctx context.Context, l *loader.Loader, u *ui.UI, p population) (int64, error) {
	spin := u.NewSpinner(fmt.Sprintf("Copying %d %s employees", len(p.employees), p.label))
	spin.Start()

	n, err := l.LoadBulk(ctx, p.employees)
	if err != nil {
		spin.Error("rolled back")
		logger.Error("Error during bulk insert", "population", p.label, "err", err)
		return 0, err
	}

	spin.Success("done")
	logger.Info(fmt.Sprintf("%d employees added successfully.", n), "population", p.label)
	return n, nil
}
