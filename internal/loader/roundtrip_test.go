package loader

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/willfong/employeedb/internal/config"
	"github.com/willfong/employeedb/internal/data"
	"github.com/willfong/employeedb/internal/database"
	"github.com/willfong/employeedb/internal/generator"
	"github.com/willfong/employeedb/internal/logging"
	"github.com/willfong/employeedb/internal/models"
	"github.com/willfong/employeedb/internal/utils"
)

func openSQLite(t *testing.T) *database.Store {
	t.Helper()

	cfg := config.DefaultConfig().Database
	cfg.Driver = "sqlite"
	cfg.Name = filepath.Join(t.TempDir(), "employees.db")

	store, err := database.Open(context.Background(), cfg, logging.Discard())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.CreateSchema(context.Background()); err != nil {
		t.Fatalf("CreateSchema: %v", err)
	}
	return store
}

func TestRoundTrip_BulkThenListAll(t *testing.T) {
	store := openSQLite(t)
	ctx := context.Background()

	base := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	gen := generator.NewEmployeeGenerator(utils.NewRandom(7), generator.EmployeeGeneratorConfig{BaseDate: base})
	employees := gen.GenerateBulk(5,
		[]string{"Smith", "Jones"}, []string{"John", "Jane"},
		models.Genders, generator.DefaultMinAgeDays, generator.DefaultMaxAgeDays)

	n, err := New(store, logging.Discard()).LoadBulk(ctx, employees)
	if err != nil {
		t.Fatalf("LoadBulk: %v", err)
	}
	if n != 5 {
		t.Errorf("loaded = %d, want 5", n)
	}

	listed, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(listed) == 0 || len(listed) > 5 {
		t.Fatalf("ListAll returned %d rows", len(listed))
	}

	now := time.Now().UTC()
	for i, le := range listed {
		if i > 0 {
			prev := listed[i-1]
			if prev.FullName > le.FullName ||
				(prev.FullName == le.FullName && prev.BirthDate.After(le.BirthDate)) {
				t.Errorf("rows %d and %d out of order: %+v, %+v", i-1, i, prev, le)
			}
		}
		if le.Age != le.Employee.Age(now) {
			t.Errorf("%s age = %d, want %d", le.FullName, le.Age, le.Employee.Age(now))
		}
		if le.Age < 18 {
			t.Errorf("%s is younger than the generated band: %d", le.FullName, le.Age)
		}
	}
}

func TestRoundTrip_DelimiterInName(t *testing.T) {
	store := openSQLite(t)
	ctx := context.Background()

	dob := time.Date(1980, time.February, 29, 0, 0, 0, 0, time.UTC)
	employees := []models.Employee{
		{FullName: "Smith, Jr. John", BirthDate: dob, Gender: models.GenderMale},
		{FullName: `Jane "JJ" Jones`, BirthDate: dob, Gender: models.GenderFemale},
	}

	if _, err := New(store, logging.Discard()).LoadBulk(ctx, employees); err != nil {
		t.Fatalf("LoadBulk: %v", err)
	}

	listed, err := store.ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 2 {
		t.Fatalf("got %d rows", len(listed))
	}
	if listed[0].FullName != `Jane "JJ" Jones` || listed[0].Gender != models.GenderFemale {
		t.Errorf("row 0 = %+v", listed[0])
	}
	if listed[1].FullName != "Smith, Jr. John" || listed[1].Gender != models.GenderMale {
		t.Errorf("row 1 = %+v", listed[1])
	}
	if listed[1].BirthDateString() != "1980-02-29" {
		t.Errorf("birth date = %s", listed[1].BirthDateString())
	}
}

func TestRoundTrip_FailedBatchLeavesNoRows(t *testing.T) {
	store := openSQLite(t)
	ctx := context.Background()
	l := New(store, logging.Discard())

	if err := l.InsertOne(ctx, models.Employee{
		FullName: "Smith John", BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), Gender: models.GenderMale,
	}); err != nil {
		t.Fatalf("InsertOne: %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := l.LoadBulk(cancelled, sampleEmployees()); err == nil {
		t.Fatal("expected LoadBulk to fail on a cancelled context")
	}

	listed, err := store.ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 1 || listed[0].FullName != "Smith John" {
		t.Errorf("failed batch leaked rows: %+v", listed)
	}
}

func TestRoundTrip_SpecialNamesAndFind(t *testing.T) {
	store := openSQLite(t)
	ctx := context.Background()

	vocab, err := data.Load()
	if err != nil {
		t.Fatalf("data.Load: %v", err)
	}

	gen := generator.NewEmployeeGenerator(utils.NewRandom(11), generator.EmployeeGeneratorConfig{})
	l := New(store, logging.Discard())

	bulk := gen.GenerateBulk(200, vocab.General.LastNames, vocab.General.FirstNames,
		vocab.General.Genders, generator.DefaultMinAgeDays, generator.DefaultMaxAgeDays)
	special := gen.GenerateSpecial(25, vocab.Special.LastNames, vocab.Special.FirstNames)

	if _, err := l.LoadBulk(ctx, bulk); err != nil {
		t.Fatalf("LoadBulk(bulk): %v", err)
	}
	if _, err := l.LoadBulk(ctx, special); err != nil {
		t.Fatalf("LoadBulk(special): %v", err)
	}
	if err := store.CreateIndexes(ctx); err != nil {
		t.Fatalf("CreateIndexes: %v", err)
	}

	result, err := store.Find(ctx, models.GenderMale, "F")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(result.Employees) < len(special) {
		t.Errorf("found %d, want at least the %d special rows", len(result.Employees), len(special))
	}
	for _, e := range result.Employees {
		if e.Gender != models.GenderMale || !strings.HasPrefix(e.FullName, "F") {
			t.Errorf("unexpected match %+v", e)
		}
	}
}
