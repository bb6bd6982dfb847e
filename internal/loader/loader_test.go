package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/willfong/employeedb/internal/database"
	"github.com/willfong/employeedb/internal/logging"
	"github.com/willfong/employeedb/internal/models"
)

// fakeUnit records what the loader does with a unit of work
type fakeUnit struct {
	copyErr   error
	insertErr error
	commitErr error
	// short makes CopyFrom report one row fewer than it was given
	short bool

	table     string
	columns   []string
	records   [][]string
	inserted  []models.Employee
	committed bool
	rolled    bool
}

func (u *fakeUnit) CopyFrom(ctx context.Context, table string, columns []string, r io.Reader) (int64, error) {
	u.table = table
	u.columns = columns
	if u.copyErr != nil {
		return 0, u.copyErr
	}
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return 0, err
	}
	u.records = records
	if u.short {
		return int64(len(records) - 1), nil
	}
	return int64(len(records)), nil
}

func (u *fakeUnit) Insert(ctx context.Context, e models.Employee) error {
	if u.insertErr != nil {
		return u.insertErr
	}
	u.inserted = append(u.inserted, e)
	return nil
}

func (u *fakeUnit) Commit() error {
	if u.commitErr != nil {
		return u.commitErr
	}
	u.committed = true
	return nil
}

func (u *fakeUnit) Rollback() error {
	if !u.committed {
		u.rolled = true
	}
	return nil
}

type fakeSink struct {
	unit     *fakeUnit
	beginErr error
	begins   int
}

func (s *fakeSink) Begin(ctx context.Context) (database.UnitOfWork, error) {
	s.begins++
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	return s.unit, nil
}

func sampleEmployees() []models.Employee {
	dob := time.Date(1990, time.March, 4, 0, 0, 0, 0, time.UTC)
	return []models.Employee{
		{FullName: "Smith John", BirthDate: dob, Gender: models.GenderMale},
		{FullName: "Ford, Alex", BirthDate: dob, Gender: models.GenderMale},
		{FullName: "Brown Jane", BirthDate: dob, Gender: models.GenderFemale},
	}
}

func TestLoadBulkCommitsOnce(t *testing.T) {
	unit := &fakeUnit{}
	sink := &fakeSink{unit: unit}
	l := New(sink, logging.Discard())

	n, err := l.LoadBulk(context.Background(), sampleEmployees())
	if err != nil {
		t.Fatalf("LoadBulk: %v", err)
	}
	if n != 3 {
		t.Errorf("loaded = %d, want 3", n)
	}
	if sink.begins != 1 {
		t.Errorf("begins = %d, want 1", sink.begins)
	}
	if !unit.committed || unit.rolled {
		t.Errorf("committed=%v rolled=%v", unit.committed, unit.rolled)
	}
	if unit.table != database.TableEmployees {
		t.Errorf("table = %q", unit.table)
	}
	if len(unit.columns) != 3 || unit.columns[0] != "full_name" || unit.columns[1] != "birth_date" || unit.columns[2] != "gender" {
		t.Errorf("columns = %v", unit.columns)
	}
	if len(unit.inserted) != 0 {
		t.Error("bulk path must not use single-row inserts")
	}
	if unit.records[1][0] != "Ford, Alex" {
		t.Errorf("embedded comma not preserved: %v", unit.records[1])
	}
}

func TestLoadBulkFailures(t *testing.T) {
	cause := errors.New("disk full")

	tests := []struct {
		name       string
		sink       *fakeSink
		wantRolled bool
	}{
		{"begin fails", &fakeSink{unit: &fakeUnit{}, beginErr: cause}, false},
		{"copy fails", &fakeSink{unit: &fakeUnit{copyErr: cause}}, true},
		{"short copy", &fakeSink{unit: &fakeUnit{short: true}}, true},
		{"commit fails", &fakeSink{unit: &fakeUnit{commitErr: cause}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.sink, logging.Discard())
			n, err := l.LoadBulk(context.Background(), sampleEmployees())

			if !errors.Is(err, database.ErrBulkLoadFailed) {
				t.Fatalf("expected ErrBulkLoadFailed, got %v", err)
			}
			if n != 0 {
				t.Errorf("loaded = %d, want 0", n)
			}
			if tt.sink.unit.committed {
				t.Error("failed batch must not be committed")
			}
			if tt.sink.unit.rolled != tt.wantRolled {
				t.Errorf("rolled = %v, want %v", tt.sink.unit.rolled, tt.wantRolled)
			}
			if tt.name != "short copy" && !errors.Is(err, cause) {
				t.Errorf("expected cause to be wrapped, got %v", err)
			}
			if database.IsFatal(err) {
				t.Error("bulk load failure must not be fatal")
			}
		})
	}
}

func TestLoadBulkEmpty(t *testing.T) {
	sink := &fakeSink{unit: &fakeUnit{}}
	n, err := New(sink, logging.Discard()).LoadBulk(context.Background(), nil)
	if err != nil || n != 0 {
		t.Errorf("LoadBulk(nil) = %d, %v", n, err)
	}
	if sink.begins != 0 {
		t.Error("empty batch should not open a transaction")
	}
}

func TestInsertOne(t *testing.T) {
	unit := &fakeUnit{}
	l := New(&fakeSink{unit: unit}, logging.Discard())
	e := sampleEmployees()[0]

	if err := l.InsertOne(context.Background(), e); err != nil {
		t.Fatalf("InsertOne: %v", err)
	}
	if len(unit.inserted) != 1 || unit.inserted[0] != e {
		t.Errorf("inserted = %v", unit.inserted)
	}
	if !unit.committed {
		t.Error("expected commit")
	}
}

func TestInsertOneFailureRollsBack(t *testing.T) {
	cause := errors.New("constraint")
	unit := &fakeUnit{insertErr: cause}
	l := New(&fakeSink{unit: unit}, logging.Discard())

	err := l.InsertOne(context.Background(), sampleEmployees()[0])
	if !errors.Is(err, database.ErrInsertFailed) || !errors.Is(err, cause) {
		t.Fatalf("expected ErrInsertFailed wrapping cause, got %v", err)
	}
	if !unit.rolled || unit.committed {
		t.Errorf("rolled=%v committed=%v", unit.rolled, unit.committed)
	}
}
