package loader

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/willfong/employeedb/internal/models"
)

func TestEncodeEmployeesPlain(t *testing.T) {
	employees := []models.Employee{
		{FullName: "Smith John", BirthDate: time.Date(1990, time.May, 1, 0, 0, 0, 0, time.UTC), Gender: models.GenderMale},
		{FullName: "Jones Jane", BirthDate: time.Date(1985, time.December, 31, 0, 0, 0, 0, time.UTC), Gender: models.GenderFemale},
	}

	var buf bytes.Buffer
	n, err := EncodeEmployees(&buf, employees)
	if err != nil {
		t.Fatalf("EncodeEmployees: %v", err)
	}
	if n != 2 {
		t.Errorf("n = %d, want 2", n)
	}

	want := "Smith John,1990-05-01,Male\nJones Jane,1985-12-31,Female\n"
	if buf.String() != want {
		t.Errorf("encoded =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestEncodeEmployeesEscapesDelimiters(t *testing.T) {
	dob := time.Date(1970, time.January, 2, 0, 0, 0, 0, time.UTC)
	employees := []models.Employee{
		{FullName: "Smith, Jr. John", BirthDate: dob, Gender: models.GenderMale},
		{FullName: `O"Brien Pat`, BirthDate: dob, Gender: models.GenderFemale},
		{FullName: "Line\nBreak", BirthDate: dob, Gender: models.GenderMale},
	}

	var buf bytes.Buffer
	if _, err := EncodeEmployees(&buf, employees); err != nil {
		t.Fatalf("EncodeEmployees: %v", err)
	}

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = 3
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("decoding encoded stream: %v", err)
	}
	if len(records) != len(employees) {
		t.Fatalf("got %d records, want %d", len(records), len(employees))
	}

	for i, rec := range records {
		if rec[0] != employees[i].FullName {
			t.Errorf("record %d name = %q, want %q", i, rec[0], employees[i].FullName)
		}
		if rec[1] != "1970-01-02" {
			t.Errorf("record %d date = %q", i, rec[1])
		}
		if rec[2] != string(employees[i].Gender) {
			t.Errorf("record %d gender = %q", i, rec[2])
		}
	}
}

func TestEncodeEmployeesEmpty(t *testing.T) {
	var buf bytes.Buffer
	n, err := EncodeEmployees(&buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 || buf.Len() != 0 {
		t.Errorf("expected empty output, got n=%d len=%d", n, buf.Len())
	}
}
