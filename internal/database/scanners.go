// Package database provides the store gateway for the employees table.
//
// FILE: scanners.go
// PURPOSE: Row scanning helper functions for converting database rows to model structs.
//
// KEY FUNCTIONS:
// - scanEmployee: Scans a (full_name, birth_date, gender) row
// - scanListedEmployee: Scans a (full_name, birth_date, gender, age) row
package database

import (
	"database/sql"
	"fmt"

	"github.com/willfong/employeedb/internal/models"
)

func scanEmployee(rows *sql.Rows) (models.Employee, error) {
	var (
		e      models.Employee
		dob    sql.NullString
		gender string
	)

	if err := rows.Scan(&e.FullName, &dob, &gender); err != nil {
		return e, fmt.Errorf("failed to scan employee: %w", err)
	}
	return finishEmployee(e, dob, gender)
}

func scanListedEmployee(rows *sql.Rows) (models.ListedEmployee, error) {
	var (
		le     models.ListedEmployee
		dob    sql.NullString
		gender string
	)

	if err := rows.Scan(&le.FullName, &dob, &gender, &le.Age); err != nil {
		return le, fmt.Errorf("failed to scan employee: %w", err)
	}

	e, err := finishEmployee(le.Employee, dob, gender)
	le.Employee = e
	return le, err
}

// finishEmployee parses the text birth date. Gender is copied as stored;
// rows written outside this tool may hold other values.
func finishEmployee(e models.Employee, dob sql.NullString, gender string) (models.Employee, error) {
	if !dob.Valid {
		return e, fmt.Errorf("employee %q has no valid birth date", e.FullName)
	}
	d, err := models.ParseDate(dob.String)
	if err != nil {
		return e, err
	}
	e.BirthDate = d
	e.Gender = models.Gender(gender)
	return e, nil
}
