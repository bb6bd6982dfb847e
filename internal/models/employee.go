package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the text form of a birth date in the transfer stream and in SQL.
const DateLayout = "2006-01-02"

// Gender is the employee's recorded gender
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Genders lists every accepted gender value
var Genders = []Gender{GenderMale, GenderFemale}

// ErrInvalidEmployee is returned when interactive input cannot form an Employee
var ErrInvalidEmployee = errors.New("invalid employee")

// ParseGender returns the Gender for s. Matching is exact.
func ParseGender(s string) (Gender, error) {
	for _, g := range Genders {
		if string(g) == s {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: unknown gender %q (want Male or Female)", ErrInvalidEmployee, s)
}

// ParseDate parses a YYYY-MM-DD birth date into a civil date at midnight UTC
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: birth date %q: %v", ErrInvalidEmployee, s, err)
	}
	return t, nil
}

// Day truncates t to its calendar day at midnight UTC, keeping t's own
// year, month and day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Employee represents one row of the employees table.
// Values are not mutated once persisted.
type Employee struct {
	// FullName is "Surname Firstname"
	FullName  string    `db:"full_name" json:"full_name"`
	BirthDate time.Time `db:"birth_date" json:"birth_date"`
	Gender    Gender    `db:"gender" json:"gender"`
}

// NewEmployee builds an Employee from user input, validating every field.
func NewEmployee(fullName, birthDate, gender string) (Employee, error) {
	name := strings.TrimSpace(fullName)
	if name == "" {
		return Employee{}, fmt.Errorf("%w: full name is required", ErrInvalidEmployee)
	}

	dob, err := ParseDate(birthDate)
	if err != nil {
		return Employee{}, err
	}
	if dob.After(time.Now()) {
		return Employee{}, fmt.Errorf("%w: birth date %s is in the future", ErrInvalidEmployee, birthDate)
	}

	g, err := ParseGender(gender)
	if err != nil {
		return Employee{}, err
	}

	return Employee{FullName: name, BirthDate: dob, Gender: g}, nil
}

// BirthDateString returns the birth date in YYYY-MM-DD form
func (e Employee) BirthDateString() string {
	return e.BirthDate.Format(DateLayout)
}

// Age returns the number of whole years between the birth date and now.
// One year is subtracted while now's month/day precedes the birthday.
func (e Employee) Age(now time.Time) int {
	ny, nm, nd := now.Date()
	by, bm, bd := e.BirthDate.Date()

	age := ny - by
	if nm < bm || (nm == bm && nd < bd) {
		age--
	}
	return age
}

// ListedEmployee is a row returned by a read-all query.
// Age is computed by the store at query time.
type ListedEmployee struct {
	Employee
	Age int `db:"age" json:"age"`
}
