// Package database provides the store gateway for the employees table.
//
// FILE: queries_employee.go
// PURPOSE: Read queries over the employees table.
//
// KEY FUNCTIONS:
// - ListAll: Distinct employees with store-computed age
// - Find: Gender + name prefix filter, timed
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/willfong/employeedb/internal/models"
)

// FindResult holds the rows of a filtered query and how long it took
type FindResult struct {
	Employees []models.Employee
	Elapsed   time.Duration
}

// ListAll returns the distinct (name, birth date, gender, age) tuples,
// ordered by name, birth date and age.
func (s *Store) ListAll(ctx context.Context) ([]models.ListedEmployee, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT full_name, %s AS dob, gender, %s AS age
		FROM employees
		ORDER BY full_name, dob, age`,
		s.dialect.dateTextExpr(), s.dialect.ageExpr())

	rows, err := s.pool.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := []models.ListedEmployee{}
	for rows.Next() {
		le, err := scanListedEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, le)
	}
	return employees, rows.Err()
}

// Find returns employees of the given gender whose name starts with
// prefix (case-sensitive), ordered by name. No match is not an error.
func (s *Store) Find(ctx context.Context, gender models.Gender, prefix string) (FindResult, error) {
	query := fmt.Sprintf(`
		SELECT full_name, %s AS dob, gender
		FROM employees
		WHERE gender = %s AND %s
		ORDER BY full_name`,
		s.dialect.dateTextExpr(),
		s.dialect.placeholder(1),
		s.dialect.prefixMatch("full_name", s.dialect.placeholder(2)))

	start := time.Now()
	rows, err := s.pool.QueryContext(ctx, query, string(gender), s.dialect.prefixPattern(prefix))
	if err != nil {
		return FindResult{}, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	result := FindResult{Employees: []models.Employee{}}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return FindResult{}, err
		}
		result.Employees = append(result.Employees, e)
	}
	if err := rows.Err(); err != nil {
		return FindResult{}, err
	}
	result.Elapsed = time.Since(start)

	s.log.Debug("filtered query", "gender", gender, "prefix", prefix,
		"rows", len(result.Employees), "elapsed", result.Elapsed)
	return result, nil
}
