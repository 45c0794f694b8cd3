package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `id, user_id, full_name, department, joining_date, employment_status`

type employeeRepository struct {
	db  *database.DB
	loc *time.Location
}

func (r *employeeRepository) scan(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	if err := row.Scan(&e.ID, &e.UserID, &e.FullName, &e.Department, &e.JoiningDate, &e.EmploymentStatus); err != nil {
		return employee.Employee{}, err
	}
	e.JoiningDate = calendar.Reanchor(e.JoiningDate, r.loc)
	return e, nil
}

func (r *employeeRepository) list(ctx context.Context, query string, args ...interface{}) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []employee.Employee{}
	for rows.Next() {
		e, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := r.scan(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}
	return e, nil
}

// ListByDepartment implements employee.EmployeeRepository.
func (r *employeeRepository) ListByDepartment(ctx context.Context, department string) ([]employee.Employee, error) {
	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE department = $1 AND employment_status = 'active'
		ORDER BY full_name ASC`

	employees, err := r.list(ctx, query, department)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by department: %w", err)
	}
	return employees, nil
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE employment_status = 'active'
		ORDER BY full_name ASC`

	employees, err := r.list(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	return employees, nil
}

func NewEmployeeRepository(db *database.DB, loc *time.Location) employee.EmployeeRepository {
	return &employeeRepository{db: db, loc: loc}
}
