package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
)

type employeeRepository struct {
	s *Store
}

func NewEmployeeRepository(s *Store) employee.EmployeeRepository {
	return &employeeRepository{s: s}
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepository) list(match func(employee.Employee) bool) []employee.Employee {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []employee.Employee
	for _, e := range r.s.employees {
		if match(e) {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b employee.Employee) int {
		return strings.Compare(a.FullName, b.FullName)
	})
	return out
}

// ListByDepartment implements employee.EmployeeRepository.
func (r *employeeRepository) ListByDepartment(ctx context.Context, department string) ([]employee.Employee, error) {
	return r.list(func(e employee.Employee) bool {
		return e.Department == department && e.EmploymentStatus == employee.EmploymentStatusActive
	}), nil
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return r.list(func(e employee.Employee) bool {
		return e.EmploymentStatus == employee.EmploymentStatusActive
	}), nil
}

type officeRepository struct {
	s *Store
}

func NewOfficeRepository(s *Store) office.OfficeRepository {
	return &officeRepository{s: s}
}

// List implements office.OfficeRepository.
func (r *officeRepository) List(ctx context.Context) ([]office.Office, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return slices.Clone(r.s.offices), nil
}

type holidayRepository struct {
	s *Store
}

func NewHolidayRepository(s *Store) calendar.HolidayRepository {
	return &holidayRepository{s: s}
}

// ListBetween implements calendar.HolidayRepository.
func (r *holidayRepository) ListBetween(ctx context.Context, start, end time.Time) ([]calendar.Holiday, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	from, to := calendar.Key(start), calendar.Key(end)
	var out []calendar.Holiday
	for _, h := range r.s.holidays {
		if k := calendar.Key(h.Date); k >= from && k <= to {
			out = append(out, h)
		}
	}
	slices.SortStableFunc(out, func(a, b calendar.Holiday) int {
		return a.Date.Compare(b.Date)
	})
	return out, nil
}

type grantRepository struct {
	s *Store
}

func NewGrantRepository(s *Store) leave.GrantRepository {
	return &grantRepository{s: s}
}

// ListApproved implements leave.GrantRepository.
func (r *grantRepository) ListApproved(ctx context.Context, employeeID string, start, end time.Time) ([]leave.Grant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	from, to := calendar.Key(start), calendar.Key(end)
	var out []leave.Grant
	for _, g := range r.s.grants {
		if g.EmployeeID != employeeID || g.Status != leave.GrantStatusApproved {
			continue
		}
		if calendar.Key(g.StartDate) <= to && calendar.Key(g.EndDate) >= from {
			out = append(out, g)
		}
	}
	return out, nil
}
