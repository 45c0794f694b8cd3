package employee

import "context"

// EmployeeRepository is the read-only employee directory.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	ListByDepartment(ctx context.Context, department string) ([]Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
}
