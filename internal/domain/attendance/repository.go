package attendance

import (
	"context"
	"time"
)

// AttendanceRepository persists attendance records. Every write is keyed by
// (employee_id, date) and only touches the columns its operation owns.
type AttendanceRepository interface {
	GetByID(ctx context.Context, id string) (Record, error)

	// GetByEmployeeAndDate returns nil, nil when the day has no record.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	// GetForUpdate is GetByEmployeeAndDate holding a row lock for the ambient transaction.
	GetForUpdate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	// ListByEmployee returns records dated within [start, end], ordered by date.
	ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]Record, error)

	// ListByDate returns every record for one day.
	ListByDate(ctx context.Context, date time.Time) ([]Record, error)

	// ListMissingCheckouts returns records within [start, end] that have a check-in and no check-out.
	ListMissingCheckouts(ctx context.Context, start, end time.Time) ([]Record, error)

	// GetOpenSession returns the latest record within [from, to] that has a check-in and no check-out,
	// or nil, nil.
	GetOpenSession(ctx context.Context, employeeID string, from, to time.Time) (*Record, error)

	// UpsertCheckIn creates the day's row or fills check_in on an existing one.
	// Fails with ErrDuplicateCheckIn when check_in is already set and with
	// ErrInvalidTimeSequence when a stored check_out is not after the new check_in.
	UpsertCheckIn(ctx context.Context, record Record) (Record, error)

	// CloseSession writes check_out, status and worked hours on a row whose check_out is
	// still empty. Fails with ErrNoOpenCheckIn when no such row exists.
	CloseSession(ctx context.Context, id string, checkOut time.Time, status Status, workedHours *float64) (Record, error)

	// UpdateClassification rewrites status and worked hours only.
	UpdateClassification(ctx context.Context, id string, status Status, workedHours *float64) error

	// UpsertCorrection writes both stamps, status, worked hours and source for (employee, date),
	// creating the row when missing. Used by regularization approval.
	UpsertCorrection(ctx context.Context, record Record) (Record, error)
}
