package wfh

import (
	"context"
	"time"
)

type WFHRequestRepository interface {
	// Create inserts a pending request. A second active request for the same
	// (employee, date) fails with ErrDuplicateActiveRequest.
	Create(ctx context.Context, req Request) (Request, error)

	GetByID(ctx context.Context, id string) (Request, error)

	List(ctx context.Context, filter WFHFilter) ([]Request, int64, error)

	// Review moves a pending request to status. Anything not pending fails with
	// ErrInvalidStateTransition and is left untouched.
	Review(ctx context.Context, id string, status Status, reviewerID string, comment *string, reviewedAt time.Time) (Request, error)

	// Consume marks an approved, unconsumed request as used by attendanceID.
	Consume(ctx context.Context, id string, attendanceID string, consumedAt time.Time) (Request, error)

	// FindBypass returns the approved, unconsumed request for (employee, date), or nil, nil.
	FindBypass(ctx context.Context, employeeID string, date time.Time) (*Request, error)
}
