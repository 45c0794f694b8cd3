package regularization

import (
	"context"
	"time"
)

type RegularizationRepository interface {
	// Create inserts a pending request. A second pending request for the same
	// (employee, date) fails with ErrDuplicatePendingRequest.
	Create(ctx context.Context, req Request) (Request, error)

	GetByID(ctx context.Context, id string) (Request, error)

	// GetForUpdate is GetByID holding a row lock for the ambient transaction.
	GetForUpdate(ctx context.Context, id string) (Request, error)

	List(ctx context.Context, filter RegularizationFilter) ([]Request, int64, error)

	// Resolve moves a pending request to approved or rejected. Anything not pending
	// fails with ErrInvalidStateTransition.
	Resolve(ctx context.Context, id string, status Status, reviewerID string, comment *string, reviewedAt time.Time, attendanceID *string) (Request, error)
}
