package leave

import (
	"context"
	"time"
)

type GrantRepository interface {
	// ListApproved returns approved grants for employeeID that overlap [start, end].
	ListApproved(ctx context.Context, employeeID string, start, end time.Time) ([]Grant, error)
}
