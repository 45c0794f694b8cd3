package leave

import "time"

type GrantStatus string

const (
	GrantStatusPending  GrantStatus = "pending"
	GrantStatusApproved GrantStatus = "approved"
	GrantStatusRejected GrantStatus = "rejected"
)

// Grant is a leave decision owned by the leave subsystem. StartDate and EndDate are
// inclusive calendar days.
type Grant struct {
	ID         string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Type       string
	Status     GrantStatus
}

// Covers reports whether day falls inside the grant. All three values must share a location.
func (g Grant) Covers(day time.Time) bool {
	return !day.Before(g.StartDate) && !day.After(g.EndDate)
}
