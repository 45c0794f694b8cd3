package wfh

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// StateConsumed is reported by Request.State once an approved request has admitted a check-in.
// It is never stored in the status column.
const StateConsumed = "consumed"

// Request is a location bypass for one employee on one date.
type Request struct {
	ID                   string
	EmployeeID           string
	RequestDate          time.Time
	RequestedCheckInTime *string // HH:MM
	Reason               string
	Status               Status
	AttemptedLatitude    *float64
	AttemptedLongitude   *float64
	NearestOfficeID      *string
	NearestOfficeName    *string
	DistanceFromOffice   *float64
	ApprovedBy           *string
	ReviewedBy           *string
	ReviewComment        *string
	ReviewedAt           *time.Time
	ConsumedAt           *time.Time
	ConsumedAttendanceID *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// State is the lifecycle position: pending, approved, rejected or consumed.
func (r Request) State() string {
	if r.Status == StatusApproved && r.ConsumedAt != nil {
		return StateConsumed
	}
	return string(r.Status)
}

// IsBypass reports whether the request can still admit an out-of-range check-in.
func (r Request) IsBypass() bool {
	return r.Status == StatusApproved && r.ConsumedAt == nil
}
