package regularization

import "time"

type Type string

const (
	TypeMissingCheckIn  Type = "missing_checkin"
	TypeMissingCheckOut Type = "missing_checkout"
	TypeWrongTiming     Type = "wrong_timing"
	TypeSystemError     Type = "system_error"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Request proposes corrected stamps for one employee-day. AttendanceID is set when an
// approval wrote the record.
type Request struct {
	ID               string
	EmployeeID       string
	Date             time.Time
	Type             Type
	Reason           string
	ProposedCheckIn  *time.Time
	ProposedCheckOut *time.Time
	Status           Status
	ReviewedBy       *string
	ReviewComment    *string
	ReviewedAt       *time.Time
	AttendanceID     *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
