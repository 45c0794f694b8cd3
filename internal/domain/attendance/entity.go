package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half_day"
	StatusLate    Status = "late"
	StatusLeave   Status = "leave"
	StatusHoliday Status = "holiday"
	StatusWeekend Status = "weekend"
)

// Attended reports whether the employee showed up, on time or not.
func (s Status) Attended() bool {
	return s == StatusPresent || s == StatusLate || s == StatusHalfDay
}

type Source string

const (
	SourceManual      Source = "manual"
	SourceDevice      Source = "device"
	SourceRegularized Source = "regularized"
	// SourceSynthetic marks a materialized day that has no stored record.
	SourceSynthetic Source = "synthetic"
)

type Location struct {
	Latitude  float64
	Longitude float64
}

// Record is the stored attendance row, unique per (EmployeeID, Date).
type Record struct {
	ID           string
	EmployeeID   string
	Date         time.Time
	CheckIn      *time.Time
	CheckOut     *time.Time
	Status       Status
	WorkedHours  *float64
	Location     *Location
	Source       Source
	WFHRequestID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DayContext is what the calendar and the leave subsystem say about a day,
// independent of any check-in stamps. Status is empty on an ordinary working day.
type DayContext struct {
	Status      Status
	HolidayName string
	LeaveType   string
	InScope     bool
}

// DailyRecord is one materialized day: the stored record (if any) classified
// against its day context.
type DailyRecord struct {
	Date        time.Time
	EmployeeID  string
	RecordID    *string
	CheckIn     *time.Time
	CheckOut    *time.Time
	Status      Status
	WorkedHours *float64
	Incomplete  bool
	Source      Source
	HolidayName string
	LeaveType   string
}

type ClassifyInput struct {
	Day      time.Time
	CheckIn  *time.Time
	CheckOut *time.Time
	Context  DayContext
	// Now is the reference clock; it decides whether Day is already closed.
	Now time.Time
}

type Classification struct {
	Status      Status
	WorkedHours *float64
	Incomplete  bool
}
