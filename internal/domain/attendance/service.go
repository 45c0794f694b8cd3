package attendance

import (
	"context"
	"iter"
	"time"
)

// Materializer builds the gap-free daily view of an employee's attendance.
type Materializer interface {
	// Materialize yields one DailyRecord per in-scope day of [start, end] in date order.
	// The sequence can be ranged more than once and never writes.
	Materialize(ctx context.Context, employeeID string, start, end time.Time) (iter.Seq[DailyRecord], error)

	// DayContext resolves the calendar and leave status of a single day.
	DayContext(ctx context.Context, employeeID string, day time.Time) (DayContext, error)
}

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn records the first check-in of the employee's local day, gated by the geofence
	// unless an approved WFH request covers the day.
	CheckIn(ctx context.Context, req CheckInRequest) (Record, error)

	// CheckOut closes the open session of the local day (or the previous day).
	CheckOut(ctx context.Context, req CheckOutRequest) (Record, error)

	// ClassifyDay materializes a single day.
	ClassifyDay(ctx context.Context, req ClassifyDayRequest) (DailyRecord, error)

	// ListDaily materializes a date range.
	ListDaily(ctx context.Context, req DailyListRequest) ([]DailyRecord, error)

	GetAttendance(ctx context.Context, id string) (Record, error)

	ListMissingCheckouts(ctx context.Context, req MissingCheckoutsRequest) ([]Record, error)
}
