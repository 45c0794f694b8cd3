package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// Counts is the streaming tally over materialized days. PresentDays counts every
// attended day; LateCount and HalfDayCount break it down.
type Counts struct {
	InScopeDays      int
	TotalWorkingDays int
	PresentDays      int
	AbsentDays       int
	HalfDayCount     int
	LateCount        int
	LeaveCount       int
	WeekendCount     int
	HolidayCount     int
	IncompleteCount  int
	TotalWorkedHours decimal.Decimal
}

// Add folds other into c.
func (c *Counts) Add(other Counts) {
	c.InScopeDays += other.InScopeDays
	c.TotalWorkingDays += other.TotalWorkingDays
	c.PresentDays += other.PresentDays
	c.AbsentDays += other.AbsentDays
	c.HalfDayCount += other.HalfDayCount
	c.LateCount += other.LateCount
	c.LeaveCount += other.LeaveCount
	c.WeekendCount += other.WeekendCount
	c.HolidayCount += other.HolidayCount
	c.IncompleteCount += other.IncompleteCount
	c.TotalWorkedHours = c.TotalWorkedHours.Add(other.TotalWorkedHours)
}

// AttendancePercentage is PresentDays over TotalWorkingDays.
func (c Counts) AttendancePercentage() float64 {
	return Percentage(c.PresentDays, c.TotalWorkingDays)
}

// Percentage returns part/whole*100 rounded to two places and clamped to [0, 100].
// A non-positive whole yields 0.
func Percentage(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(whole))).
		Round(2).
		InexactFloat64()
	return min(max(pct, 0), 100)
}

type EmployeeSummary struct {
	EmployeeID   string
	EmployeeName string
	Counts       Counts
}

type Summary struct {
	EmployeeID *string
	Department *string
	StartDate  time.Time
	EndDate    time.Time
	Counts     Counts
	// Employees is filled for department scope.
	Employees []EmployeeSummary
}

type Overview struct {
	Date            time.Time
	TotalEmployees  int
	ExpectedCount   int
	AttendedCount   int
	OnTimeCount     int
	LateCount       int
	HalfDayCount    int
	AbsentCount     int
	LeaveCount      int
	OffDayCount     int
	IncompleteCount int
	AttendanceRate  float64
	PunctualityRate float64
}
