package report

import (
	"iter"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/shopspring/decimal"
)

// Aggregate folds materialized days into Counts in a single pass without buffering them.
func Aggregate(days iter.Seq[attendance.DailyRecord]) report.Counts {
	c := report.Counts{TotalWorkedHours: decimal.Zero}
	for d := range days {
		c.InScopeDays++
		switch d.Status {
		case attendance.StatusWeekend:
			c.WeekendCount++
		case attendance.StatusHoliday:
			c.HolidayCount++
		case attendance.StatusLeave:
			c.LeaveCount++
		case attendance.StatusAbsent:
			c.AbsentDays++
		case attendance.StatusPresent:
			c.PresentDays++
		case attendance.StatusLate:
			c.PresentDays++
			c.LateCount++
		case attendance.StatusHalfDay:
			c.PresentDays++
			c.HalfDayCount++
		}
		if d.Incomplete {
			c.IncompleteCount++
		}
		if d.WorkedHours != nil {
			c.TotalWorkedHours = c.TotalWorkedHours.Add(decimal.NewFromFloat(*d.WorkedHours))
		}
	}
	c.TotalWorkingDays = c.InScopeDays - c.WeekendCount - c.HolidayCount
	return c
}
