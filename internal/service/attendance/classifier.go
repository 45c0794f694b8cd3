package attendance

import (
	"math"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
)

// Classify derives the single status of a day. It is pure: the same input always yields
// the same Classification.
//
// Order: holiday, weekend and leave from the day context win outright; then no check-in is
// absent; a check-in alone is present but incomplete; otherwise worked hours decide half day,
// the check-in time of day decides late, and everything else is present.
func Classify(in attendance.ClassifyInput, policy attendance.Policy) attendance.Classification {
	var worked *float64
	var raw float64
	if in.CheckIn != nil && in.CheckOut != nil {
		raw = max(in.CheckOut.Sub(*in.CheckIn).Hours(), 0)
		rounded := math.Round(raw*100) / 100
		worked = &rounded
	}

	switch in.Context.Status {
	case attendance.StatusHoliday, attendance.StatusWeekend, attendance.StatusLeave:
		return attendance.Classification{Status: in.Context.Status, WorkedHours: worked}
	}

	if in.CheckIn == nil {
		return attendance.Classification{Status: attendance.StatusAbsent, WorkedHours: zeroHours()}
	}

	if in.CheckOut == nil {
		if policy.IncompleteAsAbsent && dayClosed(in.Day, in.Now, policy.Location) {
			return attendance.Classification{Status: attendance.StatusAbsent, WorkedHours: zeroHours(), Incomplete: true}
		}
		return attendance.Classification{Status: attendance.StatusPresent, Incomplete: true}
	}

	if raw < policy.MinimumWorkHours {
		return attendance.Classification{Status: attendance.StatusHalfDay, WorkedHours: worked}
	}
	if timeOfDay(*in.CheckIn, policy.Location) > policy.LateCutoff {
		return attendance.Classification{Status: attendance.StatusLate, WorkedHours: worked}
	}
	return attendance.Classification{Status: attendance.StatusPresent, WorkedHours: worked}
}

// ValidateSequence rejects a check-out that is not strictly after its check-in.
func ValidateSequence(checkIn, checkOut *time.Time) error {
	if checkIn != nil && checkOut != nil && !checkOut.After(*checkIn) {
		return attendance.ErrInvalidTimeSequence
	}
	return nil
}

func zeroHours() *float64 {
	z := 0.0
	return &z
}

func timeOfDay(t time.Time, loc *time.Location) time.Duration {
	local := t.In(loc)
	return time.Duration(local.Hour())*time.Hour +
		time.Duration(local.Minute())*time.Minute +
		time.Duration(local.Second())*time.Second +
		time.Duration(local.Nanosecond())
}

// dayClosed reports whether the reference clock has moved past day.
func dayClosed(day, now time.Time, loc *time.Location) bool {
	if now.IsZero() {
		return false
	}
	return calendar.Key(calendar.Normalize(now, loc)) > calendar.Key(day)
}
