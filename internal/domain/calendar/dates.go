package calendar

import (
	"fmt"
	"iter"
	"time"
)

const DateLayout = "2006-01-02"

// Normalize returns local midnight of t's calendar day in loc.
func Normalize(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Reanchor keeps the calendar day printed on d and moves it to midnight in loc.
// DATE columns come back from Postgres as UTC midnight.
func Reanchor(d time.Time, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

// Key formats a day for map lookups and SQL parameters.
func Key(d time.Time) string {
	return d.Format(DateLayout)
}

// Days yields every calendar day from start to end, both inclusive.
func Days(start, end time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

const (
	PeriodToday     = "today"
	PeriodYesterday = "yesterday"
	PeriodWeek      = "week"
	PeriodMonth     = "month"
	PeriodQuarter   = "quarter"
	PeriodLastMonth = "last_month"
)

// PeriodRange resolves a named reporting period against now. Weeks start on Monday;
// open periods end today.
func PeriodRange(period string, now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	today := Normalize(now, loc)

	switch period {
	case PeriodToday:
		return today, today, nil
	case PeriodYesterday:
		y := today.AddDate(0, 0, -1)
		return y, y, nil
	case PeriodWeek:
		offset := (int(today.Weekday()) + 6) % 7
		return today.AddDate(0, 0, -offset), today, nil
	case PeriodMonth:
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc), today, nil
	case PeriodQuarter:
		firstMonth := time.Month((int(today.Month())-1)/3*3 + 1)
		return time.Date(today.Year(), firstMonth, 1, 0, 0, 0, 0, loc), today, nil
	case PeriodLastMonth:
		firstOfThis := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
		return firstOfThis.AddDate(0, -1, 0), firstOfThis.AddDate(0, 0, -1), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrUnknownPeriod, period)
	}
}
