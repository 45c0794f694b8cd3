package calendar

import "time"

type Holiday struct {
	ID         string
	Date       time.Time
	Name       string
	IsOptional bool
}

// Resolution is the calendar view of one day for one employee.
type Resolution struct {
	Date            time.Time
	IsWeekend       bool
	IsHoliday       bool
	HolidayName     string
	OptionalHoliday string
	InScope         bool
}
