package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
)

// Resolver answers weekend, holiday and joining-date questions for a window of days.
type Resolver struct {
	calendar.HolidayRepository
	weekendDays []time.Weekday
}

func NewResolver(holidayRepository calendar.HolidayRepository, weekendDays []time.Weekday) *Resolver {
	return &Resolver{
		HolidayRepository: holidayRepository,
		weekendDays:       weekendDays,
	}
}

// ForRange loads the holidays of [start, end] once and returns a Calendar that resolves
// any day in that window without further I/O.
func (r *Resolver) ForRange(ctx context.Context, start, end time.Time) (*Calendar, error) {
	holidays, err := r.HolidayRepository.ListBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	return NewCalendar(r.weekendDays, holidays), nil
}

// Calendar is an immutable weekend and holiday lookup.
type Calendar struct {
	weekend  [7]bool
	holidays map[string]calendar.Holiday
	optional map[string]calendar.Holiday
}

// NewCalendar indexes holidays by date. When two entries share a date the later one wins
// and the collision is logged.
func NewCalendar(weekendDays []time.Weekday, holidays []calendar.Holiday) *Calendar {
	c := &Calendar{
		holidays: make(map[string]calendar.Holiday, len(holidays)),
		optional: make(map[string]calendar.Holiday),
	}
	for _, d := range weekendDays {
		c.weekend[d] = true
	}
	for _, h := range holidays {
		key := calendar.Key(h.Date)
		target := c.holidays
		if h.IsOptional {
			target = c.optional
		}
		if prev, ok := target[key]; ok {
			slog.Warn("duplicate holiday entries for one date, keeping the later one",
				"date", key, "kept", h.Name, "dropped", prev.Name)
		}
		target[key] = h
	}
	return c
}

// Resolve classifies date for an employee who joined on joiningDate. Both are calendar
// days; only their printed dates are compared.
func (c *Calendar) Resolve(joiningDate, date time.Time) calendar.Resolution {
	key := calendar.Key(date)
	res := calendar.Resolution{
		Date:      date,
		IsWeekend: c.weekend[date.Weekday()],
		InScope:   joiningDate.IsZero() || key >= calendar.Key(joiningDate),
	}
	if h, ok := c.holidays[key]; ok {
		res.IsHoliday = true
		res.HolidayName = h.Name
	}
	if h, ok := c.optional[key]; ok {
		res.OptionalHoliday = h.Name
	}
	return res
}
