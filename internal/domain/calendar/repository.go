package calendar

import (
	"context"
	"time"
)

// HolidayRepository reads the company holiday calendar.
type HolidayRepository interface {
	// ListBetween returns holidays dated within [start, end], ordered by date.
	ListBetween(ctx context.Context, start, end time.Time) ([]Holiday, error)
}
