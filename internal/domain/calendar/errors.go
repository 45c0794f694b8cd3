package calendar

import "errors"

var (
	ErrInvalidDateRange = errors.New("start date must not be after end date")
	ErrUnknownPeriod    = errors.New("unknown period")
)
