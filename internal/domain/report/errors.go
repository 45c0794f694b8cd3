package report

import "errors"

var (
	ErrInvalidScope = errors.New("exactly one of employee_id or department is required")
)
