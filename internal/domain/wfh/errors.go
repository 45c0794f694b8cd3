package wfh

import "errors"

var (
	ErrRequestNotFound        = errors.New("wfh request not found")
	ErrDuplicateActiveRequest = errors.New("a pending or approved wfh request already exists for this date")
	ErrInvalidStateTransition = errors.New("wfh request is not in a state that allows this action")
	ErrUnauthorized           = errors.New("unauthorized to access this wfh request")
	ErrPastDate               = errors.New("cannot request wfh for a past date")
)
