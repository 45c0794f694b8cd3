package regularization

import "errors"

var (
	ErrRequestNotFound         = errors.New("regularization request not found")
	ErrDuplicatePendingRequest = errors.New("a pending regularization request already exists for this date")
	ErrInvalidStateTransition  = errors.New("regularization request has already been reviewed")
	ErrUnauthorized            = errors.New("unauthorized to access this regularization request")
	ErrFutureDate              = errors.New("cannot regularize a future date")
)
