package auth

import "errors"

var (
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
	ErrEmployeeProfileRequired = errors.New("token is not linked to an employee")
)
