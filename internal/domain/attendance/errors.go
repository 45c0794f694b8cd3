package attendance

import "errors"

// Attendance domain errors
var (
	// Write-boundary errors
	ErrInvalidTimeSequence = errors.New("check-out must be after check-in")
	ErrInvalidCoordinate   = errors.New("latitude must be within [-90, 90] and longitude within [-180, 180]")
	ErrOutOfGeofence       = errors.New("you are outside the allowed office radius")
	ErrDuplicateCheckIn    = errors.New("you have already checked in for this date")
	ErrNoOpenCheckIn       = errors.New("no open check-in found to close")
	ErrDayOutOfScope       = errors.New("date is before the employee's joining date")
	ErrUntrustedTimestamp  = errors.New("timestamp may only be supplied by a device source")
	ErrStampOutOfWindow    = errors.New("timestamp must fall on today's date and close to the server clock")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrUnauthorized       = errors.New("unauthorized to access this attendance record")
)
