package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/regularization"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/wfh"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, auth.ErrEmployeeProfileRequired):
		Forbidden(w, "Token is not linked to an employee")

	// Calendar errors
	case errors.Is(err, calendar.ErrInvalidDateRange):
		BadRequest(w, "Invalid date range", nil)
	case errors.Is(err, calendar.ErrUnknownPeriod):
		BadRequest(w, "Unknown period", nil)

	// Employee errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Attendance errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance not found")
	case errors.Is(err, attendance.ErrDuplicateCheckIn):
		Conflict(w, "Already checked in for this date")
	case errors.Is(err, attendance.ErrNoOpenCheckIn):
		Conflict(w, "No open check-in to close")
	case errors.Is(err, attendance.ErrInvalidTimeSequence):
		UnprocessableEntity(w, "Check-out must be after check-in")
	case errors.Is(err, attendance.ErrInvalidCoordinate):
		UnprocessableEntity(w, "Invalid coordinates")
	case errors.Is(err, attendance.ErrUntrustedTimestamp), errors.Is(err, attendance.ErrStampOutOfWindow):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, attendance.ErrOutOfGeofence):
		Forbidden(w, "Location is outside the allowed radius and no approved WFH request exists")
	case errors.Is(err, attendance.ErrDayOutOfScope):
		BadRequest(w, "Date is before the employee's joining date", nil)
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this attendance")

	// WFH errors
	case errors.Is(err, wfh.ErrRequestNotFound):
		NotFound(w, "WFH request not found")
	case errors.Is(err, wfh.ErrDuplicateActiveRequest):
		Conflict(w, "An active WFH request already exists for this date")
	case errors.Is(err, wfh.ErrInvalidStateTransition):
		Conflict(w, "WFH request already processed")
	case errors.Is(err, wfh.ErrPastDate):
		BadRequest(w, "WFH requests cannot target a past date", nil)
	case errors.Is(err, wfh.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this WFH request")

	// Regularization errors
	case errors.Is(err, regularization.ErrRequestNotFound):
		NotFound(w, "Regularization request not found")
	case errors.Is(err, regularization.ErrDuplicatePendingRequest):
		Conflict(w, "A pending regularization already exists for this date")
	case errors.Is(err, regularization.ErrInvalidStateTransition):
		Conflict(w, "Regularization request already processed")
	case errors.Is(err, regularization.ErrFutureDate):
		BadRequest(w, "Regularization cannot target a future date", nil)
	case errors.Is(err, regularization.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this regularization request")

	// Report errors
	case errors.Is(err, report.ErrInvalidScope):
		BadRequest(w, "Exactly one of employee_id or department is required", nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
