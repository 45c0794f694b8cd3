package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// MaxRangeDays bounds a single materialization request.
const MaxRangeDays = 366

// ========================================
// CHECK-IN / CHECK-OUT DTOs
// ========================================

// CheckInRequest opens today's session. Timestamp is honoured only for device sources.
type CheckInRequest struct {
	EmployeeID string   `json:"-"`
	Timestamp  *string  `json:"timestamp,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	Source     string   `json:"source,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Timestamp != nil {
		if _, ok := validator.IsValidDateTime(*r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be RFC3339",
			})
		}
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "latitude and longitude must be provided together",
		})
	}

	if r.Source != "" && !validator.IsInSlice(r.Source, []string{string(SourceManual), string(SourceDevice)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "source",
			Message: "source must be manual or device",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CheckOutRequest closes the open session. Timestamp is honoured only for device sources.
type CheckOutRequest struct {
	EmployeeID string  `json:"-"`
	Timestamp  *string `json:"timestamp,omitempty"`
	Source     string  `json:"source,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Timestamp != nil {
		if _, ok := validator.IsValidDateTime(*r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be RFC3339",
			})
		}
	}

	if r.Source != "" && !validator.IsInSlice(r.Source, []string{string(SourceManual), string(SourceDevice)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "source",
			Message: "source must be manual or device",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// READ DTOs
// ========================================

type ClassifyDayRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
}

func (r *ClassifyDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be YYYY-MM-DD",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DailyListRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (r *DailyListRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	errs = append(errs, validateRange(r.StartDate, r.EndDate)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MissingCheckoutsRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *MissingCheckoutsRequest) Validate() error {
	errs := validateRange(r.StartDate, r.EndDate)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateRange(startDate, endDate string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(startDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be YYYY-MM-DD",
		})
	}
	end, okEnd := validator.IsValidDate(endDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be YYYY-MM-DD",
		})
	}
	if okStart && okEnd {
		if start.After(end) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		} else if end.Sub(start) > time.Duration(MaxRangeDays-1)*24*time.Hour {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "date range must not exceed 366 days",
			})
		}
	}

	return errs
}

// ========================================
// RESPONSES
// ========================================

type AttendanceResponse struct {
	ID           string   `json:"id"`
	EmployeeID   string   `json:"employee_id"`
	Date         string   `json:"date"`
	CheckIn      *string  `json:"check_in,omitempty"`
	CheckOut     *string  `json:"check_out,omitempty"`
	Status       string   `json:"status"`
	WorkedHours  *float64 `json:"worked_hours,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Source       string   `json:"source"`
	WFHRequestID *string  `json:"wfh_request_id,omitempty"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

type DailyRecordResponse struct {
	Date        string   `json:"date"`
	EmployeeID  string   `json:"employee_id"`
	RecordID    *string  `json:"record_id,omitempty"`
	CheckIn     *string  `json:"check_in,omitempty"`
	CheckOut    *string  `json:"check_out,omitempty"`
	Status      string   `json:"status"`
	WorkedHours *float64 `json:"worked_hours,omitempty"`
	Incomplete  bool     `json:"incomplete,omitempty"`
	Source      string   `json:"source"`
	HolidayName string   `json:"holiday_name,omitempty"`
	LeaveType   string   `json:"leave_type,omitempty"`
}

// timePtrToString formats an optional timestamp in loc.
func timePtrToString(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	s := t.In(loc).Format(time.RFC3339)
	return &s
}

func NewAttendanceResponse(r Record, loc *time.Location) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		Date:         r.Date.Format("2006-01-02"),
		CheckIn:      timePtrToString(r.CheckIn, loc),
		CheckOut:     timePtrToString(r.CheckOut, loc),
		Status:       string(r.Status),
		WorkedHours:  r.WorkedHours,
		Source:       string(r.Source),
		WFHRequestID: r.WFHRequestID,
		CreatedAt:    r.CreatedAt.In(loc).Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.In(loc).Format(time.RFC3339),
	}
	if r.Location != nil {
		resp.Latitude = &r.Location.Latitude
		resp.Longitude = &r.Location.Longitude
	}
	return resp
}

func NewDailyRecordResponse(d DailyRecord, loc *time.Location) DailyRecordResponse {
	return DailyRecordResponse{
		Date:        d.Date.Format("2006-01-02"),
		EmployeeID:  d.EmployeeID,
		RecordID:    d.RecordID,
		CheckIn:     timePtrToString(d.CheckIn, loc),
		CheckOut:    timePtrToString(d.CheckOut, loc),
		Status:      string(d.Status),
		WorkedHours: d.WorkedHours,
		Incomplete:  d.Incomplete,
		Source:      string(d.Source),
		HolidayName: d.HolidayName,
		LeaveType:   d.LeaveType,
	}
}
