package wfh

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type CreateWFHRequest struct {
	EmployeeID           string   `json:"-"`
	RequestDate          string   `json:"request_date"`
	RequestedCheckInTime *string  `json:"requested_check_in_time,omitempty"`
	Reason               string   `json:"reason"`
	Latitude             *float64 `json:"latitude,omitempty"`
	Longitude            *float64 `json:"longitude,omitempty"`
}

func (r *CreateWFHRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.RequestDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "request_date",
			Message: "request_date must be YYYY-MM-DD",
		})
	}

	if r.RequestedCheckInTime != nil {
		if _, ok := validator.IsValidTimeOfDay(*r.RequestedCheckInTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_check_in_time",
				Message: "requested_check_in_time must be HH:MM",
			})
		}
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if len(r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "latitude and longitude must be provided together",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReviewWFHRequest struct {
	ID         string  `json:"-"`
	ReviewerID string  `json:"-"`
	Decision   string  `json:"decision"`
	Comment    *string `json:"comment,omitempty"`
}

func (r *ReviewWFHRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if validator.IsEmpty(r.ReviewerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "reviewer_id",
			Message: "reviewer_id is required",
		})
	}
	if !validator.IsInSlice(r.Decision, []string{string(StatusApproved), string(StatusRejected)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be approved or rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WFHFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *WFHFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil {
		valid := []string{string(StatusPending), string(StatusApproved), string(StatusRejected), StateConsumed}
		if !validator.IsInSlice(*f.Status, valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: pending, approved, rejected, consumed",
			})
		}
	}

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be YYYY-MM-DD",
			})
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be YYYY-MM-DD",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WFHResponse struct {
	ID                   string   `json:"id"`
	EmployeeID           string   `json:"employee_id"`
	RequestDate          string   `json:"request_date"`
	RequestedCheckInTime *string  `json:"requested_check_in_time,omitempty"`
	Reason               string   `json:"reason"`
	Status               string   `json:"status"`
	State                string   `json:"state"`
	AttemptedLatitude    *float64 `json:"attempted_latitude,omitempty"`
	AttemptedLongitude   *float64 `json:"attempted_longitude,omitempty"`
	NearestOfficeID      *string  `json:"nearest_office_id,omitempty"`
	NearestOfficeName    *string  `json:"nearest_office_name,omitempty"`
	DistanceFromOffice   *float64 `json:"distance_from_office,omitempty"`
	ApprovedBy           *string  `json:"approved_by,omitempty"`
	ReviewedBy           *string  `json:"reviewed_by,omitempty"`
	ReviewComment        *string  `json:"review_comment,omitempty"`
	ReviewedAt           *string  `json:"reviewed_at,omitempty"`
	ConsumedAt           *string  `json:"consumed_at,omitempty"`
	ConsumedAttendanceID *string  `json:"consumed_attendance_id,omitempty"`
	CreatedAt            string   `json:"created_at"`
}

type ListWFHResponse struct {
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
	Showing    string        `json:"showing"`
	Requests   []WFHResponse `json:"requests"`
}

func formatTime(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	s := t.In(loc).Format(time.RFC3339)
	return &s
}

func NewWFHResponse(r Request, loc *time.Location) WFHResponse {
	return WFHResponse{
		ID:                   r.ID,
		EmployeeID:           r.EmployeeID,
		RequestDate:          r.RequestDate.Format("2006-01-02"),
		RequestedCheckInTime: r.RequestedCheckInTime,
		Reason:               r.Reason,
		Status:               string(r.Status),
		State:                r.State(),
		AttemptedLatitude:    r.AttemptedLatitude,
		AttemptedLongitude:   r.AttemptedLongitude,
		NearestOfficeID:      r.NearestOfficeID,
		NearestOfficeName:    r.NearestOfficeName,
		DistanceFromOffice:   r.DistanceFromOffice,
		ApprovedBy:           r.ApprovedBy,
		ReviewedBy:           r.ReviewedBy,
		ReviewComment:        r.ReviewComment,
		ReviewedAt:           formatTime(r.ReviewedAt, loc),
		ConsumedAt:           formatTime(r.ConsumedAt, loc),
		ConsumedAttendanceID: r.ConsumedAttendanceID,
		CreatedAt:            r.CreatedAt.In(loc).Format(time.RFC3339),
	}
}
