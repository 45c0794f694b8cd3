package regularization

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// CreateRegularizationRequest carries proposed stamps either as RFC3339 timestamps or as
// HH:MM on the target date.
type CreateRegularizationRequest struct {
	EmployeeID       string  `json:"-"`
	Date             string  `json:"date"`
	Type             string  `json:"regularization_type"`
	Reason           string  `json:"reason"`
	ProposedCheckIn  *string `json:"proposed_check_in,omitempty"`
	ProposedCheckOut *string `json:"proposed_check_out,omitempty"`
}

func isStamp(s string) bool {
	if _, ok := validator.IsValidDateTime(s); ok {
		return true
	}
	_, ok := validator.IsValidTimeOfDay(s)
	return ok
}

func (r *CreateRegularizationRequest) Validate() error {
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

	validTypes := []string{string(TypeMissingCheckIn), string(TypeMissingCheckOut), string(TypeWrongTiming), string(TypeSystemError)}
	if !validator.IsInSlice(r.Type, validTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "regularization_type",
			Message: "regularization_type must be one of: missing_checkin, missing_checkout, wrong_timing, system_error",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if r.ProposedCheckIn != nil && !isStamp(*r.ProposedCheckIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "proposed_check_in",
			Message: "proposed_check_in must be RFC3339 or HH:MM",
		})
	}
	if r.ProposedCheckOut != nil && !isStamp(*r.ProposedCheckOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "proposed_check_out",
			Message: "proposed_check_out must be RFC3339 or HH:MM",
		})
	}

	switch Type(r.Type) {
	case TypeMissingCheckIn:
		if r.ProposedCheckIn == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "proposed_check_in",
				Message: "proposed_check_in is required for missing_checkin",
			})
		}
	case TypeMissingCheckOut:
		if r.ProposedCheckOut == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "proposed_check_out",
				Message: "proposed_check_out is required for missing_checkout",
			})
		}
	default:
		if r.ProposedCheckIn == nil && r.ProposedCheckOut == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "proposed_check_in",
				Message: "at least one proposed time is required",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReviewRegularizationRequest struct {
	ID         string  `json:"-"`
	ReviewerID string  `json:"-"`
	Decision   string  `json:"decision"`
	Comment    *string `json:"comment,omitempty"`
}

func (r *ReviewRegularizationRequest) Validate() error {
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

type RegularizationFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *RegularizationFilter) Validate() error {
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

	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: pending, approved, rejected",
		})
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

type RegularizationResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	Date             string  `json:"date"`
	Type             string  `json:"regularization_type"`
	Reason           string  `json:"reason"`
	ProposedCheckIn  *string `json:"proposed_check_in,omitempty"`
	ProposedCheckOut *string `json:"proposed_check_out,omitempty"`
	Status           string  `json:"status"`
	ReviewedBy       *string `json:"reviewed_by,omitempty"`
	ReviewComment    *string `json:"review_comment,omitempty"`
	ReviewedAt       *string `json:"reviewed_at,omitempty"`
	AttendanceID     *string `json:"attendance_id,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

type ListRegularizationResponse struct {
	TotalCount      int64                    `json:"total_count"`
	Page            int                      `json:"page"`
	Limit           int                      `json:"limit"`
	TotalPages      int                      `json:"total_pages"`
	Showing         string                   `json:"showing"`
	Regularizations []RegularizationResponse `json:"regularizations"`
}

func formatTime(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	s := t.In(loc).Format(time.RFC3339)
	return &s
}

func NewRegularizationResponse(r Request, loc *time.Location) RegularizationResponse {
	return RegularizationResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		Date:             r.Date.Format("2006-01-02"),
		Type:             string(r.Type),
		Reason:           r.Reason,
		ProposedCheckIn:  formatTime(r.ProposedCheckIn, loc),
		ProposedCheckOut: formatTime(r.ProposedCheckOut, loc),
		Status:           string(r.Status),
		ReviewedBy:       r.ReviewedBy,
		ReviewComment:    r.ReviewComment,
		ReviewedAt:       formatTime(r.ReviewedAt, loc),
		AttendanceID:     r.AttendanceID,
		CreatedAt:        r.CreatedAt.In(loc).Format(time.RFC3339),
	}
}
