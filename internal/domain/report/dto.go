package report

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE SUMMARY
// ========================================

// SummaryRequest selects a scope and a window. Period, when set, replaces the explicit dates.
type SummaryRequest struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Department *string `json:"department,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
	Period     *string `json:"period,omitempty"`
}

func (r *SummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	hasEmployee := r.EmployeeID != nil && !validator.IsEmpty(*r.EmployeeID)
	hasDepartment := r.Department != nil && !validator.IsEmpty(*r.Department)
	if hasEmployee == hasDepartment {
		errs = append(errs, validator.ValidationError{
			Field:   "scope",
			Message: ErrInvalidScope.Error(),
		})
	}

	if r.Period != nil {
		valid := []string{"today", "yesterday", "week", "month", "quarter", "last_month"}
		if !validator.IsInSlice(*r.Period, valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "period",
				Message: "period must be one of: today, yesterday, week, month, quarter, last_month",
			})
		}
	} else {
		start, okStart := time.Time{}, false
		if r.StartDate != nil {
			start, okStart = validator.IsValidDate(*r.StartDate)
		}
		if !okStart {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be YYYY-MM-DD when period is not set",
			})
		}
		end, okEnd := time.Time{}, false
		if r.EndDate != nil {
			end, okEnd = validator.IsValidDate(*r.EndDate)
		}
		if !okEnd {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be YYYY-MM-DD when period is not set",
			})
		}
		if okStart && okEnd && start.After(end) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CountsResponse struct {
	TotalWorkingDays     int     `json:"total_working_days"`
	PresentDays          int     `json:"present_days"`
	AbsentDays           int     `json:"absent_days"`
	HalfDayCount         int     `json:"half_day_count"`
	LateCount            int     `json:"late_count"`
	LeaveCount           int     `json:"leave_count"`
	WeekendCount         int     `json:"weekend_count"`
	HolidayCount         int     `json:"holiday_count"`
	IncompleteCount      int     `json:"incomplete_count"`
	TotalWorkedHours     float64 `json:"total_worked_hours"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

type EmployeeSummaryResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	CountsResponse
}

type SummaryResponse struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Department *string `json:"department,omitempty"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	CountsResponse
	Employees []EmployeeSummaryResponse `json:"employees,omitempty"`
}

func newCountsResponse(c Counts) CountsResponse {
	return CountsResponse{
		TotalWorkingDays:     c.TotalWorkingDays,
		PresentDays:          c.PresentDays,
		AbsentDays:           c.AbsentDays,
		HalfDayCount:         c.HalfDayCount,
		LateCount:            c.LateCount,
		LeaveCount:           c.LeaveCount,
		WeekendCount:         c.WeekendCount,
		HolidayCount:         c.HolidayCount,
		IncompleteCount:      c.IncompleteCount,
		TotalWorkedHours:     c.TotalWorkedHours.Round(2).InexactFloat64(),
		AttendancePercentage: c.AttendancePercentage(),
	}
}

func NewSummaryResponse(s Summary) SummaryResponse {
	resp := SummaryResponse{
		EmployeeID:     s.EmployeeID,
		Department:     s.Department,
		StartDate:      s.StartDate.Format("2006-01-02"),
		EndDate:        s.EndDate.Format("2006-01-02"),
		CountsResponse: newCountsResponse(s.Counts),
	}
	for _, e := range s.Employees {
		resp.Employees = append(resp.Employees, EmployeeSummaryResponse{
			EmployeeID:     e.EmployeeID,
			EmployeeName:   e.EmployeeName,
			CountsResponse: newCountsResponse(e.Counts),
		})
	}
	return resp
}

// ========================================
// DAILY OVERVIEW
// ========================================

type OverviewRequest struct {
	Date *string `json:"date,omitempty"`
}

func (r *OverviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be YYYY-MM-DD",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OverviewResponse struct {
	Date            string  `json:"date"`
	TotalEmployees  int     `json:"total_employees"`
	ExpectedCount   int     `json:"expected_count"`
	AttendedCount   int     `json:"attended_count"`
	OnTimeCount     int     `json:"on_time_count"`
	LateCount       int     `json:"late_count"`
	HalfDayCount    int     `json:"half_day_count"`
	AbsentCount     int     `json:"absent_count"`
	LeaveCount      int     `json:"leave_count"`
	OffDayCount     int     `json:"off_day_count"`
	IncompleteCount int     `json:"incomplete_count"`
	AttendanceRate  float64 `json:"attendance_rate"`
	PunctualityRate float64 `json:"punctuality_rate"`
}

func NewOverviewResponse(o Overview) OverviewResponse {
	return OverviewResponse{
		Date:            o.Date.Format("2006-01-02"),
		TotalEmployees:  o.TotalEmployees,
		ExpectedCount:   o.ExpectedCount,
		AttendedCount:   o.AttendedCount,
		OnTimeCount:     o.OnTimeCount,
		LateCount:       o.LateCount,
		HalfDayCount:    o.HalfDayCount,
		AbsentCount:     o.AbsentCount,
		LeaveCount:      o.LeaveCount,
		OffDayCount:     o.OffDayCount,
		IncompleteCount: o.IncompleteCount,
		AttendanceRate:  o.AttendanceRate,
		PunctualityRate: o.PunctualityRate,
	}
}
