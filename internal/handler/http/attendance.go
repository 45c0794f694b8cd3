package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetMyDaily(w http.ResponseWriter, r *http.Request)
	ClassifyDay(w http.ResponseWriter, r *http.Request)
	GetEmployeeDaily(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListMissingCheckouts(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	loc               *time.Location
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, loc *time.Location) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		loc:               loc,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode check-in request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = selfEmployeeID(r)

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check in successful", attendance.NewAttendanceResponse(result, h.loc))
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Failed to decode check-out request", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.EmployeeID = selfEmployeeID(r)

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check out successful", attendance.NewAttendanceResponse(result, h.loc))
}

func (h *attendanceHandlerImpl) listDaily(w http.ResponseWriter, r *http.Request, employeeID string) {
	req := attendance.DailyListRequest{
		EmployeeID: employeeID,
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}

	days, err := h.attendanceService.ListDaily(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results := make([]attendance.DailyRecordResponse, 0, len(days))
	for _, d := range days {
		results = append(results, attendance.NewDailyRecordResponse(d, h.loc))
	}
	response.Success(w, results)
}

// GetMyDaily implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyDaily(w http.ResponseWriter, r *http.Request) {
	h.listDaily(w, r, selfEmployeeID(r))
}

// GetEmployeeDaily implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetEmployeeDaily(w http.ResponseWriter, r *http.Request) {
	h.listDaily(w, r, chi.URLParam(r, "employeeID"))
}

// ClassifyDay implements AttendanceHandler. Admins may pass employee_id to inspect someone else.
func (h *attendanceHandlerImpl) ClassifyDay(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromRequest(r)
	employeeID := selfEmployeeID(r)
	if other := r.URL.Query().Get("employee_id"); other != "" {
		employeeID = other
	}
	if !claims.CanAccess(employeeID) {
		response.HandleError(w, attendance.ErrUnauthorized)
		return
	}

	req := attendance.ClassifyDayRequest{
		EmployeeID: employeeID,
		Date:       r.URL.Query().Get("date"),
	}

	day, err := h.attendanceService.ClassifyDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.NewDailyRecordResponse(day, h.loc))
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.attendanceService.GetAttendance(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !claimsFromRequest(r).CanAccess(result.EmployeeID) {
		response.HandleError(w, attendance.ErrUnauthorized)
		return
	}

	response.Success(w, attendance.NewAttendanceResponse(result, h.loc))
}

// ListMissingCheckouts implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListMissingCheckouts(w http.ResponseWriter, r *http.Request) {
	req := attendance.MissingCheckoutsRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	records, err := h.attendanceService.ListMissingCheckouts(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		results = append(results, attendance.NewAttendanceResponse(rec, h.loc))
	}
	response.Success(w, results)
}
