package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
)

type ReportHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
	DailyOverview(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// Summary implements ReportHandler. Non-admins only see their own summary; with no scope the
// caller's own employee id is used.
func (h *reportHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromRequest(r)
	req := report.SummaryRequest{
		EmployeeID: getStringQueryParam(r, "employee_id"),
		Department: getStringQueryParam(r, "department"),
		StartDate:  getStringQueryParam(r, "start_date"),
		EndDate:    getStringQueryParam(r, "end_date"),
		Period:     getStringQueryParam(r, "period"),
	}
	if req.EmployeeID == nil && req.Department == nil && claims.EmployeeID != nil {
		req.EmployeeID = claims.EmployeeID
	}

	switch {
	case req.Department != nil && !claims.IsAdmin:
		response.HandleError(w, auth.ErrAdminPrivilegeRequired)
		return
	case req.EmployeeID != nil && !claims.CanAccess(*req.EmployeeID):
		response.HandleError(w, auth.ErrAdminPrivilegeRequired)
		return
	}

	result, err := h.reportService.Summarize(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report.NewSummaryResponse(result))
}

// DailyOverview implements ReportHandler.
func (h *reportHandlerImpl) DailyOverview(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.DailyOverview(r.Context(), report.OverviewRequest{
		Date: getStringQueryParam(r, "date"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report.NewOverviewResponse(result))
}
