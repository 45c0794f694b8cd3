package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/wfh"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type WFHHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
}

type wfhHandlerImpl struct {
	wfhService wfh.WFHService
	loc        *time.Location
}

func NewWFHHandler(wfhService wfh.WFHService, loc *time.Location) WFHHandler {
	return &wfhHandlerImpl{
		wfhService: wfhService,
		loc:        loc,
	}
}

// Create implements WFHHandler.
func (h *wfhHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req wfh.CreateWFHRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode wfh request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = selfEmployeeID(r)

	result, err := h.wfhService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "WFH request submitted", wfh.NewWFHResponse(result, h.loc))
}

func (h *wfhHandlerImpl) filterFromQuery(r *http.Request) wfh.WFHFilter {
	return wfh.WFHFilter{
		EmployeeID: getStringQueryParam(r, "employee_id"),
		Status:     getStringQueryParam(r, "status"),
		StartDate:  getStringQueryParam(r, "start_date"),
		EndDate:    getStringQueryParam(r, "end_date"),
		Page:       getIntQueryParam(r, "page", 1),
		Limit:      getIntQueryParam(r, "limit", 20),
	}
}

func (h *wfhHandlerImpl) list(w http.ResponseWriter, r *http.Request, filter wfh.WFHFilter) {
	results, err := h.wfhService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results.Requests, &response.Meta{
		Page:       results.Page,
		Limit:      results.Limit,
		TotalItems: results.TotalCount,
		TotalPages: results.TotalPages,
	})
}

// ListMy implements WFHHandler.
func (h *wfhHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	filter := h.filterFromQuery(r)
	employeeID := selfEmployeeID(r)
	filter.EmployeeID = &employeeID
	h.list(w, r, filter)
}

// List implements WFHHandler.
func (h *wfhHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.filterFromQuery(r))
}

// Get implements WFHHandler.
func (h *wfhHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.wfhService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !claimsFromRequest(r).CanAccess(result.EmployeeID) {
		response.HandleError(w, wfh.ErrUnauthorized)
		return
	}

	response.Success(w, wfh.NewWFHResponse(result, h.loc))
}

// Review implements WFHHandler.
func (h *wfhHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	var req wfh.ReviewWFHRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode wfh review", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.ReviewerID = claimsFromRequest(r).UserID

	result, err := h.wfhService.Review(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "WFH request "+string(result.Status), wfh.NewWFHResponse(result, h.loc))
}
