package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/regularization"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type RegularizationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
}

type regularizationHandlerImpl struct {
	regularizationService regularization.RegularizationService
	loc                   *time.Location
}

func NewRegularizationHandler(regularizationService regularization.RegularizationService, loc *time.Location) RegularizationHandler {
	return &regularizationHandlerImpl{
		regularizationService: regularizationService,
		loc:                   loc,
	}
}

// Create implements RegularizationHandler.
func (h *regularizationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req regularization.CreateRegularizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode regularization request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = selfEmployeeID(r)

	result, err := h.regularizationService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Regularization request submitted", regularization.NewRegularizationResponse(result, h.loc))
}

func (h *regularizationHandlerImpl) filterFromQuery(r *http.Request) regularization.RegularizationFilter {
	return regularization.RegularizationFilter{
		EmployeeID: getStringQueryParam(r, "employee_id"),
		Status:     getStringQueryParam(r, "status"),
		StartDate:  getStringQueryParam(r, "start_date"),
		EndDate:    getStringQueryParam(r, "end_date"),
		Page:       getIntQueryParam(r, "page", 1),
		Limit:      getIntQueryParam(r, "limit", 20),
	}
}

func (h *regularizationHandlerImpl) list(w http.ResponseWriter, r *http.Request, filter regularization.RegularizationFilter) {
	results, err := h.regularizationService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results.Regularizations, &response.Meta{
		Page:       results.Page,
		Limit:      results.Limit,
		TotalItems: results.TotalCount,
		TotalPages: results.TotalPages,
	})
}

// ListMy implements RegularizationHandler.
func (h *regularizationHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	filter := h.filterFromQuery(r)
	employeeID := selfEmployeeID(r)
	filter.EmployeeID = &employeeID
	h.list(w, r, filter)
}

// List implements RegularizationHandler. Without a status filter it shows the pending queue.
func (h *regularizationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := h.filterFromQuery(r)
	if filter.Status == nil {
		pending := string(regularization.StatusPending)
		filter.Status = &pending
	}
	h.list(w, r, filter)
}

// Get implements RegularizationHandler.
func (h *regularizationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.regularizationService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !claimsFromRequest(r).CanAccess(result.EmployeeID) {
		response.HandleError(w, regularization.ErrUnauthorized)
		return
	}

	response.Success(w, regularization.NewRegularizationResponse(result, h.loc))
}

// Review implements RegularizationHandler.
func (h *regularizationHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	var req regularization.ReviewRegularizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode regularization review", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.ReviewerID = claimsFromRequest(r).UserID

	result, err := h.regularizationService.Review(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Regularization request "+string(result.Status), regularization.NewRegularizationResponse(result, h.loc))
}
