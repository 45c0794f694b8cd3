package wfh

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/wfh"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance-go/internal/service/geofence"
)

type WFHServiceImpl struct {
	wfh.WFHRequestRepository
	office.OfficeRepository
	loc   *time.Location
	clock clock.Clock
}

func NewWFHService(wfhRepository wfh.WFHRequestRepository, officeRepository office.OfficeRepository, loc *time.Location, clk clock.Clock) wfh.WFHService {
	return &WFHServiceImpl{
		WFHRequestRepository: wfhRepository,
		OfficeRepository:     officeRepository,
		loc:                  loc,
		clock:                clk,
	}
}

// Create implements wfh.WFHService. The nearest office and its distance are stored for
// the reviewer when a location is supplied.
func (s *WFHServiceImpl) Create(ctx context.Context, req wfh.CreateWFHRequest) (wfh.Request, error) {
	if err := req.Validate(); err != nil {
		return wfh.Request{}, err
	}

	date, err := calendar.ParseDate(req.RequestDate, s.loc)
	if err != nil {
		return wfh.Request{}, err
	}
	if date.Before(calendar.Normalize(s.clock.Now(), s.loc)) {
		return wfh.Request{}, wfh.ErrPastDate
	}

	request := wfh.Request{
		EmployeeID:           req.EmployeeID,
		RequestDate:          date,
		RequestedCheckInTime: req.RequestedCheckInTime,
		Reason:               req.Reason,
		Status:               wfh.StatusPending,
		AttemptedLatitude:    req.Latitude,
		AttemptedLongitude:   req.Longitude,
	}

	if req.Latitude != nil && req.Longitude != nil {
		offices, err := s.OfficeRepository.List(ctx)
		if err != nil {
			return wfh.Request{}, fmt.Errorf("failed to list offices: %w", err)
		}
		res, err := geofence.Evaluate(*req.Latitude, *req.Longitude, offices)
		if err != nil {
			return wfh.Request{}, err
		}
		if res.NearestOffice != nil {
			distance := math.Round(res.DistanceMeters*100) / 100
			request.NearestOfficeID = &res.NearestOffice.ID
			request.NearestOfficeName = &res.NearestOffice.Name
			request.DistanceFromOffice = &distance
		}
	}

	created, err := s.WFHRequestRepository.Create(ctx, request)
	if err != nil {
		return wfh.Request{}, err
	}

	slog.Info("wfh request created", "id", created.ID, "employee_id", created.EmployeeID, "date", calendar.Key(created.RequestDate))
	return created, nil
}

// Review implements wfh.WFHService.
func (s *WFHServiceImpl) Review(ctx context.Context, req wfh.ReviewWFHRequest) (wfh.Request, error) {
	if err := req.Validate(); err != nil {
		return wfh.Request{}, err
	}

	reviewed, err := s.WFHRequestRepository.Review(ctx, req.ID, wfh.Status(req.Decision), req.ReviewerID, req.Comment, s.clock.Now())
	if err != nil {
		return wfh.Request{}, err
	}

	slog.Info("wfh request reviewed", "id", reviewed.ID, "status", reviewed.Status, "reviewer_id", req.ReviewerID)
	return reviewed, nil
}

// Consume implements wfh.WFHService.
func (s *WFHServiceImpl) Consume(ctx context.Context, requestID string, attendanceID string) (wfh.Request, error) {
	consumed, err := s.WFHRequestRepository.Consume(ctx, requestID, attendanceID, s.clock.Now())
	if err != nil {
		return wfh.Request{}, err
	}

	slog.Info("wfh request consumed", "id", consumed.ID, "attendance_id", attendanceID)
	return consumed, nil
}

// Get implements wfh.WFHService.
func (s *WFHServiceImpl) Get(ctx context.Context, id string) (wfh.Request, error) {
	return s.WFHRequestRepository.GetByID(ctx, id)
}

// List implements wfh.WFHService.
func (s *WFHServiceImpl) List(ctx context.Context, filter wfh.WFHFilter) (wfh.ListWFHResponse, error) {
	if err := filter.Validate(); err != nil {
		return wfh.ListWFHResponse{}, err
	}

	requests, total, err := s.WFHRequestRepository.List(ctx, filter)
	if err != nil {
		return wfh.ListWFHResponse{}, fmt.Errorf("failed to list wfh requests: %w", err)
	}

	responses := make([]wfh.WFHResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, wfh.NewWFHResponse(r, s.loc))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return wfh.ListWFHResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Requests:   responses,
	}, nil
}

// FindBypass implements wfh.WFHService.
func (s *WFHServiceImpl) FindBypass(ctx context.Context, employeeID string, date time.Time) (*wfh.Request, error) {
	return s.WFHRequestRepository.FindBypass(ctx, employeeID, calendar.Reanchor(date, s.loc))
}
