package regularization

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/regularization"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	attendancesvc "github.com/cmlabs-hris/hris-attendance-go/internal/service/attendance"
)

type RegularizationServiceImpl struct {
	txManager database.TxManager
	regularization.RegularizationRepository
	attendance.AttendanceRepository
	materializer attendance.Materializer
	policy       attendance.Policy
	clock        clock.Clock
}

func NewRegularizationService(
	txManager database.TxManager,
	regularizationRepository regularization.RegularizationRepository,
	attendanceRepository attendance.AttendanceRepository,
	materializer attendance.Materializer,
	policy attendance.Policy,
	clk clock.Clock,
) regularization.RegularizationService {
	return &RegularizationServiceImpl{
		txManager:                txManager,
		RegularizationRepository: regularizationRepository,
		AttendanceRepository:     attendanceRepository,
		materializer:             materializer,
		policy:                   policy,
		clock:                    clk,
	}
}

// resolveStamp reads an RFC3339 timestamp, or an HH:MM wall-clock time on day.
func (s *RegularizationServiceImpl) resolveStamp(value *string, day time.Time) *time.Time {
	if value == nil {
		return nil
	}
	if t, ok := validator.IsValidDateTime(*value); ok {
		return &t
	}
	if hm, ok := validator.IsValidTimeOfDay(*value); ok {
		t := time.Date(day.Year(), day.Month(), day.Day(), hm.Hour(), hm.Minute(), 0, 0, s.policy.Location)
		return &t
	}
	return nil
}

// Create implements regularization.RegularizationService.
func (s *RegularizationServiceImpl) Create(ctx context.Context, req regularization.CreateRegularizationRequest) (regularization.Request, error) {
	if err := req.Validate(); err != nil {
		return regularization.Request{}, err
	}

	loc := s.policy.Location
	date, err := calendar.ParseDate(req.Date, loc)
	if err != nil {
		return regularization.Request{}, err
	}
	if date.After(calendar.Normalize(s.clock.Now(), loc)) {
		return regularization.Request{}, regularization.ErrFutureDate
	}

	checkIn := s.resolveStamp(req.ProposedCheckIn, date)
	checkOut := s.resolveStamp(req.ProposedCheckOut, date)
	if checkIn != nil && !calendar.Normalize(*checkIn, loc).Equal(date) {
		return regularization.Request{}, validator.ValidationErrors{{
			Field:   "proposed_check_in",
			Message: "proposed_check_in must fall on date",
		}}
	}
	if err := attendancesvc.ValidateSequence(checkIn, checkOut); err != nil {
		return regularization.Request{}, err
	}

	created, err := s.RegularizationRepository.Create(ctx, regularization.Request{
		EmployeeID:       req.EmployeeID,
		Date:             date,
		Type:             regularization.Type(req.Type),
		Reason:           req.Reason,
		ProposedCheckIn:  checkIn,
		ProposedCheckOut: checkOut,
		Status:           regularization.StatusPending,
	})
	if err != nil {
		return regularization.Request{}, err
	}

	slog.Info("regularization requested", "id", created.ID, "employee_id", created.EmployeeID, "date", calendar.Key(created.Date), "type", created.Type)
	return created, nil
}

// Review implements regularization.RegularizationService. On approval the proposed stamps
// are merged over the stored ones, validated, classified and written with source
// regularized; any failure leaves both the request and the record untouched.
func (s *RegularizationServiceImpl) Review(ctx context.Context, req regularization.ReviewRegularizationRequest) (regularization.Request, error) {
	if err := req.Validate(); err != nil {
		return regularization.Request{}, err
	}

	now := s.clock.Now()
	decision := regularization.Status(req.Decision)

	var result regularization.Request
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := s.RegularizationRepository.GetForUpdate(ctx, req.ID)
		if err != nil {
			return err
		}
		if request.Status != regularization.StatusPending {
			return regularization.ErrInvalidStateTransition
		}

		if decision == regularization.StatusRejected {
			result, err = s.RegularizationRepository.Resolve(ctx, request.ID, decision, req.ReviewerID, req.Comment, now, nil)
			return err
		}

		date := calendar.Reanchor(request.Date, s.policy.Location)
		existing, err := s.AttendanceRepository.GetForUpdate(ctx, request.EmployeeID, date)
		if err != nil {
			return fmt.Errorf("failed to lock attendance: %w", err)
		}

		checkIn, checkOut := request.ProposedCheckIn, request.ProposedCheckOut
		if existing != nil {
			if checkIn == nil {
				checkIn = existing.CheckIn
			}
			if checkOut == nil {
				checkOut = existing.CheckOut
			}
		}
		if err := attendancesvc.ValidateSequence(checkIn, checkOut); err != nil {
			return err
		}

		dayCtx, err := s.materializer.DayContext(ctx, request.EmployeeID, date)
		if err != nil {
			return err
		}
		c := attendancesvc.Classify(attendance.ClassifyInput{
			Day:      date,
			CheckIn:  checkIn,
			CheckOut: checkOut,
			Context:  dayCtx,
			Now:      now,
		}, s.policy)

		saved, err := s.AttendanceRepository.UpsertCorrection(ctx, attendance.Record{
			EmployeeID:  request.EmployeeID,
			Date:        date,
			CheckIn:     checkIn,
			CheckOut:    checkOut,
			Status:      c.Status,
			WorkedHours: c.WorkedHours,
			Source:      attendance.SourceRegularized,
		})
		if err != nil {
			return fmt.Errorf("failed to write corrected attendance: %w", err)
		}

		result, err = s.RegularizationRepository.Resolve(ctx, request.ID, decision, req.ReviewerID, req.Comment, now, &saved.ID)
		return err
	})
	if err != nil {
		return regularization.Request{}, err
	}

	slog.Info("regularization reviewed", "id", result.ID, "status", result.Status, "reviewer_id", req.ReviewerID)
	return result, nil
}

// Get implements regularization.RegularizationService.
func (s *RegularizationServiceImpl) Get(ctx context.Context, id string) (regularization.Request, error) {
	return s.RegularizationRepository.GetByID(ctx, id)
}

// List implements regularization.RegularizationService.
func (s *RegularizationServiceImpl) List(ctx context.Context, filter regularization.RegularizationFilter) (regularization.ListRegularizationResponse, error) {
	if err := filter.Validate(); err != nil {
		return regularization.ListRegularizationResponse{}, err
	}

	requests, total, err := s.RegularizationRepository.List(ctx, filter)
	if err != nil {
		return regularization.ListRegularizationResponse{}, fmt.Errorf("failed to list regularizations: %w", err)
	}

	responses := make([]regularization.RegularizationResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, regularization.NewRegularizationResponse(r, s.policy.Location))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return regularization.ListRegularizationResponse{
		TotalCount:      total,
		Page:            filter.Page,
		Limit:           filter.Limit,
		TotalPages:      totalPages,
		Showing:         showing,
		Regularizations: responses,
	}, nil
}
