package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/wfh"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-attendance-go/internal/service/geofence"
)

type AttendanceServiceImpl struct {
	txManager database.TxManager
	attendance.AttendanceRepository
	office.OfficeRepository
	materializer attendance.Materializer
	wfhService   wfh.WFHService
	policy       attendance.Policy
	clock        clock.Clock
}

func NewAttendanceService(
	txManager database.TxManager,
	attendanceRepository attendance.AttendanceRepository,
	officeRepository office.OfficeRepository,
	materializer attendance.Materializer,
	wfhService wfh.WFHService,
	policy attendance.Policy,
	clk clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		txManager:            txManager,
		AttendanceRepository: attendanceRepository,
		OfficeRepository:     officeRepository,
		materializer:         materializer,
		wfhService:           wfhService,
		policy:               policy,
		clock:                clk,
	}
}

// stamp returns the reference clock, or a device-supplied timestamp that falls on the
// same local day as now and within the policy's skew of it.
func (s *AttendanceServiceImpl) stamp(ts *string, source string, now time.Time) (time.Time, error) {
	if ts == nil {
		return now, nil
	}
	if attendance.Source(source) != attendance.SourceDevice {
		return time.Time{}, attendance.ErrUntrustedTimestamp
	}
	at, ok := validator.IsValidDateTime(*ts)
	if !ok {
		return time.Time{}, attendance.ErrStampOutOfWindow
	}
	skew := at.Sub(now).Abs()
	if skew > s.policy.MaxClockSkew || !calendar.Normalize(at, s.policy.Location).Equal(calendar.Normalize(now, s.policy.Location)) {
		return time.Time{}, attendance.ErrStampOutOfWindow
	}
	return at, nil
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	now := s.clock.Now()
	at, err := s.stamp(req.Timestamp, req.Source, now)
	if err != nil {
		return attendance.Record{}, err
	}
	date := calendar.Normalize(at, s.policy.Location)

	source := attendance.SourceManual
	if req.Source != "" {
		source = attendance.Source(req.Source)
	}

	dayCtx, err := s.materializer.DayContext(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.Record{}, err
	}

	var location *attendance.Location
	inRange := false
	if req.Latitude != nil && req.Longitude != nil {
		offices, err := s.OfficeRepository.List(ctx)
		if err != nil {
			return attendance.Record{}, fmt.Errorf("failed to list offices: %w", err)
		}
		res, err := geofence.Evaluate(*req.Latitude, *req.Longitude, offices)
		if err != nil {
			return attendance.Record{}, err
		}
		inRange = geofence.InRange(res, s.policy.GeofenceRadiusMeters)
		location = &attendance.Location{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}

	var bypass *wfh.Request
	if !inRange {
		bypass, err = s.wfhService.FindBypass(ctx, req.EmployeeID, date)
		if err != nil {
			return attendance.Record{}, fmt.Errorf("failed to look up wfh bypass: %w", err)
		}
		if bypass == nil {
			slog.Info("check-in rejected outside geofence", "employee_id", req.EmployeeID, "date", calendar.Key(date))
			return attendance.Record{}, attendance.ErrOutOfGeofence
		}
	}

	var saved attendance.Record
	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		c := Classify(attendance.ClassifyInput{Day: date, CheckIn: &at, Context: dayCtx, Now: now}, s.policy)
		record := attendance.Record{
			EmployeeID:  req.EmployeeID,
			Date:        date,
			CheckIn:     &at,
			Status:      c.Status,
			WorkedHours: c.WorkedHours,
			Location:    location,
			Source:      source,
		}
		if bypass != nil {
			record.WFHRequestID = &bypass.ID
		}

		var err error
		saved, err = s.AttendanceRepository.UpsertCheckIn(ctx, record)
		if err != nil {
			return err
		}

		// A correction may have supplied the check-out before the check-in arrived.
		if saved.CheckOut != nil {
			c = Classify(attendance.ClassifyInput{Day: date, CheckIn: saved.CheckIn, CheckOut: saved.CheckOut, Context: dayCtx, Now: now}, s.policy)
			if err := s.AttendanceRepository.UpdateClassification(ctx, saved.ID, c.Status, c.WorkedHours); err != nil {
				return fmt.Errorf("failed to reclassify attendance: %w", err)
			}
			saved.Status = c.Status
			saved.WorkedHours = c.WorkedHours
		}

		if bypass != nil {
			if _, err := s.wfhService.Consume(ctx, bypass.ID, saved.ID); err != nil {
				return fmt.Errorf("failed to consume wfh request: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return attendance.Record{}, err
	}

	slog.Info("checked in",
		"employee_id", saved.EmployeeID,
		"date", calendar.Key(saved.Date),
		"status", saved.Status,
		"wfh_bypass", bypass != nil,
	)
	return saved, nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	now := s.clock.Now()
	at, err := s.stamp(req.Timestamp, req.Source, now)
	if err != nil {
		return attendance.Record{}, err
	}
	date := calendar.Normalize(at, s.policy.Location)

	// Overnight sessions close on the next calendar day. A carried-over session that
	// ran past the shift cap was forgotten and goes through regularization instead.
	open, err := s.AttendanceRepository.GetOpenSession(ctx, req.EmployeeID, date.AddDate(0, 0, -1), date)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to get open session: %w", err)
	}
	if open == nil {
		return attendance.Record{}, attendance.ErrNoOpenCheckIn
	}
	if open.Date.Before(date) && at.Sub(*open.CheckIn) > s.policy.MaxShiftLength {
		slog.Info("stale open session left for regularization",
			"employee_id", req.EmployeeID,
			"date", calendar.Key(open.Date),
		)
		return attendance.Record{}, attendance.ErrNoOpenCheckIn
	}
	if err := ValidateSequence(open.CheckIn, &at); err != nil {
		return attendance.Record{}, err
	}

	dayCtx, err := s.materializer.DayContext(ctx, req.EmployeeID, open.Date)
	if err != nil {
		return attendance.Record{}, err
	}
	c := Classify(attendance.ClassifyInput{Day: open.Date, CheckIn: open.CheckIn, CheckOut: &at, Context: dayCtx, Now: now}, s.policy)

	saved, err := s.AttendanceRepository.CloseSession(ctx, open.ID, at, c.Status, c.WorkedHours)
	if err != nil {
		return attendance.Record{}, err
	}

	slog.Info("checked out",
		"employee_id", saved.EmployeeID,
		"date", calendar.Key(saved.Date),
		"status", saved.Status,
	)
	return saved, nil
}

// ClassifyDay implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClassifyDay(ctx context.Context, req attendance.ClassifyDayRequest) (attendance.DailyRecord, error) {
	if err := req.Validate(); err != nil {
		return attendance.DailyRecord{}, err
	}
	day, err := calendar.ParseDate(req.Date, s.policy.Location)
	if err != nil {
		return attendance.DailyRecord{}, err
	}

	seq, err := s.materializer.Materialize(ctx, req.EmployeeID, day, day)
	if err != nil {
		return attendance.DailyRecord{}, err
	}
	for d := range seq {
		return d, nil
	}
	return attendance.DailyRecord{}, attendance.ErrDayOutOfScope
}

// ListDaily implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListDaily(ctx context.Context, req attendance.DailyListRequest) ([]attendance.DailyRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start, end, err := s.parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	seq, err := s.materializer.Materialize(ctx, req.EmployeeID, start, end)
	if err != nil {
		return nil, err
	}
	days := slices.Collect(seq)
	if days == nil {
		days = []attendance.DailyRecord{}
	}
	return days, nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.Record, error) {
	record, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Record{}, err
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return record, nil
}

// ListMissingCheckouts implements attendance.AttendanceService. Only closed days are
// reported; today's open sessions are still in progress.
func (s *AttendanceServiceImpl) ListMissingCheckouts(ctx context.Context, req attendance.MissingCheckoutsRequest) ([]attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start, end, err := s.parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	yesterday := calendar.Normalize(s.clock.Now(), s.policy.Location).AddDate(0, 0, -1)
	if end.After(yesterday) {
		end = yesterday
	}
	if start.After(end) {
		return []attendance.Record{}, nil
	}

	records, err := s.AttendanceRepository.ListMissingCheckouts(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list missing checkouts: %w", err)
	}
	return records, nil
}

func (s *AttendanceServiceImpl) parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := calendar.ParseDate(startDate, s.policy.Location)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := calendar.ParseDate(endDate, s.policy.Location)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
