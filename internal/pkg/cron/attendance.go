package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
)

// AttendanceJobs flags sessions that were never closed. It only reports; closing a
// session is left to a regularization.
type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	clock             clock.Clock
	loc               *time.Location

	mu        sync.Mutex
	lastSwept string
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, clk clock.Clock, loc *time.Location) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		clock:             clk,
		loc:               loc,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("report_missing_checkouts", 1*time.Hour, j.ReportMissingCheckouts)
}

// ReportMissingCheckouts logs yesterday's open sessions once per local day and returns
// how many it found.
func (j *AttendanceJobs) ReportMissingCheckouts(ctx context.Context) error {
	_, err := j.sweep(ctx)
	return err
}

func (j *AttendanceJobs) sweep(ctx context.Context) (int, error) {
	yesterday := calendar.Normalize(j.clock.Now(), j.loc).AddDate(0, 0, -1)
	key := calendar.Key(yesterday)

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.lastSwept == key {
		return 0, nil
	}

	slog.Info("Cron: scanning for missing checkouts", "date", key)

	records, err := j.attendanceService.ListMissingCheckouts(ctx, attendance.MissingCheckoutsRequest{
		StartDate: key,
		EndDate:   key,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list missing checkouts: %w", err)
	}

	for _, rec := range records {
		slog.Warn("Cron: attendance left open",
			"attendance_id", rec.ID,
			"employee_id", rec.EmployeeID,
			"date", key,
			"check_in", rec.CheckIn,
		)
	}

	j.lastSwept = key
	slog.Info("Cron: missing checkout scan completed", "date", key, "open_sessions", len(records))
	return len(records), nil
}
