package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAttendanceService struct {
	attendance.AttendanceService
	calls    []attendance.MissingCheckoutsRequest
	open     []attendance.Record
	failNext bool
}

func (s *stubAttendanceService) ListMissingCheckouts(ctx context.Context, req attendance.MissingCheckoutsRequest) ([]attendance.Record, error) {
	s.calls = append(s.calls, req)
	if s.failNext {
		s.failNext = false
		return nil, errors.New("store unavailable")
	}
	return s.open, nil
}

func TestReportMissingCheckouts_ScansYesterdayOncePerDay(t *testing.T) {
	loc := time.FixedZone("IST", 5*60*60+30*60)
	svc := &stubAttendanceService{open: []attendance.Record{{ID: "att-1", EmployeeID: "emp-1"}}}
	jobs := NewAttendanceJobs(svc, clock.Fixed(time.Date(2024, 3, 12, 0, 30, 0, 0, loc)), loc)

	found, err := jobs.sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, found)
	require.Len(t, svc.calls, 1)
	assert.Equal(t, "2024-03-11", svc.calls[0].StartDate)
	assert.Equal(t, "2024-03-11", svc.calls[0].EndDate)

	found, err = jobs.sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, found)
	assert.Len(t, svc.calls, 1)
}

func TestReportMissingCheckouts_RetriesAfterFailure(t *testing.T) {
	loc := time.UTC
	svc := &stubAttendanceService{failNext: true}
	jobs := NewAttendanceJobs(svc, clock.Fixed(time.Date(2024, 3, 12, 8, 0, 0, 0, loc)), loc)

	assert.Error(t, jobs.ReportMissingCheckouts(context.Background()))
	assert.NoError(t, jobs.ReportMissingCheckouts(context.Background()))
	assert.Len(t, svc.calls, 2)
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()
	runs := 0
	s.AddJob("count", time.Hour, func(ctx context.Context) error {
		runs++
		return nil
	})
	s.AddJob("fail", time.Hour, func(ctx context.Context) error {
		return errors.New("boom")
	})

	s.RunOnce(context.Background())
	assert.Equal(t, 1, runs)
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler()
	ran := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start(context.Background())
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}
