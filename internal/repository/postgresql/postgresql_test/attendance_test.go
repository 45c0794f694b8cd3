package postgresql_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/regularization"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/wfh"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestData(t *testing.T) (*TestDatabaseSetup, string) {
	t.Helper()

	setup, err := NewTestDatabase()
	require.NoError(t, err)
	if setup == nil {
		t.Skip("TEST_DATABASE_URL not set")
	}
	t.Cleanup(setup.Close)

	ctx := context.Background()
	require.NoError(t, setup.TruncateAllTables(ctx))

	employeeID, err := setup.CreateEmployee(ctx, "Asha Rao", "engineering", "2024-01-01")
	require.NoError(t, err)
	return setup, employeeID
}

func TestAttendanceRepository_CheckInLifecycle(t *testing.T) {
	setup, employeeID := setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB, setup.Loc)

	day := time.Date(2024, 3, 12, 0, 0, 0, 0, setup.Loc)
	in := time.Date(2024, 3, 12, 9, 30, 0, 0, setup.Loc)

	saved, err := repo.UpsertCheckIn(ctx, attendance.Record{
		EmployeeID: employeeID,
		Date:       day,
		CheckIn:    &in,
		Status:     attendance.StatusPresent,
		Location:   &attendance.Location{Latitude: 12.97, Longitude: 77.59},
		Source:     attendance.SourceManual,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-12", calendar.Key(saved.Date))
	assert.Equal(t, setup.Loc, saved.Date.Location())
	require.NotNil(t, saved.Location)

	_, err = repo.UpsertCheckIn(ctx, attendance.Record{EmployeeID: employeeID, Date: day, CheckIn: &in, Status: attendance.StatusPresent, Source: attendance.SourceManual})
	assert.ErrorIs(t, err, attendance.ErrDuplicateCheckIn)

	open, err := repo.GetOpenSession(ctx, employeeID, day.AddDate(0, 0, -1), day)
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, saved.ID, open.ID)

	out := time.Date(2024, 3, 12, 13, 0, 0, 0, setup.Loc)
	hours := 3.5
	closed, err := repo.CloseSession(ctx, saved.ID, out, attendance.StatusHalfDay, &hours)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHalfDay, closed.Status)
	assert.InDelta(t, 3.5, *closed.WorkedHours, 1e-9)

	_, err = repo.CloseSession(ctx, saved.ID, out.Add(time.Hour), attendance.StatusPresent, &hours)
	assert.ErrorIs(t, err, attendance.ErrNoOpenCheckIn)

	missing, err := repo.ListMissingCheckouts(ctx, day, day)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestAttendanceRepository_ConcurrentCheckIn(t *testing.T) {
	setup, employeeID := setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB, setup.Loc)

	day := time.Date(2024, 3, 12, 0, 0, 0, 0, setup.Loc)
	in := time.Date(2024, 3, 12, 9, 0, 0, 0, setup.Loc)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = repo.UpsertCheckIn(ctx, attendance.Record{EmployeeID: employeeID, Date: day, CheckIn: &in, Status: attendance.StatusPresent, Source: attendance.SourceDevice})
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, attendance.ErrDuplicateCheckIn)
	}
	assert.Equal(t, 1, succeeded)
}

func TestAttendanceRepository_CorrectionMerge(t *testing.T) {
	setup, employeeID := setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB, setup.Loc)

	day := time.Date(2024, 3, 11, 0, 0, 0, 0, setup.Loc)
	out := time.Date(2024, 3, 11, 18, 0, 0, 0, setup.Loc)

	created, err := repo.UpsertCorrection(ctx, attendance.Record{EmployeeID: employeeID, Date: day, CheckOut: &out, Status: attendance.StatusAbsent, Source: attendance.SourceRegularized})
	require.NoError(t, err)
	assert.Nil(t, created.CheckIn)

	late := time.Date(2024, 3, 11, 19, 0, 0, 0, setup.Loc)
	_, err = repo.UpsertCheckIn(ctx, attendance.Record{EmployeeID: employeeID, Date: day, CheckIn: &late, Status: attendance.StatusPresent, Source: attendance.SourceManual})
	assert.ErrorIs(t, err, attendance.ErrInvalidTimeSequence)

	in := time.Date(2024, 3, 11, 9, 0, 0, 0, setup.Loc)
	hours := 9.0
	merged, err := repo.UpsertCorrection(ctx, attendance.Record{EmployeeID: employeeID, Date: day, CheckIn: &in, Status: attendance.StatusPresent, WorkedHours: &hours, Source: attendance.SourceRegularized})
	require.NoError(t, err)
	assert.Equal(t, created.ID, merged.ID)
	require.NotNil(t, merged.CheckOut)
	assert.True(t, merged.CheckOut.Equal(out))
}

func TestAttendanceRepository_DayLockWithoutRow(t *testing.T) {
	setup, employeeID := setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB, setup.Loc)
	tx := postgresql.NewTxManager(setup.DB)

	day := time.Date(2024, 3, 12, 0, 0, 0, 0, setup.Loc)
	in := time.Date(2024, 3, 12, 9, 0, 0, 0, setup.Loc)
	out := time.Date(2024, 3, 12, 18, 0, 0, 0, setup.Loc)

	locked := make(chan struct{})
	release := make(chan struct{})
	correctionErr := make(chan error, 1)
	go func() {
		correctionErr <- tx.WithinTransaction(ctx, func(ctx context.Context) error {
			existing, err := repo.GetForUpdate(ctx, employeeID, day)
			if err != nil {
				return err
			}
			if existing != nil {
				return attendance.ErrDuplicateCheckIn
			}
			close(locked)
			<-release
			_, err = repo.UpsertCorrection(ctx, attendance.Record{
				EmployeeID: employeeID,
				Date:       day,
				CheckOut:   &out,
				Status:     attendance.StatusAbsent,
				Source:     attendance.SourceRegularized,
			})
			return err
		})
	}()
	<-locked

	type checkInResult struct {
		rec attendance.Record
		err error
	}
	checkedIn := make(chan checkInResult, 1)
	go func() {
		var res checkInResult
		res.err = tx.WithinTransaction(ctx, func(ctx context.Context) error {
			var err error
			res.rec, err = repo.UpsertCheckIn(ctx, attendance.Record{EmployeeID: employeeID, Date: day, CheckIn: &in, Status: attendance.StatusPresent, Source: attendance.SourceManual})
			return err
		})
		checkedIn <- res
	}()

	select {
	case <-checkedIn:
		t.Fatal("check-in wrote the day while a correction held it")
	case <-time.After(300 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-correctionErr)

	res := <-checkedIn
	require.NoError(t, res.err)
	require.NotNil(t, res.rec.CheckOut, "check-in must see the committed correction")
	assert.True(t, res.rec.CheckOut.Equal(out))
	assert.Equal(t, attendance.SourceRegularized, res.rec.Source)
}

func TestWFHRequestRepository_Lifecycle(t *testing.T) {
	setup, employeeID := setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewWFHRequestRepository(setup.DB, setup.Loc)
	day := time.Date(2024, 3, 12, 0, 0, 0, 0, setup.Loc)

	req, err := repo.Create(ctx, wfh.Request{EmployeeID: employeeID, RequestDate: day, Reason: "plumber", Status: wfh.StatusPending})
	require.NoError(t, err)

	_, err = repo.Create(ctx, wfh.Request{EmployeeID: employeeID, RequestDate: day, Reason: "again", Status: wfh.StatusPending})
	assert.ErrorIs(t, err, wfh.ErrDuplicateActiveRequest)

	reviewer, err := setup.CreateEmployee(ctx, "Admin", "hr", "2020-01-01")
	require.NoError(t, err)
	approved, err := repo.Review(ctx, req.ID, wfh.StatusApproved, reviewer, nil, time.Now())
	require.NoError(t, err)
	require.NotNil(t, approved.ApprovedBy)

	_, err = repo.Review(ctx, req.ID, wfh.StatusRejected, reviewer, nil, time.Now())
	assert.ErrorIs(t, err, wfh.ErrInvalidStateTransition)

	bypass, err := repo.FindBypass(ctx, employeeID, day)
	require.NoError(t, err)
	require.NotNil(t, bypass)

	att := postgresql.NewAttendanceRepository(setup.DB, setup.Loc)
	in := time.Date(2024, 3, 12, 9, 0, 0, 0, setup.Loc)
	rec, err := att.UpsertCheckIn(ctx, attendance.Record{EmployeeID: employeeID, Date: day, CheckIn: &in, Status: attendance.StatusPresent, Source: attendance.SourceManual, WFHRequestID: &req.ID})
	require.NoError(t, err)

	consumed, err := repo.Consume(ctx, req.ID, rec.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, wfh.StateConsumed, consumed.State())

	_, err = repo.Consume(ctx, req.ID, rec.ID, time.Now())
	assert.ErrorIs(t, err, wfh.ErrInvalidStateTransition)

	status := wfh.StateConsumed
	list, total, err := repo.List(ctx, wfh.WFHFilter{Status: &status, Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}

func TestRegularizationRepository_PendingUniqueness(t *testing.T) {
	setup, employeeID := setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewRegularizationRepository(setup.DB, setup.Loc)
	day := time.Date(2024, 3, 11, 0, 0, 0, 0, setup.Loc)

	req := regularization.Request{EmployeeID: employeeID, Date: day, Type: regularization.TypeSystemError, Reason: "device offline", Status: regularization.StatusPending}
	created, err := repo.Create(ctx, req)
	require.NoError(t, err)

	_, err = repo.Create(ctx, req)
	assert.ErrorIs(t, err, regularization.ErrDuplicatePendingRequest)

	reviewer, err := setup.CreateEmployee(ctx, "Admin", "hr", "2020-01-01")
	require.NoError(t, err)
	_, err = repo.Resolve(ctx, created.ID, regularization.StatusRejected, reviewer, nil, time.Now(), nil)
	require.NoError(t, err)

	_, err = repo.Resolve(ctx, created.ID, regularization.StatusApproved, reviewer, nil, time.Now(), nil)
	assert.ErrorIs(t, err, regularization.ErrInvalidStateTransition)

	_, err = repo.Create(ctx, req)
	assert.NoError(t, err)
}

func TestTxManager_RollsBack(t *testing.T) {
	setup, employeeID := setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB, setup.Loc)
	tx := postgresql.NewTxManager(setup.DB)
	day := time.Date(2024, 3, 12, 0, 0, 0, 0, setup.Loc)
	in := time.Date(2024, 3, 12, 9, 0, 0, 0, setup.Loc)

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := repo.UpsertCheckIn(ctx, attendance.Record{EmployeeID: employeeID, Date: day, CheckIn: &in, Status: attendance.StatusPresent, Source: attendance.SourceManual}); err != nil {
			return err
		}
		return wfh.ErrInvalidStateTransition
	})
	assert.ErrorIs(t, err, wfh.ErrInvalidStateTransition)

	rec, err := repo.GetByEmployeeAndDate(ctx, employeeID, day)
	require.NoError(t, err)
	assert.Nil(t, rec)
}
