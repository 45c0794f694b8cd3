package attendance

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	calendarsvc "github.com/cmlabs-hris/hris-attendance-go/internal/service/calendar"
)

type MaterializerImpl struct {
	employee.EmployeeRepository
	attendance.AttendanceRepository
	leave.GrantRepository
	resolver *calendarsvc.Resolver
	policy   attendance.Policy
	clock    clock.Clock
}

func NewMaterializer(
	employeeRepository employee.EmployeeRepository,
	attendanceRepository attendance.AttendanceRepository,
	grantRepository leave.GrantRepository,
	resolver *calendarsvc.Resolver,
	policy attendance.Policy,
	clk clock.Clock,
) attendance.Materializer {
	return &MaterializerImpl{
		EmployeeRepository:   employeeRepository,
		AttendanceRepository: attendanceRepository,
		GrantRepository:      grantRepository,
		resolver:             resolver,
		policy:               policy,
		clock:                clk,
	}
}

// window is everything needed to classify a run of days, fetched up front.
type window struct {
	employee employee.Employee
	joining  time.Time
	calendar *calendarsvc.Calendar
	grants   []leave.Grant
	now      time.Time
}

func (m *MaterializerImpl) load(ctx context.Context, emp employee.Employee, start, end time.Time) (window, error) {
	cal, err := m.resolver.ForRange(ctx, start, end)
	if err != nil {
		return window{}, err
	}

	grants, err := m.GrantRepository.ListApproved(ctx, emp.ID, start, end)
	if err != nil {
		return window{}, fmt.Errorf("failed to list approved leave: %w", err)
	}
	loc := m.policy.Location
	for i := range grants {
		grants[i].StartDate = calendar.Reanchor(grants[i].StartDate, loc)
		grants[i].EndDate = calendar.Reanchor(grants[i].EndDate, loc)
	}

	return window{
		employee: emp,
		joining:  calendar.Reanchor(emp.JoiningDate, loc),
		calendar: cal,
		grants:   grants,
		now:      m.clock.Now(),
	}, nil
}

// context resolves one day. Holiday beats weekend beats leave.
func (w window) context(day time.Time) attendance.DayContext {
	res := w.calendar.Resolve(w.joining, day)
	dc := attendance.DayContext{InScope: res.InScope}

	switch {
	case res.IsHoliday:
		dc.Status = attendance.StatusHoliday
		dc.HolidayName = res.HolidayName
	case res.IsWeekend:
		dc.Status = attendance.StatusWeekend
	default:
		for _, g := range w.grants {
			if g.Status == leave.GrantStatusApproved && g.Covers(day) {
				dc.Status = attendance.StatusLeave
				dc.LeaveType = g.Type
				break
			}
		}
	}
	return dc
}

// Materialize implements attendance.Materializer.
func (m *MaterializerImpl) Materialize(ctx context.Context, employeeID string, start, end time.Time) (iter.Seq[attendance.DailyRecord], error) {
	loc := m.policy.Location
	start = calendar.Reanchor(start, loc)
	end = calendar.Reanchor(end, loc)
	if start.After(end) {
		return nil, calendar.ErrInvalidDateRange
	}

	emp, err := m.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	joining := calendar.Reanchor(emp.JoiningDate, loc)
	if !emp.JoiningDate.IsZero() && start.Before(joining) {
		start = joining
	}
	if start.After(end) {
		return func(func(attendance.DailyRecord) bool) {}, nil
	}

	w, err := m.load(ctx, emp, start, end)
	if err != nil {
		return nil, err
	}

	records, err := m.AttendanceRepository.ListByEmployee(ctx, emp.ID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	byDate := make(map[string]attendance.Record, len(records))
	for _, r := range records {
		byDate[calendar.Key(r.Date)] = r
	}

	return func(yield func(attendance.DailyRecord) bool) {
		for day := range calendar.Days(start, end) {
			dc := w.context(day)
			if !dc.InScope {
				continue
			}
			var rec *attendance.Record
			if r, ok := byDate[calendar.Key(day)]; ok {
				rec = &r
			}
			if !yield(m.daily(emp.ID, day, rec, dc, w.now)) {
				return
			}
		}
	}, nil
}

// DayContext implements attendance.Materializer.
func (m *MaterializerImpl) DayContext(ctx context.Context, employeeID string, day time.Time) (attendance.DayContext, error) {
	day = calendar.Reanchor(day, m.policy.Location)

	emp, err := m.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.DayContext{}, fmt.Errorf("failed to get employee: %w", err)
	}

	w, err := m.load(ctx, emp, day, day)
	if err != nil {
		return attendance.DayContext{}, err
	}
	return w.context(day), nil
}

func (m *MaterializerImpl) daily(employeeID string, day time.Time, rec *attendance.Record, dc attendance.DayContext, now time.Time) attendance.DailyRecord {
	out := attendance.DailyRecord{
		Date:        day,
		EmployeeID:  employeeID,
		Source:      attendance.SourceSynthetic,
		HolidayName: dc.HolidayName,
		LeaveType:   dc.LeaveType,
	}
	in := attendance.ClassifyInput{Day: day, Context: dc, Now: now}
	if rec != nil {
		id := rec.ID
		out.RecordID = &id
		out.CheckIn = rec.CheckIn
		out.CheckOut = rec.CheckOut
		out.Source = rec.Source
		in.CheckIn = rec.CheckIn
		in.CheckOut = rec.CheckOut
	}

	c := Classify(in, m.policy)
	out.Status = c.Status
	out.WorkedHours = c.WorkedHours
	out.Incomplete = c.Incomplete
	return out
}
