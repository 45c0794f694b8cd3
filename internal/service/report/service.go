package report

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	"golang.org/x/sync/errgroup"
)

// maxParallel bounds how many employees are materialized at once for team reports.
const maxParallel = 8

type ReportServiceImpl struct {
	employee.EmployeeRepository
	materializer attendance.Materializer
	loc          *time.Location
	clock        clock.Clock
}

func NewReportService(employeeRepository employee.EmployeeRepository, materializer attendance.Materializer, loc *time.Location, clk clock.Clock) report.ReportService {
	return &ReportServiceImpl{
		EmployeeRepository: employeeRepository,
		materializer:       materializer,
		loc:                loc,
		clock:              clk,
	}
}

func (s *ReportServiceImpl) window(req report.SummaryRequest) (time.Time, time.Time, error) {
	if req.Period != nil {
		return calendar.PeriodRange(*req.Period, s.clock.Now(), s.loc)
	}
	start, err := calendar.ParseDate(*req.StartDate, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := calendar.ParseDate(*req.EndDate, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// Summarize implements report.ReportService.
func (s *ReportServiceImpl) Summarize(ctx context.Context, req report.SummaryRequest) (report.Summary, error) {
	if err := req.Validate(); err != nil {
		return report.Summary{}, err
	}
	start, end, err := s.window(req)
	if err != nil {
		return report.Summary{}, err
	}

	summary := report.Summary{
		EmployeeID: req.EmployeeID,
		Department: req.Department,
		StartDate:  start,
		EndDate:    end,
	}

	if req.EmployeeID != nil && *req.EmployeeID != "" {
		days, err := s.materializer.Materialize(ctx, *req.EmployeeID, start, end)
		if err != nil {
			return report.Summary{}, err
		}
		summary.Counts = Aggregate(days)
		return summary, nil
	}

	employees, err := s.EmployeeRepository.ListByDepartment(ctx, *req.Department)
	if err != nil {
		return report.Summary{}, fmt.Errorf("failed to list department employees: %w", err)
	}

	rows := make([]report.EmployeeSummary, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i, emp := range employees {
		g.Go(func() error {
			days, err := s.materializer.Materialize(gctx, emp.ID, start, end)
			if err != nil {
				return fmt.Errorf("employee %s: %w", emp.ID, err)
			}
			rows[i] = report.EmployeeSummary{
				EmployeeID:   emp.ID,
				EmployeeName: emp.FullName,
				Counts:       Aggregate(days),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report.Summary{}, err
	}

	for _, row := range rows {
		summary.Counts.Add(row.Counts)
	}
	summary.Employees = rows
	return summary, nil
}

// DailyOverview implements report.ReportService. Employees who had not joined yet on the
// date are left out entirely.
func (s *ReportServiceImpl) DailyOverview(ctx context.Context, req report.OverviewRequest) (report.Overview, error) {
	if err := req.Validate(); err != nil {
		return report.Overview{}, err
	}

	date := calendar.Normalize(s.clock.Now(), s.loc)
	if req.Date != nil {
		d, err := calendar.ParseDate(*req.Date, s.loc)
		if err != nil {
			return report.Overview{}, err
		}
		date = d
	}

	employees, err := s.EmployeeRepository.ListActive(ctx)
	if err != nil {
		return report.Overview{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	days := make([]*attendance.DailyRecord, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i, emp := range employees {
		g.Go(func() error {
			seq, err := s.materializer.Materialize(gctx, emp.ID, date, date)
			if err != nil {
				return fmt.Errorf("employee %s: %w", emp.ID, err)
			}
			for d := range seq {
				days[i] = &d
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report.Overview{}, err
	}

	o := report.Overview{Date: date}
	for _, d := range days {
		if d == nil {
			continue
		}
		o.TotalEmployees++
		switch d.Status {
		case attendance.StatusWeekend, attendance.StatusHoliday:
			o.OffDayCount++
		case attendance.StatusLeave:
			o.LeaveCount++
		case attendance.StatusAbsent:
			o.AbsentCount++
		case attendance.StatusPresent:
			o.AttendedCount++
			o.OnTimeCount++
		case attendance.StatusLate:
			o.AttendedCount++
			o.LateCount++
		case attendance.StatusHalfDay:
			o.AttendedCount++
			o.HalfDayCount++
		}
		if d.Incomplete {
			o.IncompleteCount++
		}
	}
	o.ExpectedCount = o.TotalEmployees - o.OffDayCount
	o.AttendanceRate = report.Percentage(o.AttendedCount, o.ExpectedCount)
	o.PunctualityRate = report.Percentage(o.OnTimeCount, o.AttendedCount)
	return o, nil
}
