package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/wfh"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/memory"
	calendarsvc "github.com/cmlabs-hris/hris-attendance-go/internal/service/calendar"
	wfhsvc "github.com/cmlabs-hris/hris-attendance-go/internal/service/wfh"
)

// hq sits in central Bengaluru.
var hq = office.Office{ID: "hq", Name: "Bengaluru HQ", Latitude: 12.9716, Longitude: 77.5946}

type fixture struct {
	store        *memory.Store
	clock        *clock.Manual
	policy       attendance.Policy
	records      attendance.AttendanceRepository
	materializer attendance.Materializer
	wfh          wfh.WFHService
	service      attendance.AttendanceService
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	policy := attendance.DefaultPolicy()
	clk := clock.NewManual(now)
	store := memory.NewStore(policy.Location)
	store.AddOffice(hq)
	store.AddEmployee(employee.Employee{
		ID:               "emp-1",
		FullName:         "Asha Rao",
		Department:       "engineering",
		JoiningDate:      localDay(2024, 1, 1),
		EmploymentStatus: employee.EmploymentStatusActive,
	})

	records := memory.NewAttendanceRepository(store)
	resolver := calendarsvc.NewResolver(memory.NewHolidayRepository(store), policy.WeekendDays)
	materializer := NewMaterializer(memory.NewEmployeeRepository(store), records, memory.NewGrantRepository(store), resolver, policy, clk)
	wfhService := wfhsvc.NewWFHService(memory.NewWFHRequestRepository(store), memory.NewOfficeRepository(store), policy.Location, clk)

	return &fixture{
		store:        store,
		clock:        clk,
		policy:       policy,
		records:      records,
		materializer: materializer,
		wfh:          wfhService,
		service: NewAttendanceService(
			memory.NewTxManager(store),
			records,
			memory.NewOfficeRepository(store),
			materializer,
			wfhService,
			policy,
			clk,
		),
	}
}

// metersNorth offsets hq's latitude by roughly d meters.
func metersNorth(d float64) (*float64, *float64) {
	lat := hq.Latitude + d/111194.93
	lon := hq.Longitude
	return &lat, &lon
}

func rfc3339(t *time.Time) *string {
	s := t.Format(time.RFC3339)
	return &s
}
