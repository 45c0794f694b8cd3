package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/hris-attendance-go/internal/service/attendance"
	calendarService "github.com/cmlabs-hris/hris-attendance-go/internal/service/calendar"
	regularizationService "github.com/cmlabs-hris/hris-attendance-go/internal/service/regularization"
	reportService "github.com/cmlabs-hris/hris-attendance-go/internal/service/report"
	wfhService "github.com/cmlabs-hris/hris-attendance-go/internal/service/wfh"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

// Office coordinates in central Bengaluru; home is roughly 5 km north.
const (
	officeLat = 12.9716
	officeLon = 77.5946
	homeLat   = 13.0166
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type testServer struct {
	router *chi.Mux
	jwt    jwt.Service
	clock  *clock.Manual
}

// newTestServer wires every handler on a memory store. The clock reads Tuesday
// 2024-03-12 09:30 in the policy timezone.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	policy := attendance.DefaultPolicy()
	clk := clock.NewManual(time.Date(2024, 3, 12, 9, 30, 0, 0, policy.Location))

	store := memory.NewStore(policy.Location)
	store.AddOffice(office.Office{ID: "hq", Name: "Bengaluru HQ", Latitude: officeLat, Longitude: officeLon})
	for _, e := range []employee.Employee{
		{ID: "emp-1", FullName: "Asha Rao", Department: "engineering"},
		{ID: "emp-2", FullName: "Vikram Shah", Department: "engineering"},
	} {
		e.JoiningDate = time.Date(2024, 1, 1, 0, 0, 0, 0, policy.Location)
		e.EmploymentStatus = employee.EmploymentStatusActive
		store.AddEmployee(e)
	}

	txManager := memory.NewTxManager(store)
	records := memory.NewAttendanceRepository(store)
	employees := memory.NewEmployeeRepository(store)
	resolver := calendarService.NewResolver(memory.NewHolidayRepository(store), policy.WeekendDays)
	materializer := attendanceService.NewMaterializer(employees, records, memory.NewGrantRepository(store), resolver, policy, clk)
	wfhSvc := wfhService.NewWFHService(memory.NewWFHRequestRepository(store), memory.NewOfficeRepository(store), policy.Location, clk)
	attendanceSvc := attendanceService.NewAttendanceService(txManager, records, memory.NewOfficeRepository(store), materializer, wfhSvc, policy, clk)
	regularizationSvc := regularizationService.NewRegularizationService(txManager, memory.NewRegularizationRepository(store), records, materializer, policy, clk)
	reportSvc := reportService.NewReportService(employees, materializer, policy.Location, clk)

	jwtSvc := jwt.NewJWTService(handlerTestSecret, "1h")
	router := NewRouter(
		jwtSvc,
		NewAttendanceHandler(attendanceSvc, policy.Location),
		NewWFHHandler(wfhSvc, policy.Location),
		NewRegularizationHandler(regularizationSvc, policy.Location),
		NewReportHandler(reportSvc),
		RouterOptions{
			AllowedOrigins: []string{"http://localhost:3000"},
			Env:            "test",
			Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		},
	)

	return &testServer{router: router, jwt: jwtSvc, clock: clk}
}

func (s *testServer) token(t *testing.T, claims auth.Claims) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken(claims)
	require.NoError(t, err)
	return token
}

func (s *testServer) employeeToken(t *testing.T, employeeID string) string {
	return s.token(t, auth.Claims{UserID: "user-" + employeeID, EmployeeID: &employeeID})
}

func (s *testServer) adminToken(t *testing.T) string {
	return s.token(t, auth.Claims{UserID: "admin-1", IsAdmin: true})
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/api/v1/attendance/check-in", "", map[string]any{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/attendance/my", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAttendanceHandler_CheckInAndOut(t *testing.T) {
	s := newTestServer(t)
	token := s.employeeToken(t, "emp-1")

	rec, env := s.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, map[string]any{
		"latitude":  officeLat,
		"longitude": officeLon,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	checkedIn := decodeData[attendance.AttendanceResponse](t, env)
	assert.Equal(t, "emp-1", checkedIn.EmployeeID)
	assert.Equal(t, "2024-03-12", checkedIn.Date)
	assert.Equal(t, "manual", checkedIn.Source)

	rec, env = s.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, map[string]any{
		"latitude":  officeLat,
		"longitude": officeLon,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	s.clock.Advance(9 * time.Hour)
	rec, env = s.do(t, http.MethodPost, "/api/v1/attendance/check-out", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	checkedOut := decodeData[attendance.AttendanceResponse](t, env)
	assert.Equal(t, checkedIn.ID, checkedOut.ID)
	assert.Equal(t, "present", checkedOut.Status)
	require.NotNil(t, checkedOut.WorkedHours)
	assert.InDelta(t, 9.0, *checkedOut.WorkedHours, 0.001)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/attendance/check-out", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAttendanceHandler_CheckIn_Validation(t *testing.T) {
	s := newTestServer(t)
	token := s.employeeToken(t, "emp-1")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/check-in", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec2, env := s.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, map[string]any{
		"latitude": officeLat,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec2.Code)
	assert.Contains(t, env.Error.Details, "location")

	rec2, _ = s.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, map[string]any{
		"latitude":  120.0,
		"longitude": officeLon,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec2.Code)
}

func TestAttendanceHandler_CheckIn_CallerTimestamp(t *testing.T) {
	s := newTestServer(t)
	token := s.employeeToken(t, "emp-1")

	rec, env := s.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, map[string]any{
		"latitude":  officeLat,
		"longitude": officeLon,
		"timestamp": "2024-03-12T09:00:00+05:30",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "UNPROCESSABLE_ENTITY", env.Error.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, map[string]any{
		"latitude":  officeLat,
		"longitude": officeLon,
		"source":    "device",
		"timestamp": "2024-03-05T09:30:00+05:30",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, env = s.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, map[string]any{
		"latitude":  officeLat,
		"longitude": officeLon,
		"source":    "device",
		"timestamp": "2024-03-12T09:28:00+05:30",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	checkedIn := decodeData[attendance.AttendanceResponse](t, env)
	assert.Equal(t, "device", checkedIn.Source)
	require.NotNil(t, checkedIn.CheckIn)
	assert.Equal(t, "2024-03-12T09:28:00+05:30", *checkedIn.CheckIn)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/attendance/check-out", token, map[string]any{
		"source":    "device",
		"timestamp": "2024-03-12T18:30:00+05:30",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAttendanceHandler_CheckIn_RequiresEmployeeProfile(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodPost, "/api/v1/attendance/check-in", s.adminToken(t), map[string]any{
		"latitude":  officeLat,
		"longitude": officeLon,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAttendanceHandler_WFHBypass(t *testing.T) {
	s := newTestServer(t)
	token := s.employeeToken(t, "emp-1")
	home := map[string]any{"latitude": homeLat, "longitude": officeLon}

	rec, _ := s.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, home)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec, env := s.do(t, http.MethodPost, "/api/v1/wfh-requests", token, map[string]any{
		"request_date": "2024-03-12",
		"reason":       "plumber visit",
		"latitude":     homeLat,
		"longitude":    officeLon,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeData[struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}](t, env)
	assert.Equal(t, "pending", created.Status)

	// A pending request does not open the geofence.
	rec, _ = s.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, home)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/wfh-requests/"+created.ID+"/review", token, map[string]any{"decision": "approved"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = s.do(t, http.MethodPost, "/api/v1/wfh-requests/"+created.ID+"/review", s.adminToken(t), map[string]any{"decision": "approved"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "WFH request approved", env.Message)

	rec, env = s.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, home)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	checkedIn := decodeData[attendance.AttendanceResponse](t, env)
	require.NotNil(t, checkedIn.WFHRequestID)
	assert.Equal(t, created.ID, *checkedIn.WFHRequestID)

	rec, env = s.do(t, http.MethodGet, "/api/v1/wfh-requests/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	consumed := decodeData[struct {
		Status string `json:"status"`
		State  string `json:"state"`
	}](t, env)
	assert.Equal(t, "approved", consumed.Status)
	assert.Equal(t, "consumed", consumed.State)
}

func TestWFHHandler_OwnershipAndAdminRoutes(t *testing.T) {
	s := newTestServer(t)
	owner := s.employeeToken(t, "emp-1")
	other := s.employeeToken(t, "emp-2")

	rec, env := s.do(t, http.MethodPost, "/api/v1/wfh-requests", owner, map[string]any{
		"request_date": "2024-03-13",
		"reason":       "internet installation",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeData[struct {
		ID string `json:"id"`
	}](t, env)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/wfh-requests/"+created.ID, other, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/wfh-requests", other, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = s.do(t, http.MethodGet, "/api/v1/wfh-requests/my", other, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", string(env.Data))

	rec, env = s.do(t, http.MethodGet, "/api/v1/wfh-requests?status=pending", s.adminToken(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decodeData[[]struct {
		ID string `json:"id"`
	}](t, env)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/wfh-requests", owner, map[string]any{
		"request_date": "2024-03-13",
		"reason":       "again",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/wfh-requests", owner, map[string]any{
		"request_date": "2024-03-11",
		"reason":       "yesterday",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegularizationHandler_ApproveWritesAttendance(t *testing.T) {
	s := newTestServer(t)
	token := s.employeeToken(t, "emp-1")
	admin := s.adminToken(t)

	rec, env := s.do(t, http.MethodPost, "/api/v1/regularizations", token, map[string]any{
		"date":                "2024-03-11",
		"regularization_type": "wrong_timing",
		"reason":              "badge reader offline",
		"proposed_check_in":   "09:00",
		"proposed_check_out":  "18:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeData[struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}](t, env)
	assert.Equal(t, "pending", created.Status)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/regularizations", token, map[string]any{
		"date":                "2024-03-13",
		"regularization_type": "missing_checkin",
		"reason":              "tomorrow",
		"proposed_check_in":   "09:00",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/regularizations/"+created.ID+"/review", admin, map[string]any{"decision": "maybe"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, env = s.do(t, http.MethodPost, "/api/v1/regularizations/"+created.ID+"/review", admin, map[string]any{
		"decision": "approved",
		"comment":  "verified with security log",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	approved := decodeData[struct {
		Status       string  `json:"status"`
		AttendanceID *string `json:"attendance_id"`
	}](t, env)
	assert.Equal(t, "approved", approved.Status)
	require.NotNil(t, approved.AttendanceID)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/regularizations/"+created.ID+"/review", admin, map[string]any{"decision": "rejected"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, env = s.do(t, http.MethodGet, "/api/v1/attendance/classify?date=2024-03-11", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	day := decodeData[attendance.DailyRecordResponse](t, env)
	assert.Equal(t, "present", day.Status)
	assert.Equal(t, "regularized", day.Source)
	require.NotNil(t, day.RecordID)
	assert.Equal(t, *approved.AttendanceID, *day.RecordID)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/attendance/"+*approved.AttendanceID, s.employeeToken(t, "emp-2"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/attendance/"+*approved.AttendanceID, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAttendanceHandler_DailyViews(t *testing.T) {
	s := newTestServer(t)
	token := s.employeeToken(t, "emp-1")

	rec, env := s.do(t, http.MethodGet, "/api/v1/attendance/my?start_date=2024-03-04&end_date=2024-03-10", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	days := decodeData[[]attendance.DailyRecordResponse](t, env)
	require.Len(t, days, 7)
	assert.Equal(t, "absent", days[0].Status)
	assert.Equal(t, "synthetic", days[0].Source)
	assert.Equal(t, "weekend", days[5].Status)
	assert.Equal(t, "weekend", days[6].Status)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/attendance/my?start_date=2024-03-10&end_date=2024-03-04", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/attendance/classify?date=2024-03-11&employee_id=emp-2", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/attendance/classify?date=11-03-2024", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, env = s.do(t, http.MethodGet, "/api/v1/attendance/classify?date=2024-03-11&employee_id=emp-2", s.adminToken(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "emp-2", decodeData[attendance.DailyRecordResponse](t, env).EmployeeID)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/attendance/employees/emp-2?start_date=2024-03-04&end_date=2024-03-10", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/attendance/employees/emp-2?start_date=2024-03-04&end_date=2024-03-10", s.adminToken(t), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReportHandler_Scopes(t *testing.T) {
	s := newTestServer(t)
	token := s.employeeToken(t, "emp-1")
	admin := s.adminToken(t)

	rec, env := s.do(t, http.MethodGet, "/api/v1/reports/summary?start_date=2024-03-04&end_date=2024-03-10", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	summary := decodeData[struct {
		EmployeeID       *string `json:"employee_id"`
		TotalWorkingDays int     `json:"total_working_days"`
		AbsentDays       int     `json:"absent_days"`
		WeekendCount     int     `json:"weekend_count"`
	}](t, env)
	require.NotNil(t, summary.EmployeeID)
	assert.Equal(t, "emp-1", *summary.EmployeeID)
	assert.Equal(t, 5, summary.TotalWorkingDays)
	assert.Equal(t, 5, summary.AbsentDays)
	assert.Equal(t, 2, summary.WeekendCount)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/reports/summary?department=engineering&period=month", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/reports/summary?employee_id=emp-2&period=month", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/reports/summary?department=engineering&period=month", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/reports/summary?period=month", admin, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/reports/overview?date=2024-03-11", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = s.do(t, http.MethodGet, "/api/v1/reports/overview?date=2024-03-11", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	overview := decodeData[struct {
		TotalEmployees int `json:"total_employees"`
		AttendedCount  int `json:"attended_count"`
	}](t, env)
	assert.Equal(t, 2, overview.TotalEmployees)
	assert.Equal(t, 0, overview.AttendedCount)
}

func TestRegularizationHandler_AdminListDefaultsToPending(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)

	for _, employeeID := range []string{"emp-1", "emp-2"} {
		rec, _ := s.do(t, http.MethodPost, "/api/v1/regularizations", s.employeeToken(t, employeeID), map[string]any{
			"date":                "2024-03-11",
			"regularization_type": "missing_checkin",
			"reason":              "forgot to punch",
			"proposed_check_in":   "09:10",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec, env := s.do(t, http.MethodGet, "/api/v1/regularizations?employee_id=emp-2", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pending := decodeData[[]struct {
		ID string `json:"id"`
	}](t, env)
	require.Len(t, pending, 1)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/regularizations/"+pending[0].ID+"/review", admin, map[string]any{"decision": "rejected"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = s.do(t, http.MethodGet, "/api/v1/regularizations", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]struct {
		ID string `json:"id"`
	}](t, env), 1)

	rec, env = s.do(t, http.MethodGet, "/api/v1/regularizations?status=rejected", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]struct {
		ID string `json:"id"`
	}](t, env), 1)

	rec, env = s.do(t, http.MethodGet, "/api/v1/regularizations/my", s.employeeToken(t, "emp-2"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]struct {
		ID string `json:"id"`
	}](t, env), 1)
}
