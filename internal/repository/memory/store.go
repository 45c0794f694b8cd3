// Package memory keeps every repository in process. It backs the service tests and
// STORE=memory deployments; nothing survives a restart.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/regularization"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/wfh"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
)

type Store struct {
	// txMu serializes writers so a failed transaction can restore its snapshot.
	txMu sync.Mutex
	mu   sync.RWMutex
	loc  *time.Location

	employees       map[string]employee.Employee
	offices         []office.Office
	holidays        []calendar.Holiday
	grants          []leave.Grant
	attendance      map[string]attendance.Record
	attendanceByDay map[string]string
	wfh             map[string]wfh.Request
	regularizations map[string]regularization.Request
}

func NewStore(loc *time.Location) *Store {
	return &Store{
		loc:             loc,
		employees:       make(map[string]employee.Employee),
		attendance:      make(map[string]attendance.Record),
		attendanceByDay: make(map[string]string),
		wfh:             make(map[string]wfh.Request),
		regularizations: make(map[string]regularization.Request),
	}
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func (s *Store) day(t time.Time) time.Time {
	return calendar.Reanchor(t, s.loc)
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + calendar.Key(date)
}

// AddEmployee seeds the employee directory.
func (s *Store) AddEmployee(e employee.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.JoiningDate = s.day(e.JoiningDate)
	s.employees[e.ID] = e
}

func (s *Store) AddOffice(o office.Office) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offices = append(s.offices, o)
}

func (s *Store) AddHoliday(h calendar.Holiday) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h.Date = s.day(h.Date)
	s.holidays = append(s.holidays, h)
}

func (s *Store) AddGrant(g leave.Grant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g.StartDate = s.day(g.StartDate)
	g.EndDate = s.day(g.EndDate)
	s.grants = append(s.grants, g)
}

type txKey struct{}

type snapshot struct {
	attendance      map[string]attendance.Record
	attendanceByDay map[string]string
	wfh             map[string]wfh.Request
	regularizations map[string]regularization.Request
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		attendance:      maps.Clone(s.attendance),
		attendanceByDay: maps.Clone(s.attendanceByDay),
		wfh:             maps.Clone(s.wfh),
		regularizations: maps.Clone(s.regularizations),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attendance = snap.attendance
	s.attendanceByDay = snap.attendanceByDay
	s.wfh = snap.wfh
	s.regularizations = snap.regularizations
}

// write runs fn under the write lock, joining the caller's transaction when there is one.
func (s *Store) write(ctx context.Context, fn func() error) error {
	if ctx.Value(txKey{}) == nil {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

type txManager struct {
	s *Store
}

// WithinTransaction implements database.TxManager. Writers are serialized for the duration
// of fn and an error restores the state seen on entry.
func (m *txManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	snap := m.s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.s.restore(snap)
		return err
	}
	return nil
}

func NewTxManager(s *Store) database.TxManager {
	return &txManager{s: s}
}
