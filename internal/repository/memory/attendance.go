package memory

import (
	"context"
	"slices"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
)

type attendanceRepository struct {
	s *Store
}

func NewAttendanceRepository(s *Store) attendance.AttendanceRepository {
	return &attendanceRepository{s: s}
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.attendance[id]
	if !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return rec, nil
}

func (r *attendanceRepository) byDay(employeeID string, date time.Time) (attendance.Record, bool) {
	id, ok := r.s.attendanceByDay[dayKey(employeeID, date)]
	if !ok {
		return attendance.Record{}, false
	}
	return r.s.attendance[id], true
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.byDay(employeeID, date)
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// GetForUpdate implements attendance.AttendanceRepository. Writers are already serialized
// inside a transaction, so this is a plain read.
func (r *attendanceRepository) GetForUpdate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	return r.GetByEmployeeAndDate(ctx, employeeID, date)
}

func (r *attendanceRepository) filter(match func(attendance.Record) bool) []attendance.Record {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []attendance.Record
	for _, rec := range r.s.attendance {
		if match(rec) {
			out = append(out, rec)
		}
	}
	slices.SortFunc(out, func(a, b attendance.Record) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		if a.EmployeeID < b.EmployeeID {
			return -1
		}
		if a.EmployeeID > b.EmployeeID {
			return 1
		}
		return 0
	})
	return out
}

func within(date, start, end time.Time) bool {
	k := calendar.Key(date)
	return k >= calendar.Key(start) && k <= calendar.Key(end)
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Record, error) {
	return r.filter(func(rec attendance.Record) bool {
		return rec.EmployeeID == employeeID && within(rec.Date, start, end)
	}), nil
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	return r.filter(func(rec attendance.Record) bool {
		return calendar.Key(rec.Date) == calendar.Key(date)
	}), nil
}

// ListMissingCheckouts implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListMissingCheckouts(ctx context.Context, start, end time.Time) ([]attendance.Record, error) {
	return r.filter(func(rec attendance.Record) bool {
		return rec.CheckIn != nil && rec.CheckOut == nil && within(rec.Date, start, end)
	}), nil
}

// GetOpenSession implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetOpenSession(ctx context.Context, employeeID string, from, to time.Time) (*attendance.Record, error) {
	open := r.filter(func(rec attendance.Record) bool {
		return rec.EmployeeID == employeeID && rec.CheckIn != nil && rec.CheckOut == nil && within(rec.Date, from, to)
	})
	if len(open) == 0 {
		return nil, nil
	}
	latest := open[len(open)-1]
	return &latest, nil
}

// UpsertCheckIn implements attendance.AttendanceRepository.
func (r *attendanceRepository) UpsertCheckIn(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	var saved attendance.Record
	err := r.s.write(ctx, func() error {
		now := time.Now()
		record.Date = r.s.day(record.Date)

		existing, ok := r.byDay(record.EmployeeID, record.Date)
		if !ok {
			record.ID = newID()
			record.CreatedAt = now
			record.UpdatedAt = now
			r.s.attendance[record.ID] = record
			r.s.attendanceByDay[dayKey(record.EmployeeID, record.Date)] = record.ID
			saved = record
			return nil
		}

		if existing.CheckIn != nil {
			return attendance.ErrDuplicateCheckIn
		}
		if existing.CheckOut != nil && !existing.CheckOut.After(*record.CheckIn) {
			return attendance.ErrInvalidTimeSequence
		}
		existing.CheckIn = record.CheckIn
		existing.Location = record.Location
		existing.WFHRequestID = record.WFHRequestID
		existing.Status = record.Status
		existing.WorkedHours = record.WorkedHours
		existing.UpdatedAt = now
		r.s.attendance[existing.ID] = existing
		saved = existing
		return nil
	})
	return saved, err
}

// CloseSession implements attendance.AttendanceRepository.
func (r *attendanceRepository) CloseSession(ctx context.Context, id string, checkOut time.Time, status attendance.Status, workedHours *float64) (attendance.Record, error) {
	var saved attendance.Record
	err := r.s.write(ctx, func() error {
		rec, ok := r.s.attendance[id]
		if !ok || rec.CheckOut != nil || rec.CheckIn == nil || !rec.CheckIn.Before(checkOut) {
			return attendance.ErrNoOpenCheckIn
		}
		rec.CheckOut = &checkOut
		rec.Status = status
		rec.WorkedHours = workedHours
		rec.UpdatedAt = time.Now()
		r.s.attendance[id] = rec
		saved = rec
		return nil
	})
	return saved, err
}

// UpdateClassification implements attendance.AttendanceRepository.
func (r *attendanceRepository) UpdateClassification(ctx context.Context, id string, status attendance.Status, workedHours *float64) error {
	return r.s.write(ctx, func() error {
		rec, ok := r.s.attendance[id]
		if !ok {
			return attendance.ErrAttendanceNotFound
		}
		rec.Status = status
		rec.WorkedHours = workedHours
		rec.UpdatedAt = time.Now()
		r.s.attendance[id] = rec
		return nil
	})
}

// UpsertCorrection implements attendance.AttendanceRepository.
func (r *attendanceRepository) UpsertCorrection(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	var saved attendance.Record
	err := r.s.write(ctx, func() error {
		now := time.Now()
		record.Date = r.s.day(record.Date)

		existing, ok := r.byDay(record.EmployeeID, record.Date)
		if !ok {
			record.ID = newID()
			record.CreatedAt = now
			record.UpdatedAt = now
			r.s.attendance[record.ID] = record
			r.s.attendanceByDay[dayKey(record.EmployeeID, record.Date)] = record.ID
			saved = record
			return nil
		}

		if record.CheckIn != nil {
			existing.CheckIn = record.CheckIn
		}
		if record.CheckOut != nil {
			existing.CheckOut = record.CheckOut
		}
		existing.Status = record.Status
		existing.WorkedHours = record.WorkedHours
		existing.Source = record.Source
		existing.UpdatedAt = now
		r.s.attendance[existing.ID] = existing
		saved = existing
		return nil
	})
	return saved, err
}
