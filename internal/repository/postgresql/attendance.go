package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceSequenceConstraint = "attendances_sequence_check"

const attendanceColumns = `
	id, employee_id, date, check_in, check_out, status, worked_hours,
	latitude, longitude, source, wfh_request_id, created_at, updated_at`

type attendanceRepository struct {
	db  *database.DB
	loc *time.Location
}

func (a *attendanceRepository) scan(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	var lat, lon *float64
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckIn, &rec.CheckOut, &rec.Status, &rec.WorkedHours,
		&lat, &lon, &rec.Source, &rec.WFHRequestID, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, err
	}
	rec.Date = calendar.Reanchor(rec.Date, a.loc)
	if lat != nil && lon != nil {
		rec.Location = &attendance.Location{Latitude: *lat, Longitude: *lon}
	}
	return rec, nil
}

func (a *attendanceRepository) list(ctx context.Context, query string, args ...interface{}) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []attendance.Record{}
	for rows.Next() {
		rec, err := a.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func coordinates(rec attendance.Record) (*float64, *float64) {
	if rec.Location == nil {
		return nil, nil
	}
	return &rec.Location.Latitude, &rec.Location.Longitude
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE id = $1`

	rec, err := a.scan(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}
	return rec, nil
}

// lockDay takes a transaction-scoped advisory lock on (employee, date). Writers serialize
// on the day through it even while no row exists yet, which a row lock cannot do.
// Outside a transaction the lock is released as soon as the statement ends.
func lockDay(ctx context.Context, q database.Querier, employeeID string, date time.Time) error {
	query := `SELECT pg_advisory_xact_lock(hashtextextended($1::text || '/' || $2::text, 0))`
	if _, err := q.Exec(ctx, query, employeeID, calendar.Key(date)); err != nil {
		return fmt.Errorf("failed to lock attendance day: %w", err)
	}
	return nil
}

func (a *attendanceRepository) getByDay(ctx context.Context, employeeID string, date time.Time, lock bool) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	if lock {
		if err := lockDay(ctx, q, employeeID, date); err != nil {
			return nil, err
		}
	}

	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND date = $2::date`
	if lock {
		query += ` FOR UPDATE`
	}

	rec, err := a.scan(q.QueryRow(ctx, query, employeeID, calendar.Key(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No record for the day
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	return &rec, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	return a.getByDay(ctx, employeeID, date, false)
}

// GetForUpdate implements attendance.AttendanceRepository. The day lock is held even when
// the day has no row, so a first check-in waits for the caller's transaction.
func (a *attendanceRepository) GetForUpdate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	return a.getByDay(ctx, employeeID, date, true)
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Record, error) {
	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND date BETWEEN $2::date AND $3::date
		ORDER BY date ASC`

	records, err := a.list(ctx, query, employeeID, calendar.Key(start), calendar.Key(end))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by employee: %w", err)
	}
	return records, nil
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE date = $1::date
		ORDER BY employee_id ASC`

	records, err := a.list(ctx, query, calendar.Key(date))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	return records, nil
}

// ListMissingCheckouts implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListMissingCheckouts(ctx context.Context, start, end time.Time) ([]attendance.Record, error) {
	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE check_in IS NOT NULL
		  AND check_out IS NULL
		  AND date BETWEEN $1::date AND $2::date
		ORDER BY date ASC, employee_id ASC`

	records, err := a.list(ctx, query, calendar.Key(start), calendar.Key(end))
	if err != nil {
		return nil, fmt.Errorf("failed to list missing checkouts: %w", err)
	}
	return records, nil
}

// GetOpenSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetOpenSession(ctx context.Context, employeeID string, from, to time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND check_in IS NOT NULL
		  AND check_out IS NULL
		  AND date BETWEEN $2::date AND $3::date
		ORDER BY date DESC
		LIMIT 1`

	rec, err := a.scan(q.QueryRow(ctx, query, employeeID, calendar.Key(from), calendar.Key(to)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}
	return &rec, nil
}

// UpsertCheckIn implements attendance.AttendanceRepository. The conflict branch only fires
// while check_in is still empty, so a concurrent second check-in returns no row.
func (a *attendanceRepository) UpsertCheckIn(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)
	lat, lon := coordinates(record)

	if err := lockDay(ctx, q, record.EmployeeID, record.Date); err != nil {
		return attendance.Record{}, err
	}

	query := `
		INSERT INTO attendances (
			employee_id, date, check_in, status, worked_hours,
			latitude, longitude, source, wfh_request_id
		) VALUES (
			$1, $2::date, $3, $4, $5, $6, $7, $8, $9
		)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			check_in       = EXCLUDED.check_in,
			status         = EXCLUDED.status,
			worked_hours   = EXCLUDED.worked_hours,
			latitude       = EXCLUDED.latitude,
			longitude      = EXCLUDED.longitude,
			wfh_request_id = EXCLUDED.wfh_request_id,
			updated_at     = NOW()
		WHERE attendances.check_in IS NULL
		RETURNING ` + attendanceColumns

	saved, err := a.scan(q.QueryRow(ctx, query,
		record.EmployeeID,
		calendar.Key(record.Date),
		record.CheckIn,
		record.Status,
		record.WorkedHours,
		lat,
		lon,
		record.Source,
		record.WFHRequestID,
	))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return attendance.Record{}, attendance.ErrDuplicateCheckIn
		case isCheckViolation(err, attendanceSequenceConstraint):
			return attendance.Record{}, attendance.ErrInvalidTimeSequence
		}
		return attendance.Record{}, fmt.Errorf("failed to upsert check-in: %w", err)
	}
	return saved, nil
}

// CloseSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) CloseSession(ctx context.Context, id string, checkOut time.Time, status attendance.Status, workedHours *float64) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances SET
			check_out    = $2,
			status       = $3,
			worked_hours = $4,
			updated_at   = NOW()
		WHERE id = $1
		  AND check_in IS NOT NULL
		  AND check_out IS NULL
		  AND check_in < $2
		RETURNING ` + attendanceColumns

	saved, err := a.scan(q.QueryRow(ctx, query, id, checkOut, status, workedHours))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrNoOpenCheckIn
		}
		return attendance.Record{}, fmt.Errorf("failed to close session: %w", err)
	}
	return saved, nil
}

// UpdateClassification implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateClassification(ctx context.Context, id string, status attendance.Status, workedHours *float64) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances SET
			status       = $2,
			worked_hours = $3,
			updated_at   = NOW()
		WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, status, workedHours)
	if err != nil {
		return fmt.Errorf("failed to update classification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// UpsertCorrection implements attendance.AttendanceRepository. A nil stamp keeps what is
// already stored.
func (a *attendanceRepository) UpsertCorrection(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	if err := lockDay(ctx, q, record.EmployeeID, record.Date); err != nil {
		return attendance.Record{}, err
	}

	query := `
		INSERT INTO attendances (
			employee_id, date, check_in, check_out, status, worked_hours, source
		) VALUES (
			$1, $2::date, $3, $4, $5, $6, $7
		)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			check_in     = COALESCE(EXCLUDED.check_in, attendances.check_in),
			check_out    = COALESCE(EXCLUDED.check_out, attendances.check_out),
			status       = EXCLUDED.status,
			worked_hours = EXCLUDED.worked_hours,
			source       = EXCLUDED.source,
			updated_at   = NOW()
		RETURNING ` + attendanceColumns

	saved, err := a.scan(q.QueryRow(ctx, query,
		record.EmployeeID,
		calendar.Key(record.Date),
		record.CheckIn,
		record.CheckOut,
		record.Status,
		record.WorkedHours,
		record.Source,
	))
	if err != nil {
		if isCheckViolation(err, attendanceSequenceConstraint) {
			return attendance.Record{}, attendance.ErrInvalidTimeSequence
		}
		return attendance.Record{}, fmt.Errorf("failed to upsert correction: %w", err)
	}
	return saved, nil
}

func NewAttendanceRepository(db *database.DB, loc *time.Location) attendance.AttendanceRepository {
	return &attendanceRepository{db: db, loc: loc}
}
