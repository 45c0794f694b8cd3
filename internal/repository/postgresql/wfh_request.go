package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/wfh"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const wfhActiveConstraint = "wfh_requests_active_key"

const wfhColumns = `
	id, employee_id, request_date, requested_check_in_time, reason, status,
	attempted_latitude, attempted_longitude, nearest_office_id, nearest_office_name, distance_from_office,
	approved_by, reviewed_by, review_comment, reviewed_at, consumed_at, consumed_attendance_id,
	created_at, updated_at`

type wfhRequestRepository struct {
	db  *database.DB
	loc *time.Location
}

func (r *wfhRequestRepository) scan(row pgx.Row) (wfh.Request, error) {
	var req wfh.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.RequestDate, &req.RequestedCheckInTime, &req.Reason, &req.Status,
		&req.AttemptedLatitude, &req.AttemptedLongitude, &req.NearestOfficeID, &req.NearestOfficeName, &req.DistanceFromOffice,
		&req.ApprovedBy, &req.ReviewedBy, &req.ReviewComment, &req.ReviewedAt, &req.ConsumedAt, &req.ConsumedAttendanceID,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return wfh.Request{}, err
	}
	req.RequestDate = calendar.Reanchor(req.RequestDate, r.loc)
	return req, nil
}

// Create implements wfh.WFHRequestRepository.
func (r *wfhRequestRepository) Create(ctx context.Context, req wfh.Request) (wfh.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO wfh_requests (
			employee_id, request_date, requested_check_in_time, reason, status,
			attempted_latitude, attempted_longitude, nearest_office_id, nearest_office_name, distance_from_office
		) VALUES (
			$1, $2::date, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING ` + wfhColumns

	created, err := r.scan(q.QueryRow(ctx, query,
		req.EmployeeID,
		calendar.Key(req.RequestDate),
		req.RequestedCheckInTime,
		req.Reason,
		req.Status,
		req.AttemptedLatitude,
		req.AttemptedLongitude,
		req.NearestOfficeID,
		req.NearestOfficeName,
		req.DistanceFromOffice,
	))
	if err != nil {
		if isUniqueViolation(err, wfhActiveConstraint) {
			return wfh.Request{}, wfh.ErrDuplicateActiveRequest
		}
		return wfh.Request{}, fmt.Errorf("failed to create wfh request: %w", err)
	}
	return created, nil
}

// GetByID implements wfh.WFHRequestRepository.
func (r *wfhRequestRepository) GetByID(ctx context.Context, id string) (wfh.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + wfhColumns + ` FROM wfh_requests WHERE id = $1`

	req, err := r.scan(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return wfh.Request{}, wfh.ErrRequestNotFound
		}
		return wfh.Request{}, fmt.Errorf("failed to get wfh request by ID: %w", err)
	}
	return req, nil
}

// List implements wfh.WFHRequestRepository. The consumed state is derived from consumed_at.
func (r *wfhRequestRepository) List(ctx context.Context, filter wfh.WFHFilter) ([]wfh.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		switch *filter.Status {
		case wfh.StateConsumed:
			baseWhere += " AND status = 'approved' AND consumed_at IS NOT NULL"
		case string(wfh.StatusApproved):
			baseWhere += " AND status = 'approved' AND consumed_at IS NULL"
		default:
			baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
			args = append(args, *filter.Status)
			argIdx++
		}
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND request_date >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND request_date <= $%d::date", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	// Count total
	countQuery := "SELECT COUNT(*) FROM wfh_requests WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count wfh requests: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM wfh_requests
		WHERE %s
		ORDER BY request_date DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, wfhColumns, baseWhere, argIdx, argIdx+1)

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query wfh requests: %w", err)
	}
	defer rows.Close()

	requests := []wfh.Request{}
	for rows.Next() {
		req, err := r.scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan wfh request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, total, rows.Err()
}

// Review implements wfh.WFHRequestRepository.
func (r *wfhRequestRepository) Review(ctx context.Context, id string, status wfh.Status, reviewerID string, comment *string, reviewedAt time.Time) (wfh.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE wfh_requests SET
			status         = $2,
			reviewed_by    = $3,
			approved_by    = CASE WHEN $2 = 'approved' THEN $3::uuid ELSE NULL END,
			review_comment = $4,
			reviewed_at    = $5,
			updated_at     = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + wfhColumns

	reviewed, err := r.scan(q.QueryRow(ctx, query, id, status, reviewerID, comment, reviewedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return wfh.Request{}, r.transitionError(ctx, id)
		}
		return wfh.Request{}, fmt.Errorf("failed to review wfh request: %w", err)
	}
	return reviewed, nil
}

// Consume implements wfh.WFHRequestRepository.
func (r *wfhRequestRepository) Consume(ctx context.Context, id string, attendanceID string, consumedAt time.Time) (wfh.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE wfh_requests SET
			consumed_at            = $3,
			consumed_attendance_id = $2,
			updated_at             = NOW()
		WHERE id = $1 AND status = 'approved' AND consumed_at IS NULL
		RETURNING ` + wfhColumns

	consumed, err := r.scan(q.QueryRow(ctx, query, id, attendanceID, consumedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return wfh.Request{}, r.transitionError(ctx, id)
		}
		return wfh.Request{}, fmt.Errorf("failed to consume wfh request: %w", err)
	}
	return consumed, nil
}

// transitionError tells a missing request apart from one in the wrong state.
func (r *wfhRequestRepository) transitionError(ctx context.Context, id string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return wfh.ErrInvalidStateTransition
}

// FindBypass implements wfh.WFHRequestRepository.
func (r *wfhRequestRepository) FindBypass(ctx context.Context, employeeID string, date time.Time) (*wfh.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + wfhColumns + `
		FROM wfh_requests
		WHERE employee_id = $1
		  AND request_date = $2::date
		  AND status = 'approved'
		  AND consumed_at IS NULL
		LIMIT 1`

	req, err := r.scan(q.QueryRow(ctx, query, employeeID, calendar.Key(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find wfh bypass: %w", err)
	}
	return &req, nil
}

func NewWFHRequestRepository(db *database.DB, loc *time.Location) wfh.WFHRequestRepository {
	return &wfhRequestRepository{db: db, loc: loc}
}
