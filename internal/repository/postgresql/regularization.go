package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/regularization"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const regularizationPendingConstraint = "regularizations_pending_key"

const regularizationColumns = `
	id, employee_id, date, regularization_type, reason, proposed_check_in, proposed_check_out,
	status, reviewed_by, review_comment, reviewed_at, attendance_id, created_at, updated_at`

type regularizationRepository struct {
	db  *database.DB
	loc *time.Location
}

func (r *regularizationRepository) scan(row pgx.Row) (regularization.Request, error) {
	var req regularization.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.Date, &req.Type, &req.Reason, &req.ProposedCheckIn, &req.ProposedCheckOut,
		&req.Status, &req.ReviewedBy, &req.ReviewComment, &req.ReviewedAt, &req.AttendanceID, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return regularization.Request{}, err
	}
	req.Date = calendar.Reanchor(req.Date, r.loc)
	return req, nil
}

// Create implements regularization.RegularizationRepository.
func (r *regularizationRepository) Create(ctx context.Context, req regularization.Request) (regularization.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO regularizations (
			employee_id, date, regularization_type, reason, proposed_check_in, proposed_check_out, status
		) VALUES (
			$1, $2::date, $3, $4, $5, $6, $7
		) RETURNING ` + regularizationColumns

	created, err := r.scan(q.QueryRow(ctx, query,
		req.EmployeeID,
		calendar.Key(req.Date),
		req.Type,
		req.Reason,
		req.ProposedCheckIn,
		req.ProposedCheckOut,
		req.Status,
	))
	if err != nil {
		if isUniqueViolation(err, regularizationPendingConstraint) {
			return regularization.Request{}, regularization.ErrDuplicatePendingRequest
		}
		return regularization.Request{}, fmt.Errorf("failed to create regularization: %w", err)
	}
	return created, nil
}

func (r *regularizationRepository) get(ctx context.Context, id string, lock bool) (regularization.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + regularizationColumns + ` FROM regularizations WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	req, err := r.scan(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return regularization.Request{}, regularization.ErrRequestNotFound
		}
		return regularization.Request{}, fmt.Errorf("failed to get regularization by ID: %w", err)
	}
	return req, nil
}

// GetByID implements regularization.RegularizationRepository.
func (r *regularizationRepository) GetByID(ctx context.Context, id string) (regularization.Request, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate implements regularization.RegularizationRepository.
func (r *regularizationRepository) GetForUpdate(ctx context.Context, id string) (regularization.Request, error) {
	return r.get(ctx, id, true)
}

// List implements regularization.RegularizationRepository.
func (r *regularizationRepository) List(ctx context.Context, filter regularization.RegularizationFilter) ([]regularization.Request, int64, error) {
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
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND date >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND date <= $%d::date", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	// Count total
	countQuery := "SELECT COUNT(*) FROM regularizations WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count regularizations: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM regularizations
		WHERE %s
		ORDER BY date DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, regularizationColumns, baseWhere, argIdx, argIdx+1)

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query regularizations: %w", err)
	}
	defer rows.Close()

	requests := []regularization.Request{}
	for rows.Next() {
		req, err := r.scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan regularization: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, total, rows.Err()
}

// Resolve implements regularization.RegularizationRepository.
func (r *regularizationRepository) Resolve(ctx context.Context, id string, status regularization.Status, reviewerID string, comment *string, reviewedAt time.Time, attendanceID *string) (regularization.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE regularizations SET
			status         = $2,
			reviewed_by    = $3,
			review_comment = $4,
			reviewed_at    = $5,
			attendance_id  = $6,
			updated_at     = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + regularizationColumns

	resolved, err := r.scan(q.QueryRow(ctx, query, id, status, reviewerID, comment, reviewedAt, attendanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return regularization.Request{}, getErr
			}
			return regularization.Request{}, regularization.ErrInvalidStateTransition
		}
		return regularization.Request{}, fmt.Errorf("failed to resolve regularization: %w", err)
	}
	return resolved, nil
}

func NewRegularizationRepository(db *database.DB, loc *time.Location) regularization.RegularizationRepository {
	return &regularizationRepository{db: db, loc: loc}
}
