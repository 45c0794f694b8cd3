package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type grantRepository struct {
	db  *database.DB
	loc *time.Location
}

// ListApproved implements leave.GrantRepository.
func (r *grantRepository) ListApproved(ctx context.Context, employeeID string, start, end time.Time) ([]leave.Grant, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, start_date, end_date, leave_type, status
		FROM leave_grants
		WHERE employee_id = $1
		  AND status = 'approved'
		  AND start_date <= $3::date
		  AND end_date >= $2::date
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, calendar.Key(start), calendar.Key(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query leave grants: %w", err)
	}
	defer rows.Close()

	grants := []leave.Grant{}
	for rows.Next() {
		var g leave.Grant
		if err := rows.Scan(&g.ID, &g.EmployeeID, &g.StartDate, &g.EndDate, &g.Type, &g.Status); err != nil {
			return nil, fmt.Errorf("failed to scan leave grant: %w", err)
		}
		g.StartDate = calendar.Reanchor(g.StartDate, r.loc)
		g.EndDate = calendar.Reanchor(g.EndDate, r.loc)
		grants = append(grants, g)
	}
	return grants, rows.Err()
}

func NewGrantRepository(db *database.DB, loc *time.Location) leave.GrantRepository {
	return &grantRepository{db: db, loc: loc}
}
