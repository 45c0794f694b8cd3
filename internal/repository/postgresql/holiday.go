package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type holidayRepository struct {
	db  *database.DB
	loc *time.Location
}

// ListBetween implements calendar.HolidayRepository.
func (r *holidayRepository) ListBetween(ctx context.Context, start, end time.Time) ([]calendar.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, date, name, is_optional
		FROM holidays
		WHERE date BETWEEN $1::date AND $2::date
		ORDER BY date ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, calendar.Key(start), calendar.Key(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	holidays := []calendar.Holiday{}
	for rows.Next() {
		var h calendar.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.IsOptional); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		h.Date = calendar.Reanchor(h.Date, r.loc)
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

func NewHolidayRepository(db *database.DB, loc *time.Location) calendar.HolidayRepository {
	return &holidayRepository{db: db, loc: loc}
}
