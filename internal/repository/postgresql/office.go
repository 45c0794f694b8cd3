package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type officeRepository struct {
	db *database.DB
}

// List implements office.OfficeRepository.
func (r *officeRepository) List(ctx context.Context) ([]office.Office, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, latitude, longitude
		FROM offices
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query offices: %w", err)
	}
	defer rows.Close()

	offices := []office.Office{}
	for rows.Next() {
		var o office.Office
		if err := rows.Scan(&o.ID, &o.Name, &o.Latitude, &o.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan office: %w", err)
		}
		offices = append(offices, o)
	}
	return offices, rows.Err()
}

func NewOfficeRepository(db *database.DB) office.OfficeRepository {
	return &officeRepository{db: db}
}
