package geofence

import (
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/utils"
)

// Result is the nearest office to an attempted location. NearestOffice is nil when no
// office is configured.
type Result struct {
	NearestOffice  *office.Office
	DistanceMeters float64
}

// Evaluate returns the office with the smallest great-circle distance to (lat, lon).
func Evaluate(lat, lon float64, offices []office.Office) (Result, error) {
	if !utils.IsValidCoordinate(lat, lon) {
		return Result{}, attendance.ErrInvalidCoordinate
	}

	var res Result
	for i := range offices {
		o := offices[i]
		d := utils.CalculateHaversineDistance(lat, lon, o.Latitude, o.Longitude)
		if res.NearestOffice == nil || d < res.DistanceMeters {
			res = Result{NearestOffice: &o, DistanceMeters: d}
		}
	}
	return res, nil
}

// InRange reports whether the nearest office is within radius meters. The boundary is inside.
func InRange(res Result, radius float64) bool {
	return res.NearestOffice != nil && res.DistanceMeters <= radius
}
