package geofence

import (
	"math"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var offices = []office.Office{
	{ID: "blr", Name: "Bengaluru", Latitude: 12.9716, Longitude: 77.5946},
	{ID: "del", Name: "Delhi", Latitude: 28.6139, Longitude: 77.2090},
}

func TestEvaluate_PicksNearest(t *testing.T) {
	res, err := Evaluate(28.62, 77.21, offices)
	require.NoError(t, err)
	require.NotNil(t, res.NearestOffice)
	assert.Equal(t, "del", res.NearestOffice.ID)
	assert.Less(t, res.DistanceMeters, 1000.0)
}

func TestEvaluate_AtOffice(t *testing.T) {
	res, err := Evaluate(12.9716, 77.5946, offices)
	require.NoError(t, err)
	assert.Equal(t, "blr", res.NearestOffice.ID)
	assert.InDelta(t, 0, res.DistanceMeters, 1e-6)
	assert.True(t, InRange(res, 500))
}

func TestEvaluate_TwoKilometresOut(t *testing.T) {
	// ~2000 m due north of the Bengaluru office.
	lat := 12.9716 + 2000/111194.93
	res, err := Evaluate(lat, 77.5946, offices)
	require.NoError(t, err)
	assert.InDelta(t, 2000, res.DistanceMeters, 1)
	assert.False(t, InRange(res, 500))
	assert.True(t, InRange(res, 2500))
}

func TestEvaluate_InvalidCoordinates(t *testing.T) {
	cases := [][2]float64{{91, 0}, {-90.5, 0}, {0, 180.1}, {0, -181}, {math.NaN(), 0}}
	for _, c := range cases {
		_, err := Evaluate(c[0], c[1], offices)
		assert.ErrorIs(t, err, attendance.ErrInvalidCoordinate, "lat=%v lon=%v", c[0], c[1])
	}
}

func TestEvaluate_NoOffices(t *testing.T) {
	res, err := Evaluate(10, 10, nil)
	require.NoError(t, err)
	assert.Nil(t, res.NearestOffice)
	assert.False(t, InRange(res, 1e9))
}

func TestEvaluate_NearestIsACopy(t *testing.T) {
	list := []office.Office{{ID: "a", Latitude: 1, Longitude: 1}}
	res, err := Evaluate(1, 1, list)
	require.NoError(t, err)
	res.NearestOffice.Name = "changed"
	assert.Empty(t, list[0].Name)
}
