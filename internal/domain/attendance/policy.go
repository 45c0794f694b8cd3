package attendance

import (
	"fmt"
	"slices"
	"time"
)

// Policy carries every attendance threshold. LateCutoff is an offset from local midnight.
// MaxClockSkew is how far a device-supplied stamp may drift from the reference clock;
// MaxShiftLength caps how long a session carried over from the previous day may run.
type Policy struct {
	Location             *time.Location
	MinimumWorkHours     float64
	LateCutoff           time.Duration
	WeekendDays          []time.Weekday
	GeofenceRadiusMeters float64
	IncompleteAsAbsent   bool
	MaxClockSkew         time.Duration
	MaxShiftLength       time.Duration
}

func DefaultPolicy() Policy {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.FixedZone("IST", 5*60*60+30*60)
	}
	return Policy{
		Location:             loc,
		MinimumWorkHours:     4,
		LateCutoff:           9*time.Hour + 55*time.Minute,
		WeekendDays:          []time.Weekday{time.Saturday, time.Sunday},
		GeofenceRadiusMeters: 500,
		MaxClockSkew:         5 * time.Minute,
		MaxShiftLength:       16 * time.Hour,
	}
}

func (p Policy) IsWeekend(d time.Weekday) bool {
	return slices.Contains(p.WeekendDays, d)
}

// ParseLateCutoff turns "HH:MM" into an offset from midnight.
func ParseLateCutoff(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("late cutoff %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
