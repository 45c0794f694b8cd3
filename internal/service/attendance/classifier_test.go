package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ist = attendance.DefaultPolicy().Location

func localTime(y int, m time.Month, d, h, mi int) *time.Time {
	t := time.Date(y, m, d, h, mi, 0, 0, ist)
	return &t
}

func localDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, ist)
}

func TestClassify_Rules(t *testing.T) {
	policy := attendance.DefaultPolicy()
	day := localDay(2024, 3, 12)

	cases := []struct {
		name       string
		in, out    *time.Time
		status     attendance.Status
		worked     *float64
		incomplete bool
	}{
		{"no check-in", nil, nil, attendance.StatusAbsent, ptr(0.0), false},
		{"check-in only", localTime(2024, 3, 12, 9, 0), nil, attendance.StatusPresent, nil, true},
		{"half day", localTime(2024, 3, 12, 9, 30), localTime(2024, 3, 12, 13, 0), attendance.StatusHalfDay, ptr(3.5), false},
		{"late", localTime(2024, 3, 12, 10, 5), localTime(2024, 3, 12, 17, 30), attendance.StatusLate, ptr(7.42), false},
		{"on time", localTime(2024, 3, 12, 9, 0), localTime(2024, 3, 12, 18, 0), attendance.StatusPresent, ptr(9.0), false},
		{"exactly at cutoff is on time", localTime(2024, 3, 12, 9, 55), localTime(2024, 3, 12, 18, 0), attendance.StatusPresent, ptr(8.08), false},
		{"exactly minimum hours is full day", localTime(2024, 3, 12, 9, 0), localTime(2024, 3, 12, 13, 0), attendance.StatusPresent, ptr(4.0), false},
		{"late and short is half day", localTime(2024, 3, 12, 11, 0), localTime(2024, 3, 12, 13, 0), attendance.StatusHalfDay, ptr(2.0), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Classify(attendance.ClassifyInput{Day: day, CheckIn: c.in, CheckOut: c.out, Context: attendance.DayContext{InScope: true}}, policy)
			assert.Equal(t, c.status, got.Status)
			assert.Equal(t, c.incomplete, got.Incomplete)
			if c.worked == nil {
				assert.Nil(t, got.WorkedHours)
			} else {
				require.NotNil(t, got.WorkedHours)
				assert.InDelta(t, *c.worked, *got.WorkedHours, 0.005)
			}
		})
	}
}

func TestClassify_LateOneSecondAfterCutoff(t *testing.T) {
	policy := attendance.DefaultPolicy()
	in := time.Date(2024, 3, 12, 9, 55, 1, 0, ist)
	out := time.Date(2024, 3, 12, 18, 0, 0, 0, ist)

	got := Classify(attendance.ClassifyInput{Day: localDay(2024, 3, 12), CheckIn: &in, CheckOut: &out}, policy)
	assert.Equal(t, attendance.StatusLate, got.Status)
}

func TestClassify_CutoffIsLocalTime(t *testing.T) {
	policy := attendance.DefaultPolicy()
	// 04:00 UTC is 09:30 IST, on time.
	in := time.Date(2024, 3, 12, 4, 0, 0, 0, time.UTC)
	out := time.Date(2024, 3, 12, 12, 30, 0, 0, time.UTC)

	got := Classify(attendance.ClassifyInput{Day: localDay(2024, 3, 12), CheckIn: &in, CheckOut: &out}, policy)
	assert.Equal(t, attendance.StatusPresent, got.Status)
	assert.InDelta(t, 8.5, *got.WorkedHours, 1e-9)
}

func TestClassify_DayContextWinsOutright(t *testing.T) {
	policy := attendance.DefaultPolicy()
	day := localDay(2024, 3, 12)

	for _, status := range []attendance.Status{attendance.StatusHoliday, attendance.StatusWeekend, attendance.StatusLeave} {
		t.Run(string(status), func(t *testing.T) {
			none := Classify(attendance.ClassifyInput{Day: day, Context: attendance.DayContext{Status: status, InScope: true}}, policy)
			assert.Equal(t, status, none.Status)
			assert.Nil(t, none.WorkedHours)

			worked := Classify(attendance.ClassifyInput{
				Day:      day,
				CheckIn:  localTime(2024, 3, 12, 10, 30),
				CheckOut: localTime(2024, 3, 12, 12, 0),
				Context:  attendance.DayContext{Status: status, InScope: true},
			}, policy)
			assert.Equal(t, status, worked.Status)
			require.NotNil(t, worked.WorkedHours)
			assert.InDelta(t, 1.5, *worked.WorkedHours, 1e-9)
		})
	}
}

func TestClassify_IncompleteAsAbsent(t *testing.T) {
	policy := attendance.DefaultPolicy()
	policy.IncompleteAsAbsent = true
	day := localDay(2024, 3, 12)
	in := localTime(2024, 3, 12, 9, 0)

	sameDay := Classify(attendance.ClassifyInput{Day: day, CheckIn: in, Now: *localTime(2024, 3, 12, 20, 0)}, policy)
	assert.Equal(t, attendance.StatusPresent, sameDay.Status)
	assert.True(t, sameDay.Incomplete)

	nextDay := Classify(attendance.ClassifyInput{Day: day, CheckIn: in, Now: *localTime(2024, 3, 13, 0, 1)}, policy)
	assert.Equal(t, attendance.StatusAbsent, nextDay.Status)
	require.NotNil(t, nextDay.WorkedHours)
	assert.Zero(t, *nextDay.WorkedHours)

	policy.IncompleteAsAbsent = false
	defaulted := Classify(attendance.ClassifyInput{Day: day, CheckIn: in, Now: *localTime(2024, 3, 20, 0, 0)}, policy)
	assert.Equal(t, attendance.StatusPresent, defaulted.Status)
}

func TestClassify_ConfigurableThresholds(t *testing.T) {
	policy := attendance.DefaultPolicy()
	policy.MinimumWorkHours = 6
	policy.LateCutoff = 10*time.Hour + 30*time.Minute
	day := localDay(2024, 3, 12)

	got := Classify(attendance.ClassifyInput{Day: day, CheckIn: localTime(2024, 3, 12, 10, 15), CheckOut: localTime(2024, 3, 12, 15, 15)}, policy)
	assert.Equal(t, attendance.StatusHalfDay, got.Status)

	got = Classify(attendance.ClassifyInput{Day: day, CheckIn: localTime(2024, 3, 12, 10, 15), CheckOut: localTime(2024, 3, 12, 17, 15)}, policy)
	assert.Equal(t, attendance.StatusPresent, got.Status)
}

func TestClassify_Idempotent(t *testing.T) {
	policy := attendance.DefaultPolicy()
	in := attendance.ClassifyInput{
		Day:      localDay(2024, 3, 12),
		CheckIn:  localTime(2024, 3, 12, 10, 5),
		CheckOut: localTime(2024, 3, 12, 17, 30),
		Now:      *localTime(2024, 3, 13, 9, 0),
	}

	first := Classify(in, policy)
	second := Classify(in, policy)
	assert.Equal(t, first, second)
	assert.Equal(t, attendance.StatusLate, first.Status)
}

func TestValidateSequence(t *testing.T) {
	in := localTime(2024, 3, 12, 9, 0)

	assert.NoError(t, ValidateSequence(in, localTime(2024, 3, 12, 9, 1)))
	assert.NoError(t, ValidateSequence(in, nil))
	assert.NoError(t, ValidateSequence(nil, in))
	assert.ErrorIs(t, ValidateSequence(in, in), attendance.ErrInvalidTimeSequence)
	assert.ErrorIs(t, ValidateSequence(in, localTime(2024, 3, 12, 8, 0)), attendance.ErrInvalidTimeSequence)
}

func ptr[T any](v T) *T {
	return &v
}
