//go:build unit

package slot_test

import (
	"testing"
	"time"

	"court-booking/internal/domain/slot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInterval(t *testing.T, start, end string) slot.Interval {
	t.Helper()
	i, err := slot.NewInterval(start, end)
	require.NoError(t, err)
	return i
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "00:00", want: "00:00"},
		{in: "9:05", want: "09:05"},
		{in: "09:05", want: "09:05"},
		{in: "23:59", want: "23:59"},
		{in: "24:00", wantErr: slot.ErrInvalidTimeFormat},
		{in: "12:60", wantErr: slot.ErrInvalidTimeFormat},
		{in: "1200", wantErr: slot.ErrInvalidTimeFormat},
		{in: "", wantErr: slot.ErrInvalidTimeFormat},
		{in: " 10:00", wantErr: slot.ErrInvalidTimeFormat},
		{in: "10:00pm", wantErr: slot.ErrInvalidTimeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := slot.ParseTimeOfDay(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantErr    error
	}{
		{name: "valid", start: "10:00", end: "11:00"},
		{name: "one minute", start: "10:00", end: "10:01"},
		{name: "zero length", start: "10:00", end: "10:00", wantErr: slot.ErrInvalidTimeRange},
		{name: "inverted", start: "11:00", end: "10:00", wantErr: slot.ErrInvalidTimeRange},
		{name: "overnight", start: "23:00", end: "01:00", wantErr: slot.ErrInvalidTimeRange},
		{name: "bad start", start: "1:0", end: "10:00", wantErr: slot.ErrInvalidTimeFormat},
		{name: "bad end", start: "10:00", end: "25:00", wantErr: slot.ErrInvalidTimeFormat},
		{name: "format wins over range", start: "x", end: "00:00", wantErr: slot.ErrInvalidTimeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := slot.Validate(tt.start, tt.end)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b [2]string
		want bool
	}{
		{name: "identical", a: [2]string{"10:00", "11:00"}, b: [2]string{"10:00", "11:00"}, want: true},
		{name: "partial overlap at start", a: [2]string{"10:00", "11:00"}, b: [2]string{"10:30", "11:30"}, want: true},
		{name: "partial overlap at end", a: [2]string{"10:30", "11:30"}, b: [2]string{"10:00", "11:00"}, want: true},
		{name: "a contains b", a: [2]string{"09:00", "12:00"}, b: [2]string{"10:00", "11:00"}, want: true},
		{name: "b contains a", a: [2]string{"10:00", "11:00"}, b: [2]string{"09:00", "12:00"}, want: true},
		{name: "touching a before b", a: [2]string{"10:00", "11:00"}, b: [2]string{"11:00", "12:00"}, want: false},
		{name: "touching b before a", a: [2]string{"11:00", "12:00"}, b: [2]string{"10:00", "11:00"}, want: false},
		{name: "disjoint", a: [2]string{"06:00", "07:00"}, b: [2]string{"20:00", "22:00"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustInterval(t, tt.a[0], tt.a[1])
			b := mustInterval(t, tt.b[0], tt.b[1])

			assert.Equal(t, tt.want, slot.Overlaps(a, b))
			assert.Equal(t, slot.Overlaps(a, b), slot.Overlaps(b, a), "overlap must be symmetric")
			assert.True(t, a.Overlaps(a), "an interval overlaps itself")
		})
	}
}

func TestOverlapsExhaustiveSymmetry(t *testing.T) {
	var intervals []slot.Interval
	for s := 0; s < 6*60; s += 30 {
		for e := s + 30; e <= 6*60; e += 30 {
			start, _ := slot.TimeOfDayFromMinutes(s)
			end, _ := slot.TimeOfDayFromMinutes(e)
			i, err := slot.IntervalOf(start, end)
			require.NoError(t, err)
			intervals = append(intervals, i)
		}
	}

	for _, a := range intervals {
		require.True(t, slot.Overlaps(a, a), "%s should overlap itself", a)
		for _, b := range intervals {
			require.Equal(t, slot.Overlaps(a, b), slot.Overlaps(b, a), "%s vs %s", a, b)
			if a.End() == b.Start() {
				require.False(t, slot.Overlaps(a, b), "%s touches %s", a, b)
			}
		}
	}
}

func TestIntervalWithin(t *testing.T) {
	open := slot.MustParseTimeOfDay("06:00")
	closing := slot.MustParseTimeOfDay("22:00")

	assert.True(t, mustInterval(t, "06:00", "22:00").Within(open, closing))
	assert.True(t, mustInterval(t, "10:00", "11:00").Within(open, closing))
	assert.False(t, mustInterval(t, "05:30", "07:00").Within(open, closing))
	assert.False(t, mustInterval(t, "21:00", "22:30").Within(open, closing))
}

func TestIntervalDuration(t *testing.T) {
	i := mustInterval(t, "10:30", "11:45")
	assert.Equal(t, 75, i.Minutes())
	assert.Equal(t, 75*time.Minute, i.Duration())
	assert.Equal(t, "10:30-11:45", i.String())
}

func TestParseDate(t *testing.T) {
	d, err := slot.ParseDate("2026-10-18")
	require.NoError(t, err)
	assert.Equal(t, slot.NewDate(2026, time.October, 18), d)
	assert.Equal(t, time.Sunday, d.Weekday())

	d, err = slot.ParseDate("2026-10-18T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-18", d.String())

	_, err = slot.ParseDate("18/10/2026")
	assert.ErrorIs(t, err, slot.ErrInvalidDate)
}

func TestToday(t *testing.T) {
	kathmandu := time.FixedZone("NPT", 5*3600+45*60)
	now := time.Date(2026, time.October, 17, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-10-17", slot.Today(now, time.UTC).String())
	assert.Equal(t, "2026-10-18", slot.Today(now, kathmandu).String())
	assert.True(t, slot.Today(now, time.UTC).Before(slot.Today(now, kathmandu)))
	assert.Equal(t, "2026-10-18", slot.Today(now, time.UTC).AddDays(1).String())
}
