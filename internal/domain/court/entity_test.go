//go:build unit

package court_test

import (
	"testing"
	"time"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/slot"
	"court-booking/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.CourtBuilder)
	errIs  error
}

func TestNewCourt(t *testing.T) {
	runCases(t, []testCase{
		{name: "valid court", mutate: func(b *builder.CourtBuilder) {}},
		{name: "empty name", mutate: func(b *builder.CourtBuilder) { b.WithName("   ") }, errIs: court.ErrEmptyCourtName},
		{name: "zero price", mutate: func(b *builder.CourtBuilder) { b.WithPrice(0) }, errIs: court.ErrInvalidPrice},
		{name: "negative price", mutate: func(b *builder.CourtBuilder) { b.WithPrice(-1) }, errIs: court.ErrInvalidPrice},
		{name: "price above cap", mutate: func(b *builder.CourtBuilder) { b.WithPrice(court.MaxPricePerHour + 1) }, errIs: court.ErrInvalidPrice},
		{name: "closing before opening", mutate: func(b *builder.CourtBuilder) { b.WithHours("22:00", "06:00") }, errIs: court.ErrInvalidOperatingHours},
		{name: "equal hours", mutate: func(b *builder.CourtBuilder) { b.WithHours("10:00", "10:00") }, errIs: court.ErrInvalidOperatingHours},
		{name: "unknown type", mutate: func(b *builder.CourtBuilder) { b.Type = "Clay" }, errIs: court.ErrInvalidType},
		{name: "unknown weekday", mutate: func(b *builder.CourtBuilder) { b.WithDays("Funday") }, errIs: court.ErrInvalidWeekday},
		{name: "bad time format", mutate: func(b *builder.CourtBuilder) { b.WithHours("6am", "22:00") }, errIs: slot.ErrInvalidTimeFormat},
	})
}

func TestNewCourtDefaults(t *testing.T) {
	c, err := builder.NewCourtBuilder().BuildDomain()
	require.NoError(t, err)

	assert.True(t, c.IsActive())
	assert.Equal(t, court.DefaultImage, c.Image())
	assert.Empty(t, c.AvailableDays())
}

func TestApply(t *testing.T) {
	t.Run("partial update keeps other fields", func(t *testing.T) {
		c := builder.NewCourtBuilder().MustBuildDomain()
		price := int64(800)

		require.NoError(t, c.Apply(court.UpdateParams{PricePerHour: &price}))

		assert.Equal(t, int64(800), c.PricePerHour())
		assert.Equal(t, "Center Court", c.Name())
		assert.Equal(t, "06:00", c.OpeningTime().String())
	})

	t.Run("invalid update leaves court untouched", func(t *testing.T) {
		c := builder.NewCourtBuilder().MustBuildDomain()
		closing := slot.MustParseTimeOfDay("05:00")
		name := "Renamed"

		err := c.Apply(court.UpdateParams{Name: &name, ClosingTime: &closing})

		require.ErrorIs(t, err, court.ErrInvalidOperatingHours)
		assert.Equal(t, "Center Court", c.Name())
		assert.Equal(t, "22:00", c.ClosingTime().String())
	})

	t.Run("deactivate", func(t *testing.T) {
		c := builder.NewCourtBuilder().MustBuildDomain()
		inactive := false

		require.NoError(t, c.Apply(court.UpdateParams{IsActive: &inactive}))
		assert.False(t, c.IsActive())
	})
}

func TestOpenOn(t *testing.T) {
	everyDay := builder.NewCourtBuilder().MustBuildDomain()
	for d := time.Sunday; d <= time.Saturday; d++ {
		assert.True(t, everyDay.OpenOn(d), d.String())
	}

	weekdays := builder.NewCourtBuilder().WithDays("monday", "Tuesday", "Monday").MustBuildDomain()
	assert.Equal(t, []time.Weekday{time.Monday, time.Tuesday}, weekdays.AvailableDays())
	assert.True(t, weekdays.OpenOn(time.Monday))
	assert.False(t, weekdays.OpenOn(time.Sunday))
}

func TestCovers(t *testing.T) {
	c := builder.NewCourtBuilder().MustBuildDomain()

	tests := []struct {
		start, end string
		want       bool
	}{
		{"06:00", "22:00", true},
		{"10:00", "11:00", true},
		{"05:30", "07:00", false},
		{"21:00", "22:30", false},
	}
	for _, tt := range tests {
		t.Run(tt.start+"-"+tt.end, func(t *testing.T) {
			i, err := slot.NewInterval(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Covers(i))
		})
	}
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewCourtBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, actual)
			} else {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
