//go:build unit

package reservation_test

import (
	"testing"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"
	"court-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasConflict(t *testing.T) {
	courtID := uuid.New()
	date, err := slot.ParseDate("2026-10-18")
	require.NoError(t, err)

	existing := func(start, end, status string) reservation.Booked {
		return builder.NewReservationBuilder().
			WithCourt(courtID).
			WithDate("2026-10-18").
			WithTimes(start, end).
			WithStatus(status).
			MustBuildDomain().
			Booked()
	}

	tests := []struct {
		name       string
		start, end string
		booked     []reservation.Booked
		want       bool
	}{
		{name: "empty day", start: "10:00", end: "11:00", want: false},
		{name: "partial overlap", start: "10:30", end: "11:30", booked: []reservation.Booked{existing("10:00", "11:00", "pending")}, want: true},
		{name: "new contains old", start: "09:00", end: "12:00", booked: []reservation.Booked{existing("10:00", "11:00", "confirmed")}, want: true},
		{name: "old contains new", start: "10:15", end: "10:45", booked: []reservation.Booked{existing("10:00", "11:00", "pending")}, want: true},
		{name: "touching after", start: "11:00", end: "12:00", booked: []reservation.Booked{existing("10:00", "11:00", "pending")}, want: false},
		{name: "touching before", start: "09:00", end: "10:00", booked: []reservation.Booked{existing("10:00", "11:00", "pending")}, want: false},
		{name: "cancelled ignored", start: "10:15", end: "10:45", booked: []reservation.Booked{existing("10:00", "11:00", "cancelled")}, want: false},
		{
			name: "other court ignored", start: "10:00", end: "11:00",
			booked: []reservation.Booked{builder.NewReservationBuilder().WithDate("2026-10-18").MustBuildDomain().Booked()},
			want:   false,
		},
		{
			name: "other date ignored", start: "10:00", end: "11:00",
			booked: []reservation.Booked{builder.NewReservationBuilder().WithCourt(courtID).WithDate("2026-10-19").MustBuildDomain().Booked()},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interval, err := slot.NewInterval(tt.start, tt.end)
			require.NoError(t, err)

			assert.Equal(t, tt.want, reservation.HasConflict(courtID, date, interval, tt.booked))
		})
	}
}

func TestFindConflictReturnsBlockingReservation(t *testing.T) {
	courtID := uuid.New()
	date, _ := slot.ParseDate("2026-10-18")
	blocking := builder.NewReservationBuilder().WithCourt(courtID).WithTimes("10:00", "11:00").MustBuildDomain()

	got, ok := reservation.FindConflict(courtID, date, slot.MustInterval("10:30", "11:30"), []reservation.Booked{blocking.Booked()})

	require.True(t, ok)
	assert.Equal(t, blocking.ID(), got.ID)
}
