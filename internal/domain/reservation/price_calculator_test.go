//go:build unit

package reservation_test

import (
	"testing"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePrice(t *testing.T) {
	price, err := reservation.ComputePrice(500, "10:00", "12:00")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), price.Amount())
}

func TestPriceCalculators(t *testing.T) {
	tests := []struct {
		name       string
		mode       reservation.PricingMode
		rate       int64
		start, end string
		want       int64
		wantErr    error
	}{
		{name: "prorated two hours", mode: reservation.PricingProrated, rate: 500, start: "10:00", end: "12:00", want: 1000},
		{name: "whole hour two hours", mode: reservation.PricingWholeHour, rate: 500, start: "10:00", end: "12:00", want: 1000},
		{name: "prorated partial hour", mode: reservation.PricingProrated, rate: 500, start: "10:30", end: "11:45", want: 625},
		{name: "whole hour truncates", mode: reservation.PricingWholeHour, rate: 500, start: "10:30", end: "11:45", want: 500},
		{name: "whole hour same hour is free", mode: reservation.PricingWholeHour, rate: 500, start: "10:00", end: "10:45", want: 0},
		{name: "prorated rounds half up", mode: reservation.PricingProrated, rate: 1, start: "10:00", end: "10:30", want: 1},
		{name: "prorated rounds down", mode: reservation.PricingProrated, rate: 1, start: "10:00", end: "10:29", want: 0},
		{name: "zero rate", mode: reservation.PricingProrated, rate: 0, start: "10:00", end: "11:00", wantErr: reservation.ErrInvalidRate},
		{name: "rate above the cap", mode: reservation.PricingProrated, rate: court.MaxPricePerHour + 1, start: "00:00", end: "23:59", wantErr: reservation.ErrInvalidRate},
		{name: "largest rate over a full day", mode: reservation.PricingProrated, rate: court.MaxPricePerHour, start: "00:00", end: "23:59", want: 2_398_333_333},
		{name: "negative rate whole hour", mode: reservation.PricingWholeHour, rate: -5, start: "10:00", end: "11:00", wantErr: reservation.ErrInvalidRate},
		{name: "unknown mode falls back to prorated", mode: "bogus", rate: 600, start: "09:00", end: "09:20", want: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interval, err := slot.NewInterval(tt.start, tt.end)
			require.NoError(t, err)

			got, err := reservation.NewPriceCalculator(tt.mode).Calculate(tt.rate, interval)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Amount())
		})
	}
}

func TestComputePriceRejectsBadInterval(t *testing.T) {
	_, err := reservation.ComputePrice(500, "12:00", "10:00")
	require.ErrorIs(t, err, slot.ErrInvalidTimeRange)

	_, err = reservation.ComputePrice(500, "25:00", "26:00")
	require.ErrorIs(t, err, slot.ErrInvalidTimeFormat)
}
