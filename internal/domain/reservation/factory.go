package reservation

import (
	"time"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/slot"
	"court-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
	Location        *time.Location
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator, loc *time.Location) *Factory {
	if loc == nil {
		loc = time.UTC
	}
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
		Location:        loc,
	}
}

func (f *Factory) Today() slot.Date {
	return slot.Today(f.Clock.Now(), f.Location)
}

// ValidateBookingDate compares calendar days only; today is bookable.
func (f *Factory) ValidateBookingDate(date slot.Date) error {
	if date.Before(f.Today()) {
		return ErrPastDate
	}
	return nil
}

func (f *Factory) CreateReservation(
	c *court.Court,
	userID uuid.UUID,
	date slot.Date,
	interval slot.Interval,
	note Note,
	existing []Booked,
) (*Reservation, error) {
	if err := f.ValidateBookingDate(date); err != nil {
		return nil, err
	}
	if !c.IsActive() {
		return nil, ErrCourtInactive
	}
	if !c.OpenOn(date.Weekday()) {
		return nil, ErrCourtClosed
	}
	if !c.Covers(interval) {
		return nil, ErrOutsideOperatingHours
	}
	if HasConflict(c.ID(), date, interval, existing) {
		return nil, ErrSlotTaken
	}

	price, err := f.PriceCalculator.Calculate(c.PricePerHour(), interval)
	if err != nil {
		return nil, err
	}

	return newReservation(c.ID(), userID, date, interval, price, note, f.Clock.Now()), nil
}
