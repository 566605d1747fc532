package commands

import (
	"context"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// ConflictChecker answers whether an interval collides with existing bookings.
// It only reads; callers that act on the answer must hold the slot lock.
type ConflictChecker struct{}

func (ConflictChecker) Existing(ctx context.Context, reads shared.CommandReads, courtID uuid.UUID, date slot.Date) ([]reservation.Booked, error) {
	booked, err := reads.ActiveReservationsOn(ctx, courtID, date)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return booked, nil
}

func (c ConflictChecker) HasConflict(ctx context.Context, reads shared.CommandReads, courtID uuid.UUID, date slot.Date, interval slot.Interval) (bool, error) {
	booked, err := c.Existing(ctx, reads, courtID, date)
	if err != nil {
		return false, err
	}
	return reservation.HasConflict(courtID, date, interval, booked), nil
}
