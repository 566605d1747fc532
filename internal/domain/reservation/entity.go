package reservation

import (
	"errors"
	"time"

	"court-booking/internal/domain/slot"

	"github.com/google/uuid"
)

var (
	ErrPastDate              = errors.New("booking date is in the past")
	ErrSlotTaken             = errors.New("time slot is already booked")
	ErrCourtInactive         = errors.New("court is not accepting bookings")
	ErrCourtClosed           = errors.New("court is closed on that day")
	ErrOutsideOperatingHours = errors.New("booking is outside court operating hours")
)

// Reservation is a booking of one court for a same-day half-open interval.
// Court, date and interval never change after creation.
type Reservation struct {
	id            uuid.UUID
	courtID       uuid.UUID
	userID        uuid.UUID
	date          slot.Date
	interval      slot.Interval
	totalPrice    Money
	status        Status
	paymentStatus PaymentStatus
	note          Note
	createdAt     time.Time
	updatedAt     time.Time
}

func newReservation(
	courtID, userID uuid.UUID,
	date slot.Date,
	interval slot.Interval,
	price Money,
	note Note,
	now time.Time,
) *Reservation {
	return &Reservation{
		id:            uuid.New(),
		courtID:       courtID,
		userID:        userID,
		date:          date,
		interval:      interval,
		totalPrice:    price,
		status:        StatusPending,
		paymentStatus: PaymentPending,
		note:          note,
		createdAt:     now,
		updatedAt:     now,
	}
}

func ReconstructReservation(
	id, courtID, userID uuid.UUID,
	date slot.Date,
	interval slot.Interval,
	totalPrice Money,
	status Status,
	paymentStatus PaymentStatus,
	note Note,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:            id,
		courtID:       courtID,
		userID:        userID,
		date:          date,
		interval:      interval,
		totalPrice:    totalPrice,
		status:        status,
		paymentStatus: paymentStatus,
		note:          note,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// ChangeStatus applies the transition table. Writing the current status is a no-op.
func (r *Reservation) ChangeStatus(next Status, now time.Time) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if !r.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	if r.status != next {
		r.status = next
		r.updatedAt = now
	}
	return nil
}

// Cancel reports whether the status actually changed.
func (r *Reservation) Cancel(now time.Time) bool {
	if r.status == StatusCancelled {
		return false
	}
	r.status = StatusCancelled
	r.updatedAt = now
	return true
}

func (r *Reservation) SetPaymentStatus(ps PaymentStatus, now time.Time) error {
	if !ps.IsValid() {
		return ErrInvalidPaymentStatus
	}
	if r.paymentStatus != ps {
		r.paymentStatus = ps
		r.updatedAt = now
	}
	return nil
}

func (r *Reservation) SetNote(note Note, now time.Time) {
	if r.note != note {
		r.note = note
		r.updatedAt = now
	}
}

func (r *Reservation) IsActive() bool {
	return r.status != StatusCancelled
}

func (r *Reservation) IsOwnedBy(userID uuid.UUID) bool {
	return r.userID == userID
}

func (r *Reservation) ID() uuid.UUID                { return r.id }
func (r *Reservation) CourtID() uuid.UUID           { return r.courtID }
func (r *Reservation) UserID() uuid.UUID            { return r.userID }
func (r *Reservation) Date() slot.Date              { return r.date }
func (r *Reservation) Interval() slot.Interval      { return r.interval }
func (r *Reservation) TotalPrice() Money            { return r.totalPrice }
func (r *Reservation) Status() Status               { return r.status }
func (r *Reservation) PaymentStatus() PaymentStatus { return r.paymentStatus }
func (r *Reservation) Note() Note                   { return r.note }
func (r *Reservation) CreatedAt() time.Time         { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time         { return r.updatedAt }
