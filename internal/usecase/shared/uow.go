package shared

import (
	"context"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"
	"court-booking/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinSlotLock: Like Within, but writers for the same court and date are serialized
	WithinSlotLock(ctx context.Context, courtID uuid.UUID, date slot.Date, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Courts() CourtRepository
	Users() UserRepository
	Reads() CommandReads
}

// CommandReads load aggregates for the write side. Missing rows come back as
// infra.KindNotFound repository errors.
type CommandReads interface {
	CourtByID(ctx context.Context, id uuid.UUID) (*court.Court, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// ActiveReservationsOn returns non-cancelled bookings for one court and day.
	ActiveReservationsOn(ctx context.Context, courtID uuid.UUID, date slot.Date) ([]reservation.Booked, error)
	CountActiveReservationsFrom(ctx context.Context, courtID uuid.UUID, from slot.Date) (int, error)
	CountActiveUserReservationsFrom(ctx context.Context, userID uuid.UUID, from slot.Date) (int, error)
	UserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	UserByEmail(ctx context.Context, email user.Email) (*user.User, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	Update(ctx context.Context, res *reservation.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteInactiveByCourt removes cancelled reservations of a court and those
	// dated before the given day. Active upcoming reservations are kept.
	DeleteInactiveByCourt(ctx context.Context, courtID uuid.UUID, before slot.Date) (int64, error)
	DeleteInactiveByUser(ctx context.Context, userID uuid.UUID, before slot.Date) (int64, error)
}

type CourtRepository interface {
	Create(ctx context.Context, c *court.Court) error
	Update(ctx context.Context, c *court.Court) error
	// Lock holds the court row until the transaction ends. New reservations
	// for the court wait behind it.
	Lock(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	UpdateLastLogin(ctx context.Context, u *user.User) error
	Update(ctx context.Context, u *user.User) error
	Lock(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
