package commands

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/reservation.go -package=commandsmock

import (
	"context"
	"log/slog"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReservationInput struct {
	CourtID   uuid.UUID
	Date      string
	StartTime string
	EndTime   string
	Notes     string
}

// UpdateReservationInput is a partial admin update; nil fields are left alone.
type UpdateReservationInput struct {
	Status        *string
	PaymentStatus *string
	Notes         *string
}

type ReservationCommands interface {
	Create(ctx context.Context, actor shared.Actor, in CreateReservationInput) (*queries.ReservationView, error)
	UpdateStatus(ctx context.Context, actor shared.Actor, id uuid.UUID, in UpdateReservationInput) (*queries.ReservationView, error)
	Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.ReservationView, error)
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error
}

type reservationCommandsImpl struct {
	uow       shared.UnitOfWork
	courts    shared.CourtLookup
	factory   *reservation.Factory
	conflicts ConflictChecker
	queries   queries.ReservationQueries
	events    shared.EventPublisher
	clock     clock.Clock
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	courts shared.CourtLookup,
	factory *reservation.Factory,
	reservationQueries queries.ReservationQueries,
	events shared.EventPublisher,
	clk clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:     uow,
		courts:  courts,
		factory: factory,
		queries: reservationQueries,
		events:  events,
		clock:   clk,
	}
}

func (uc *reservationCommandsImpl) Create(ctx context.Context, actor shared.Actor, in CreateReservationInput) (*queries.ReservationView, error) {
	c, err := uc.courts.CourtByID(ctx, in.CourtID)
	if err != nil {
		return nil, markLookupErr(err, ErrCourtNotFound)
	}

	date, err := slot.ParseDate(in.Date)
	if err != nil {
		return nil, markDomainErr(err)
	}
	// A past date is rejected before the times are even looked at.
	if err := uc.factory.ValidateBookingDate(date); err != nil {
		return nil, markDomainErr(err)
	}
	interval, err := slot.NewInterval(in.StartTime, in.EndTime)
	if err != nil {
		return nil, markDomainErr(err)
	}
	note, err := reservation.NewNote(in.Notes)
	if err != nil {
		return nil, markDomainErr(err)
	}

	var created *reservation.Reservation
	err = uc.uow.WithinSlotLock(ctx, c.ID(), date, func(ctx context.Context, tx shared.Tx) error {
		// Price, hours and the active flag come from the transaction, not the cache.
		current, err := tx.Reads().CourtByID(ctx, c.ID())
		if err != nil {
			return markLookupErr(err, ErrCourtNotFound)
		}
		existing, err := uc.conflicts.Existing(ctx, tx.Reads(), current.ID(), date)
		if err != nil {
			return err
		}

		res, err := uc.factory.CreateReservation(current, actor.UserID, date, interval, note, existing)
		if err != nil {
			return markDomainErr(err)
		}

		if err := tx.Reservations().Create(ctx, res); err != nil {
			switch {
			case infra.IsKind(err, infra.KindConflict):
				return markDomainErr(reservation.ErrSlotTaken)
			case infra.IsKind(err, infra.KindForeignKeyViolated):
				return ErrCourtNotFound
			default:
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}
		created = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, shared.EventBookingCreated, created, actor)
	return uc.queries.GetByIDSystem(ctx, created.ID())
}

func (uc *reservationCommandsImpl) UpdateStatus(ctx context.Context, actor shared.Actor, id uuid.UUID, in UpdateReservationInput) (*queries.ReservationView, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}

	var (
		status  *reservation.Status
		payment *reservation.PaymentStatus
		note    *reservation.Note
	)
	if in.Status != nil {
		s, err := reservation.ParseStatus(*in.Status)
		if err != nil {
			return nil, markDomainErr(err)
		}
		status = &s
	}
	if in.PaymentStatus != nil {
		p, err := reservation.ParsePaymentStatus(*in.PaymentStatus)
		if err != nil {
			return nil, markDomainErr(err)
		}
		payment = &p
	}
	if in.Notes != nil {
		n, err := reservation.NewNote(*in.Notes)
		if err != nil {
			return nil, markDomainErr(err)
		}
		note = &n
	}

	var (
		updated       *reservation.Reservation
		statusChanged bool
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reads().ReservationByID(ctx, id)
		if err != nil {
			return markLookupErr(err, ErrReservationNotFound)
		}

		now := uc.clock.Now()
		previous := res.Status()
		if status != nil {
			if err := res.ChangeStatus(*status, now); err != nil {
				return markDomainErr(err)
			}
		}
		if payment != nil {
			if err := res.SetPaymentStatus(*payment, now); err != nil {
				return markDomainErr(err)
			}
		}
		if note != nil {
			res.SetNote(*note, now)
		}

		if err := tx.Reservations().Update(ctx, res); err != nil {
			return markLookupErr(err, ErrReservationNotFound)
		}
		updated = res
		statusChanged = previous != res.Status()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if statusChanged {
		uc.publish(ctx, shared.EventBookingStatusChanged, updated, actor)
	}
	return uc.queries.GetByIDSystem(ctx, id)
}

// Cancel is idempotent: cancelling a cancelled reservation succeeds without writing.
func (uc *reservationCommandsImpl) Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.ReservationView, error) {
	var (
		cancelled *reservation.Reservation
		changed   bool
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reads().ReservationByID(ctx, id)
		if err != nil {
			return markLookupErr(err, ErrReservationNotFound)
		}
		if !actor.IsAdmin() && !res.IsOwnedBy(actor.UserID) {
			return ErrNotReservationOwner
		}

		changed = res.Cancel(uc.clock.Now())
		if changed {
			if err := tx.Reservations().Update(ctx, res); err != nil {
				return markLookupErr(err, ErrReservationNotFound)
			}
		}
		cancelled = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		uc.publish(ctx, shared.EventBookingCancelled, cancelled, actor)
	}
	return uc.queries.GetByIDSystem(ctx, id)
}

func (uc *reservationCommandsImpl) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrAdminRequired
	}

	var deleted *reservation.Reservation
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reads().ReservationByID(ctx, id)
		if err != nil {
			return markLookupErr(err, ErrReservationNotFound)
		}
		if err := tx.Reservations().Delete(ctx, id); err != nil {
			return markLookupErr(err, ErrReservationNotFound)
		}
		deleted = res
		return nil
	})
	if err != nil {
		return err
	}

	uc.publish(ctx, shared.EventBookingDeleted, deleted, actor)
	return nil
}

// publish runs after commit; a delivery failure never undoes the booking change.
func (uc *reservationCommandsImpl) publish(ctx context.Context, eventType shared.EventType, res *reservation.Reservation, actor shared.Actor) {
	event := shared.BookingEvent{
		Type:          eventType,
		ReservationID: res.ID(),
		CourtID:       res.CourtID(),
		UserID:        res.UserID(),
		Date:          res.Date().String(),
		StartTime:     res.Interval().Start().String(),
		EndTime:       res.Interval().End().String(),
		Status:        res.Status().String(),
		PaymentStatus: res.PaymentStatus().String(),
		TotalPrice:    res.TotalPrice().Amount(),
		ActorID:       actor.UserID,
		OccurredAt:    uc.clock.Now(),
	}
	if err := uc.events.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish booking event",
			"type", string(eventType),
			"reservation_id", res.ID(),
			"error", err.Error())
	}
}
