package queries

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/reservation.go -package=queriesmock

import (
	"context"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.Mark(errs.New("reservation not found"), errs.ErrNotFound)
	ErrReservationAccess   = errs.Mark(errs.New("not allowed to view this reservation"), errs.ErrForbidden)
	ErrAdminRequired       = errs.Mark(errs.New("admin role required"), errs.ErrForbidden)
	ErrInvalidFilter       = errs.Mark(errs.New("invalid reservation filter"), errs.ErrDomainValidation)
)

type ReservationQueries interface {
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*ReservationView, error)
	// GetByIDSystem skips the ownership check; used for read-after-write.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListMine(ctx context.Context, actor shared.Actor) ([]*ReservationView, error)
	ListAll(ctx context.Context, actor shared.Actor, filter ReservationFilter) ([]*ReservationView, error)
	Availability(ctx context.Context, courtID uuid.UUID, date slot.Date) (*AvailabilityView, error)
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*ReservationView, error)
	FindAll(ctx context.Context, filter ReservationFilter) ([]*ReservationView, error)
	FindBookedSlots(ctx context.Context, courtID uuid.UUID, date slot.Date) ([]*BookedSlotView, error)
}

type reservationQueriesImpl struct {
	store  ReservationReadStore
	courts shared.CourtLookup
}

func NewReservationQueries(store ReservationReadStore, courts shared.CourtLookup) ReservationQueries {
	return &reservationQueriesImpl{store: store, courts: courts}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*ReservationView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && view.UserID != actor.UserID {
		return nil, ErrReservationAccess
	}
	return view, nil
}

func (q *reservationQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListMine(ctx context.Context, actor shared.Actor) ([]*ReservationView, error) {
	views, err := q.store.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

func (q *reservationQueriesImpl) ListAll(ctx context.Context, actor shared.Actor, filter ReservationFilter) ([]*ReservationView, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}
	if filter.Status != nil {
		if _, err := reservation.ParseStatus(*filter.Status); err != nil {
			return nil, errs.Mark(err, ErrInvalidFilter)
		}
	}
	if filter.Date != nil {
		d, err := slot.ParseDate(*filter.Date)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidFilter)
		}
		normalized := d.String()
		filter.Date = &normalized
	}
	filter.Limit = ValidateLimit(filter.Limit)
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	views, err := q.store.FindAll(ctx, filter)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

func (q *reservationQueriesImpl) Availability(ctx context.Context, courtID uuid.UUID, date slot.Date) (*AvailabilityView, error) {
	c, err := q.courts.CourtByID(ctx, courtID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	booked, err := q.store.FindBookedSlots(ctx, courtID, date)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &AvailabilityView{
		CourtID:     courtID,
		Date:        date.String(),
		OpeningTime: c.OpeningTime().String(),
		ClosingTime: c.ClosingTime().String(),
		Open:        c.IsActive() && c.OpenOn(date.Weekday()),
		Booked:      booked,
	}, nil
}
