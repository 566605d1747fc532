package commands

//go:generate mockgen -source=court.go -destination=../../../tests/mock/commands/court.go -package=commandsmock

import (
	"context"
	"log/slog"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateCourtInput struct {
	Name          string
	Type          string
	PricePerHour  int64
	Description   string
	Facilities    []string
	OpeningTime   string
	ClosingTime   string
	AvailableDays []string
	Image         string
}

type UpdateCourtInput struct {
	Name          *string
	Type          *string
	PricePerHour  *int64
	Description   *string
	Facilities    *[]string
	OpeningTime   *string
	ClosingTime   *string
	AvailableDays *[]string
	Image         *string
	IsActive      *bool
}

type CourtCommands interface {
	Create(ctx context.Context, actor shared.Actor, in CreateCourtInput) (*queries.CourtView, error)
	Update(ctx context.Context, actor shared.Actor, id uuid.UUID, in UpdateCourtInput) (*queries.CourtView, error)
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error
}

type courtCommandsImpl struct {
	uow     shared.UnitOfWork
	courts  shared.CourtLookup
	factory *reservation.Factory
	queries queries.CourtQueries
}

func NewCourtCommands(
	uow shared.UnitOfWork,
	courts shared.CourtLookup,
	factory *reservation.Factory,
	courtQueries queries.CourtQueries,
) CourtCommands {
	return &courtCommandsImpl{
		uow:     uow,
		courts:  courts,
		factory: factory,
		queries: courtQueries,
	}
}

func (uc *courtCommandsImpl) Create(ctx context.Context, actor shared.Actor, in CreateCourtInput) (*queries.CourtView, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}

	params, err := toNewCourtParams(in)
	if err != nil {
		return nil, markDomainErr(err)
	}
	c, err := court.NewCourt(params)
	if err != nil {
		return nil, markDomainErr(err)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Courts().Create(ctx, c); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.queries.GetByID(ctx, c.ID())
}

func (uc *courtCommandsImpl) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, in UpdateCourtInput) (*queries.CourtView, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}

	params, err := toUpdateParams(in)
	if err != nil {
		return nil, markDomainErr(err)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Reads().CourtByID(ctx, id)
		if err != nil {
			return markLookupErr(err, ErrCourtNotFound)
		}
		if err := c.Apply(params); err != nil {
			return markDomainErr(err)
		}
		if err := tx.Courts().Update(ctx, c); err != nil {
			return markLookupErr(err, ErrCourtNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, id)
	return uc.queries.GetByID(ctx, id)
}

// Delete refuses while active reservations exist from today on. Past and
// cancelled reservations are removed together with the court.
func (uc *courtCommandsImpl) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrAdminRequired
	}

	today := uc.factory.Today()
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Courts().Lock(ctx, id); err != nil {
			return markLookupErr(err, ErrCourtNotFound)
		}

		upcoming, err := tx.Reads().CountActiveReservationsFrom(ctx, id, today)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if upcoming > 0 {
			return ErrCourtInUse
		}

		removed, err := tx.Reservations().DeleteInactiveByCourt(ctx, id, today)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if removed > 0 {
			slog.Info("removed historical reservations with court", "court_id", id, "count", removed)
		}

		if err := tx.Courts().Delete(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return ErrCourtInUse
			}
			return markLookupErr(err, ErrCourtNotFound)
		}
		return nil
	})
	// a booking committed after the count still references the court;
	// stores that re-check references at commit report it here
	if infra.IsKind(err, infra.KindForeignKeyViolated) {
		return ErrCourtInUse
	}
	if err != nil {
		return err
	}

	uc.invalidate(ctx, id)
	return nil
}

func (uc *courtCommandsImpl) invalidate(ctx context.Context, id uuid.UUID) {
	if err := uc.courts.Invalidate(ctx, id); err != nil {
		slog.Warn("failed to invalidate court cache", "court_id", id, "error", err.Error())
	}
}

func toNewCourtParams(in CreateCourtInput) (court.NewCourtParams, error) {
	courtType, err := court.ParseType(in.Type)
	if err != nil {
		return court.NewCourtParams{}, err
	}
	opening, err := slot.ParseTimeOfDay(in.OpeningTime)
	if err != nil {
		return court.NewCourtParams{}, err
	}
	closing, err := slot.ParseTimeOfDay(in.ClosingTime)
	if err != nil {
		return court.NewCourtParams{}, err
	}
	days, err := court.ParseWeekdays(in.AvailableDays)
	if err != nil {
		return court.NewCourtParams{}, err
	}
	return court.NewCourtParams{
		Name:          in.Name,
		Type:          courtType,
		PricePerHour:  in.PricePerHour,
		Description:   in.Description,
		Facilities:    in.Facilities,
		OpeningTime:   opening,
		ClosingTime:   closing,
		AvailableDays: days,
		Image:         in.Image,
	}, nil
}

func toUpdateParams(in UpdateCourtInput) (court.UpdateParams, error) {
	p := court.UpdateParams{
		Name:         in.Name,
		PricePerHour: in.PricePerHour,
		Description:  in.Description,
		Facilities:   in.Facilities,
		Image:        in.Image,
		IsActive:     in.IsActive,
	}
	if in.Type != nil {
		t, err := court.ParseType(*in.Type)
		if err != nil {
			return court.UpdateParams{}, err
		}
		p.Type = &t
	}
	if in.OpeningTime != nil {
		t, err := slot.ParseTimeOfDay(*in.OpeningTime)
		if err != nil {
			return court.UpdateParams{}, err
		}
		p.OpeningTime = &t
	}
	if in.ClosingTime != nil {
		t, err := slot.ParseTimeOfDay(*in.ClosingTime)
		if err != nil {
			return court.UpdateParams{}, err
		}
		p.ClosingTime = &t
	}
	if in.AvailableDays != nil {
		days, err := court.ParseWeekdays(*in.AvailableDays)
		if err != nil {
			return court.UpdateParams{}, err
		}
		p.AvailableDays = &days
	}
	return p, nil
}
