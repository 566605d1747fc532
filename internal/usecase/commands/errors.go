package commands

import (
	"errors"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/errs"
)

var (
	ErrCourtNotFound       = errs.Mark(errs.New("court not found"), errs.ErrNotFound)
	ErrReservationNotFound = errs.Mark(errs.New("reservation not found"), errs.ErrNotFound)
	ErrNotReservationOwner = errs.Mark(errs.New("only the owner or an admin can cancel this reservation"), errs.ErrForbidden)
	ErrAdminRequired       = errs.Mark(errs.New("admin role required"), errs.ErrForbidden)
	ErrCourtInUse          = errs.Mark(errs.New("court has upcoming reservations"), errs.ErrConflict)
)

// markDomainErr tags a domain error with the category the HTTP layer maps to a status.
func markDomainErr(err error) error {
	switch {
	case errors.Is(err, reservation.ErrSlotTaken), errors.Is(err, reservation.ErrInvalidTransition):
		return errs.Mark(err, errs.ErrConflict)
	default:
		return errs.Mark(err, errs.ErrDomainValidation)
	}
}

func markLookupErr(err error, notFound error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return notFound
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
