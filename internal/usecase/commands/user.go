package commands

//go:generate mockgen -source=user.go -destination=../../../tests/mock/commands/user.go -package=commandsmock

import (
	"context"
	"log/slog"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/user"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errs.Mark(errs.New("user not found"), errs.ErrNotFound)
	ErrUserInUse            = errs.Mark(errs.New("user has upcoming reservations"), errs.ErrConflict)
	ErrSelfLockout          = errs.Mark(errs.New("admins cannot demote, deactivate or delete their own account"), errs.ErrConflict)
	ErrWrongCurrentPassword = errs.Mark(errs.New("current password is incorrect"), errs.ErrDomainValidation)
)

// UpdateProfileInput changes the caller's own account. A new password needs
// the current one.
type UpdateProfileInput struct {
	Name            *string
	Email           *string
	Password        *string
	CurrentPassword string
}

// UpdateUserInput is an admin edit; nil fields are left alone.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
	IsActive *bool
}

type UserCommands interface {
	UpdateProfile(ctx context.Context, actor shared.Actor, in UpdateProfileInput) (*queries.AuthorizedUserView, error)
	Update(ctx context.Context, actor shared.Actor, id uuid.UUID, in UpdateUserInput) (*queries.AuthorizedUserView, error)
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error
}

type userCommandsImpl struct {
	uow     shared.UnitOfWork
	hasher  PasswordHasher
	factory *reservation.Factory
	clock   clock.Clock
	queries queries.UserQueries
}

func NewUserCommands(
	uow shared.UnitOfWork,
	hasher PasswordHasher,
	factory *reservation.Factory,
	clk clock.Clock,
	userQueries queries.UserQueries,
) UserCommands {
	return &userCommandsImpl{
		uow:     uow,
		hasher:  hasher,
		factory: factory,
		clock:   clk,
		queries: userQueries,
	}
}

func (uc *userCommandsImpl) UpdateProfile(ctx context.Context, actor shared.Actor, in UpdateProfileInput) (*queries.AuthorizedUserView, error) {
	params, err := uc.toParams(in.Name, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Reads().UserByID(ctx, actor.UserID)
		if err != nil {
			return markLookupErr(err, ErrUserNotFound)
		}
		if !u.IsActive() {
			return ErrUserInactive
		}
		if in.Password != nil {
			if err := uc.hasher.Compare(u.PasswordHash(), in.CurrentPassword); err != nil {
				return ErrWrongCurrentPassword
			}
		}
		return uc.save(ctx, tx, u, params)
	})
	if infra.IsKind(err, infra.KindDuplicateKey) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	return uc.queries.GetCurrentUser(ctx, actor.UserID)
}

func (uc *userCommandsImpl) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, in UpdateUserInput) (*queries.AuthorizedUserView, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}

	params, err := uc.toParams(in.Name, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	if in.Role != nil {
		role, err := user.NewRole(*in.Role)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
		params.Role = &role
	}
	params.IsActive = in.IsActive

	if id == actor.UserID {
		demoted := params.Role != nil && !params.Role.IsAdmin()
		deactivated := params.IsActive != nil && !*params.IsActive
		if demoted || deactivated {
			return nil, ErrSelfLockout
		}
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Reads().UserByID(ctx, id)
		if err != nil {
			return markLookupErr(err, ErrUserNotFound)
		}
		return uc.save(ctx, tx, u, params)
	})
	if infra.IsKind(err, infra.KindDuplicateKey) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	return uc.queries.GetByID(ctx, actor, id)
}

// Delete refuses while the user holds active reservations from today on.
// Their cancelled and past reservations go with the account.
func (uc *userCommandsImpl) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrAdminRequired
	}
	if id == actor.UserID {
		return ErrSelfLockout
	}

	today := uc.factory.Today()
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Users().Lock(ctx, id); err != nil {
			return markLookupErr(err, ErrUserNotFound)
		}

		upcoming, err := tx.Reads().CountActiveUserReservationsFrom(ctx, id, today)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if upcoming > 0 {
			return ErrUserInUse
		}

		removed, err := tx.Reservations().DeleteInactiveByUser(ctx, id, today)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if removed > 0 {
			slog.Info("removed historical reservations with user", "user_id", id, "count", removed)
		}

		if err := tx.Users().Delete(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return ErrUserInUse
			}
			return markLookupErr(err, ErrUserNotFound)
		}
		return nil
	})
	if infra.IsKind(err, infra.KindForeignKeyViolated) {
		return ErrUserInUse
	}
	return err
}

func (uc *userCommandsImpl) save(ctx context.Context, tx shared.Tx, u *user.User, params user.UpdateParams) error {
	if !u.Apply(params, uc.clock.Now()) {
		return nil
	}
	if err := tx.Users().Update(ctx, u); err != nil {
		switch {
		case infra.IsKind(err, infra.KindDuplicateKey):
			return ErrEmailTaken
		case infra.IsKind(err, infra.KindNotFound):
			return ErrUserNotFound
		default:
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}
	return nil
}

// toParams validates the shared account fields and hashes a new password
// before any transaction starts.
func (uc *userCommandsImpl) toParams(name, email, password *string) (user.UpdateParams, error) {
	var p user.UpdateParams
	if name != nil {
		n, err := user.NewName(*name)
		if err != nil {
			return p, errs.Mark(err, errs.ErrDomainValidation)
		}
		p.Name = &n
	}
	if email != nil {
		e, err := user.NewEmail(*email)
		if err != nil {
			return p, errs.Mark(err, errs.ErrDomainValidation)
		}
		p.Email = &e
	}
	if password != nil {
		pw, err := user.NewPassword(*password)
		if err != nil {
			return p, errs.Mark(err, errs.ErrDomainValidation)
		}
		hash, err := uc.hasher.Hash(pw.Value())
		if err != nil {
			return p, errs.Wrap(err, "hash password")
		}
		p.PasswordHash = &hash
	}
	return p, nil
}
