package queries

//go:generate mockgen -source=user.go -destination=../../../tests/mock/queries/user.go -package=queriesmock

import (
	"context"

	"github.com/google/uuid"

	"court-booking/internal/infra"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/shared"
)

var (
	ErrUserNotFound = errs.Mark(errs.New("user not found"), errs.ErrNotFound)
	ErrUserInactive = errs.Mark(errs.New("user inactive"), errs.ErrUnauthenticated)
)

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error)
	// List and GetByID are admin views and include deactivated accounts.
	List(ctx context.Context, actor shared.Actor) ([]*AuthorizedUserView, error)
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*AuthorizedUserView, error)
}

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
	FindAll(ctx context.Context) ([]*AuthorizedUserView, error)
}

type userQueriesImpl struct {
	readStore UserReadStore
}

func NewUserQueries(readStore UserReadStore) UserQueries {
	return &userQueriesImpl{
		readStore: readStore,
	}
}

// GetCurrentUser re-reads the caller on every request, so a deactivated account
// stops working even while its token is still valid.
func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error) {
	view, err := q.readStore.FindByID(ctx, userID)
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return nil, ErrUserNotFound
	case err != nil:
		return nil, errs.Mark(errs.Wrap(err, "load current user"), errs.ErrDatabaseOperationFailed)
	case !view.IsActive:
		return nil, ErrUserInactive
	}
	return view, nil
}

func (q *userQueriesImpl) List(ctx context.Context, actor shared.Actor) ([]*AuthorizedUserView, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}
	views, err := q.readStore.FindAll(ctx)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "list users"), errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

func (q *userQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*AuthorizedUserView, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}
	view, err := q.readStore.FindByID(ctx, id)
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return nil, ErrUserNotFound
	case err != nil:
		return nil, errs.Mark(errs.Wrap(err, "load user"), errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}
