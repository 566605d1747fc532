package queries

//go:generate mockgen -source=court.go -destination=../../../tests/mock/queries/court.go -package=queriesmock

import (
	"context"

	"court-booking/internal/infra"
	"court-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrCourtNotFound = errs.Mark(errs.New("court not found"), errs.ErrNotFound)

type CourtQueries interface {
	List(ctx context.Context, activeOnly bool) ([]*CourtView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*CourtView, error)
}

type CourtReadStore interface {
	FindAll(ctx context.Context, activeOnly bool) ([]*CourtView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*CourtView, error)
}

type courtQueriesImpl struct {
	store CourtReadStore
}

func NewCourtQueries(store CourtReadStore) CourtQueries {
	return &courtQueriesImpl{store: store}
}

func (q *courtQueriesImpl) List(ctx context.Context, activeOnly bool) ([]*CourtView, error) {
	views, err := q.store.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

func (q *courtQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*CourtView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}
