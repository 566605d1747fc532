package readstore

import (
	"context"

	"court-booking/internal/domain/court"
	"court-booking/internal/infra"
	"court-booking/internal/infra/db"
	"court-booking/internal/infra/repository"
	"court-booking/internal/pkg/pgconv"
	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const courtViewSelect = `
SELECT id, name, court_type, price_per_hour, description, facilities,
       opening_time, closing_time, available_days, image, is_active, created_at, updated_at
FROM courts`

type CourtReadStore struct {
	db db.DBTX
}

func NewCourtReadStore(dbtx db.DBTX) *CourtReadStore {
	return &CourtReadStore{db: dbtx}
}

func (r *CourtReadStore) FindAll(ctx context.Context, activeOnly bool) ([]*queries.CourtView, error) {
	query := courtViewSelect
	if activeOnly {
		query += "\nWHERE is_active"
	}
	query += "\nORDER BY name, id"

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list courts", err)
	}
	views, err := pgx.CollectRows(rows, scanCourtView)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan courts", err)
	}
	return views, nil
}

func (r *CourtReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CourtView, error) {
	rows, err := r.db.Query(ctx, courtViewSelect+"\nWHERE id = $1", id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find court by ID", err)
	}
	view, err := pgx.CollectExactlyOneRow(rows, scanCourtView)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("court not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find court by ID", err)
	}
	return view, nil
}

func scanCourtView(row pgx.CollectableRow) (*queries.CourtView, error) {
	var r repository.CourtRow
	if err := row.Scan(r.ScanTargets()...); err != nil {
		return nil, err
	}
	c, err := r.ToDomain()
	if err != nil {
		return nil, err
	}
	return &queries.CourtView{
		ID:            c.ID(),
		Name:          c.Name(),
		Type:          c.Type().String(),
		PricePerHour:  c.PricePerHour(),
		Description:   c.Description(),
		Facilities:    c.Facilities(),
		OpeningTime:   c.OpeningTime().String(),
		ClosingTime:   c.ClosingTime().String(),
		AvailableDays: court.WeekdayNames(c.AvailableDays()),
		Image:         c.Image(),
		IsActive:      c.IsActive(),
		CreatedAt:     c.CreatedAt(),
		UpdatedAt:     c.UpdatedAt(),
	}, nil
}
