package repository

import (
	"context"

	"court-booking/internal/domain/court"
	"court-booking/internal/infra"
	"court-booking/internal/infra/db"
	"court-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	insertCourtSQL = `
INSERT INTO courts (
    id, name, court_type, price_per_hour, description, facilities,
    opening_time, closing_time, available_days, image, is_active
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	updateCourtSQL = `
UPDATE courts
SET name = $2, court_type = $3, price_per_hour = $4, description = $5, facilities = $6,
    opening_time = $7, closing_time = $8, available_days = $9, image = $10, is_active = $11,
    updated_at = now()
WHERE id = $1`

	deleteCourtSQL = `DELETE FROM courts WHERE id = $1`
	lockCourtSQL   = `SELECT id FROM courts WHERE id = $1 FOR UPDATE`

	selectCourtSQL = `
SELECT id, name, court_type, price_per_hour, description, facilities,
       opening_time, closing_time, available_days, image, is_active, created_at, updated_at
FROM courts
WHERE id = $1`
)

type CourtRepository struct {
	db db.DBTX
}

func NewCourtRepository(dbtx db.DBTX) *CourtRepository {
	return &CourtRepository{db: dbtx}
}

func (r *CourtRepository) Create(ctx context.Context, c *court.Court) error {
	_, err := r.db.Exec(ctx, insertCourtSQL, courtArgs(c)...)
	if err != nil {
		return infra.WrapRepoErr("failed to create court", err)
	}
	return nil
}

func (r *CourtRepository) Update(ctx context.Context, c *court.Court) error {
	tag, err := r.db.Exec(ctx, updateCourtSQL, courtArgs(c)...)
	if err != nil {
		return infra.WrapRepoErr("failed to update court", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "court not found")
	}
	return nil
}

// Lock conflicts with the key share lock a reservation insert takes on its
// court, so a concurrent booking either commits first or waits for us.
func (r *CourtRepository) Lock(ctx context.Context, id uuid.UUID) error {
	var locked uuid.UUID
	if err := r.db.QueryRow(ctx, lockCourtSQL, id).Scan(&locked); err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("court not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to lock court", err)
	}
	return nil
}

func (r *CourtRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteCourtSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete court", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "court not found")
	}
	return nil
}

func (r *CourtRepository) FindByID(ctx context.Context, id uuid.UUID) (*court.Court, error) {
	var row CourtRow
	err := r.db.QueryRow(ctx, selectCourtSQL, id).Scan(row.ScanTargets()...)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("court not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find court", err)
	}

	c, err := row.ToDomain()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode court", err, infra.KindDBFailure)
	}
	return c, nil
}

func courtArgs(c *court.Court) []any {
	return []any{
		c.ID(),
		c.Name(),
		c.Type().String(),
		c.PricePerHour(),
		c.Description(),
		c.Facilities(),
		pgconv.TimeOfDayToPgtype(c.OpeningTime()),
		pgconv.TimeOfDayToPgtype(c.ClosingTime()),
		pgconv.WeekdaysToInt16(c.AvailableDays()),
		c.Image(),
		c.IsActive(),
	}
}

// CourtRow mirrors a courts row; the read store scans the same columns.
type CourtRow struct {
	ID            uuid.UUID
	Name          string
	Type          string
	PricePerHour  int64
	Description   string
	Facilities    []string
	OpeningTime   pgtype.Time
	ClosingTime   pgtype.Time
	AvailableDays []int16
	Image         string
	IsActive      bool
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

func (row *CourtRow) ScanTargets() []any {
	return []any{
		&row.ID, &row.Name, &row.Type, &row.PricePerHour, &row.Description, &row.Facilities,
		&row.OpeningTime, &row.ClosingTime, &row.AvailableDays, &row.Image, &row.IsActive,
		&row.CreatedAt, &row.UpdatedAt,
	}
}

func (row CourtRow) ToDomain() (*court.Court, error) {
	courtType, err := court.ParseType(row.Type)
	if err != nil {
		return nil, err
	}
	opening, err := pgconv.TimeOfDayFromPgtype(row.OpeningTime)
	if err != nil {
		return nil, err
	}
	closing, err := pgconv.TimeOfDayFromPgtype(row.ClosingTime)
	if err != nil {
		return nil, err
	}
	return court.ReconstructCourt(
		row.ID, row.Name, courtType, row.PricePerHour, row.Description, row.Facilities,
		opening, closing, pgconv.WeekdaysFromInt16(row.AvailableDays), row.Image, row.IsActive,
		row.CreatedAt.Time, row.UpdatedAt.Time,
	), nil
}
