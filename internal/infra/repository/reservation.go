package repository

import (
	"context"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"
	"court-booking/internal/infra"
	"court-booking/internal/infra/db"
	"court-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	insertReservationSQL = `
INSERT INTO reservations (
    id, court_id, user_id, booking_date, start_time, end_time,
    total_price, status, payment_status, notes, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	updateReservationSQL = `
UPDATE reservations
SET status = $2, payment_status = $3, notes = $4, updated_at = $5
WHERE id = $1`

	deleteReservationSQL                 = `DELETE FROM reservations WHERE id = $1`
	deleteInactiveReservationsByCourtSQL = `
DELETE FROM reservations
WHERE court_id = $1 AND (status = 'cancelled' OR booking_date < $2)`

	deleteInactiveReservationsByUserSQL = `
DELETE FROM reservations
WHERE user_id = $1 AND (status = 'cancelled' OR booking_date < $2)`

	selectReservationSQL = `
SELECT id, court_id, user_id, booking_date, start_time, end_time,
       total_price, status, payment_status, notes, created_at, updated_at
FROM reservations
WHERE id = $1`

	activeReservationsOnSQL = `
SELECT id, court_id, booking_date, start_time, end_time, status
FROM reservations
WHERE court_id = $1 AND booking_date = $2 AND status <> 'cancelled'
ORDER BY start_time`

	countActiveReservationsFromSQL = `
SELECT count(*)
FROM reservations
WHERE court_id = $1 AND booking_date >= $2 AND status <> 'cancelled'`

	countActiveUserReservationsFromSQL = `
SELECT count(*)
FROM reservations
WHERE user_id = $1 AND booking_date >= $2 AND status <> 'cancelled'`
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	_, err := r.db.Exec(ctx, insertReservationSQL,
		res.ID(),
		res.CourtID(),
		res.UserID(),
		pgconv.DateToPgtype(res.Date()),
		pgconv.TimeOfDayToPgtype(res.Interval().Start()),
		pgconv.TimeOfDayToPgtype(res.Interval().End()),
		res.TotalPrice().Amount(),
		res.Status().String(),
		res.PaymentStatus().String(),
		res.Note().String(),
		res.CreatedAt(),
		res.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	tag, err := r.db.Exec(ctx, updateReservationSQL,
		res.ID(),
		res.Status().String(),
		res.PaymentStatus().String(),
		res.Note().String(),
		res.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteReservationSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	return nil
}

func (r *ReservationRepository) DeleteInactiveByCourt(ctx context.Context, courtID uuid.UUID, before slot.Date) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteInactiveReservationsByCourtSQL, courtID, pgconv.DateToPgtype(before))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete court reservations", err)
	}
	return tag.RowsAffected(), nil
}

func (r *ReservationRepository) DeleteInactiveByUser(ctx context.Context, userID uuid.UUID, before slot.Date) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteInactiveReservationsByUserSQL, userID, pgconv.DateToPgtype(before))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete user reservations", err)
	}
	return tag.RowsAffected(), nil
}

// FindByID locks the row when forUpdate is set; only meaningful inside a transaction.
func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*reservation.Reservation, error) {
	query := selectReservationSQL
	if forUpdate {
		query += " FOR UPDATE"
	}

	var row reservationRow
	err := r.db.QueryRow(ctx, query, id).Scan(
		&row.id, &row.courtID, &row.userID, &row.date, &row.start, &row.end,
		&row.totalPrice, &row.status, &row.paymentStatus, &row.notes, &row.createdAt, &row.updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}

	res, err := row.toDomain()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode reservation", err, infra.KindDBFailure)
	}
	return res, nil
}

func (r *ReservationRepository) ActiveOn(ctx context.Context, courtID uuid.UUID, date slot.Date) ([]reservation.Booked, error) {
	rows, err := r.db.Query(ctx, activeReservationsOnSQL, courtID, pgconv.DateToPgtype(date))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active reservations", err)
	}

	booked, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (reservation.Booked, error) {
		var (
			b          reservation.Booked
			bookedDate pgtype.Date
			start, end pgtype.Time
			status     string
		)
		if err := row.Scan(&b.ID, &b.CourtID, &bookedDate, &start, &end, &status); err != nil {
			return reservation.Booked{}, err
		}
		d, err := pgconv.DateFromPgtype(bookedDate)
		if err != nil {
			return reservation.Booked{}, err
		}
		interval, err := pgconv.IntervalFromPgtype(start, end)
		if err != nil {
			return reservation.Booked{}, err
		}
		s, err := reservation.ParseStatus(status)
		if err != nil {
			return reservation.Booked{}, err
		}
		b.Date, b.Interval, b.Status = d, interval, s
		return b, nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan active reservations", err)
	}
	return booked, nil
}

func (r *ReservationRepository) CountActiveFrom(ctx context.Context, courtID uuid.UUID, from slot.Date) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, countActiveReservationsFromSQL, courtID, pgconv.DateToPgtype(from)).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count active reservations", err)
	}
	return n, nil
}

func (r *ReservationRepository) CountActiveByUserFrom(ctx context.Context, userID uuid.UUID, from slot.Date) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, countActiveUserReservationsFromSQL, userID, pgconv.DateToPgtype(from)).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count user reservations", err)
	}
	return n, nil
}

type reservationRow struct {
	id, courtID, userID   uuid.UUID
	date                  pgtype.Date
	start, end            pgtype.Time
	totalPrice            int64
	status, paymentStatus string
	notes                 string
	createdAt, updatedAt  pgtype.Timestamptz
}

func (row reservationRow) toDomain() (*reservation.Reservation, error) {
	date, err := pgconv.DateFromPgtype(row.date)
	if err != nil {
		return nil, err
	}
	interval, err := pgconv.IntervalFromPgtype(row.start, row.end)
	if err != nil {
		return nil, err
	}
	price, err := reservation.NewMoney(row.totalPrice)
	if err != nil {
		return nil, err
	}
	status, err := reservation.ParseStatus(row.status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := reservation.ParsePaymentStatus(row.paymentStatus)
	if err != nil {
		return nil, err
	}
	note, err := reservation.NewNote(row.notes)
	if err != nil {
		return nil, err
	}
	return reservation.ReconstructReservation(
		row.id, row.courtID, row.userID, date, interval, price,
		status, paymentStatus, note, row.createdAt.Time, row.updatedAt.Time,
	), nil
}
