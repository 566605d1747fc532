package readstore

import (
	"context"
	"strconv"
	"strings"

	"court-booking/internal/domain/slot"
	"court-booking/internal/infra"
	"court-booking/internal/infra/db"
	"court-booking/internal/pkg/pgconv"
	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationViewSelect = `
SELECT r.id, r.court_id, c.name, c.court_type, r.user_id, u.name, u.email,
       r.booking_date, r.start_time, r.end_time, r.total_price, r.status, r.payment_status,
       r.notes, r.created_at, r.updated_at
FROM reservations r
JOIN courts c ON c.id = r.court_id
JOIN users u ON u.id = r.user_id`

const reservationViewOrder = `
ORDER BY r.booking_date DESC, r.start_time ASC, r.created_at ASC`

const bookedSlotsSQL = `
SELECT id, start_time, end_time, status
FROM reservations
WHERE court_id = $1 AND booking_date = $2 AND status <> 'cancelled'
ORDER BY start_time`

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	rows, err := r.db.Query(ctx, reservationViewSelect+"\nWHERE r.id = $1", id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	view, err := pgx.CollectExactlyOneRow(rows, scanReservationView)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return view, nil
}

func (r *ReservationReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.ReservationView, error) {
	rows, err := r.db.Query(ctx, reservationViewSelect+"\nWHERE r.user_id = $1"+reservationViewOrder, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list user reservations", err)
	}
	views, err := pgx.CollectRows(rows, scanReservationView)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan user reservations", err)
	}
	return views, nil
}

func (r *ReservationReadStore) FindAll(ctx context.Context, filter queries.ReservationFilter) ([]*queries.ReservationView, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.CourtID != nil {
		conds = append(conds, "r.court_id = "+arg(*filter.CourtID))
	}
	if filter.Date != nil {
		conds = append(conds, "r.booking_date = "+arg(*filter.Date)+"::date")
	}
	if filter.Status != nil {
		conds = append(conds, "r.status = "+arg(*filter.Status))
	}

	query := reservationViewSelect
	if len(conds) > 0 {
		query += "\nWHERE " + strings.Join(conds, " AND ")
	}
	query += reservationViewOrder
	query += "\nLIMIT " + arg(filter.Limit) + " OFFSET " + arg(filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	views, err := pgx.CollectRows(rows, scanReservationView)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan reservations", err)
	}
	return views, nil
}

func (r *ReservationReadStore) FindBookedSlots(ctx context.Context, courtID uuid.UUID, date slot.Date) ([]*queries.BookedSlotView, error) {
	rows, err := r.db.Query(ctx, bookedSlotsSQL, courtID, pgconv.DateToPgtype(date))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booked slots", err)
	}
	slots, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.BookedSlotView, error) {
		var (
			v          queries.BookedSlotView
			start, end pgtype.Time
		)
		if err := row.Scan(&v.ReservationID, &start, &end, &v.Status); err != nil {
			return nil, err
		}
		interval, err := pgconv.IntervalFromPgtype(start, end)
		if err != nil {
			return nil, err
		}
		v.StartTime = interval.Start().String()
		v.EndTime = interval.End().String()
		return &v, nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan booked slots", err)
	}
	return slots, nil
}

func scanReservationView(row pgx.CollectableRow) (*queries.ReservationView, error) {
	var (
		v                    queries.ReservationView
		date                 pgtype.Date
		start, end           pgtype.Time
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &v.CourtID, &v.CourtName, &v.CourtType, &v.UserID, &v.UserName, &v.UserEmail,
		&date, &start, &end, &v.TotalPrice, &v.Status, &v.PaymentStatus,
		&v.Notes, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	d, err := pgconv.DateFromPgtype(date)
	if err != nil {
		return nil, err
	}
	interval, err := pgconv.IntervalFromPgtype(start, end)
	if err != nil {
		return nil, err
	}
	v.Date = d.String()
	v.StartTime = interval.Start().String()
	v.EndTime = interval.End().String()
	v.CreatedAt = createdAt.Time
	v.UpdatedAt = updatedAt.Time
	return &v, nil
}
