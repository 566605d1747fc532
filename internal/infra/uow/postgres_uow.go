package uow

import (
	"context"
	"errors"
	"log/slog"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"
	"court-booking/internal/domain/user"
	"court-booking/internal/infra"
	"court-booking/internal/infra/db"
	"court-booking/internal/infra/repository"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errTransactionBegin  = errs.New("failed to begin transaction")
	errTransactionCommit = errs.New("failed to commit transaction")
)

// slotLockSQL serialises writers on one court and day until the transaction ends.
const slotLockSQL = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`

type PostgresUoW struct {
	pool  *pgxpool.Pool
	retry retryPolicy
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool, retry: defaultRetryPolicy}
}

// Within runs fn in a READ COMMITTED transaction; slot consistency comes from WithinSlotLock.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// WithinSlotLock takes a transaction-scoped advisory lock keyed by court and
// date before fn runs, so the conflict read and the insert see the same rows.
func (u *PostgresUoW) WithinSlotLock(ctx context.Context, courtID uuid.UUID, date slot.Date, fn func(ctx context.Context, tx shared.Tx) error) error {
	key := courtID.String() + "|" + date.String()
	return u.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		pt, ok := tx.(*pgTx)
		if !ok {
			return errs.New("unexpected transaction type")
		}
		if _, err := pt.dbtx.Exec(ctx, slotLockSQL, key); err != nil {
			return infra.WrapRepoErr("failed to acquire slot lock", err)
		}
		return fn(ctx, tx)
	})
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{dbtx: u.pool}
}

// runInTx gives every attempt its own transaction; fn must be safe to re-run.
func (u *PostgresUoW) runInTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.retry.run(ctx, func() error {
		return u.attempt(ctx, options, fn)
	})
}

func (u *PostgresUoW) attempt(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	if err = fn(ctx, &pgTx{dbtx: pgxTx}); err == nil {
		if err = pgxTx.Commit(ctx); err == nil {
			return nil
		}
		err = errs.Mark(err, errTransactionCommit)
	}

	if rbErr := pgxTx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
		slog.Warn("rollback failed", "error", rbErr.Error())
	}
	return err
}

type pgTx struct {
	dbtx pgx.Tx

	// Lazy-initialized repositories
	reservationRepo shared.ReservationRepository
	courtRepo       shared.CourtRepository
	userRepo        shared.UserRepository
	commandReads    shared.CommandReads
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.dbtx)
	}
	return t.reservationRepo
}

func (t *pgTx) Courts() shared.CourtRepository {
	if t.courtRepo == nil {
		t.courtRepo = repository.NewCourtRepository(t.dbtx)
	}
	return t.courtRepo
}

func (t *pgTx) Users() shared.UserRepository {
	if t.userRepo == nil {
		t.userRepo = repository.NewUserRepository(t.dbtx)
	}
	return t.userRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{dbtx: t.dbtx, lockRows: true}
	}
	return t.commandReads
}

// commandReads loads aggregates for the write side. Inside a transaction the
// reservation row is locked so concurrent status changes queue up.
type commandReads struct {
	dbtx     db.DBTX
	lockRows bool
}

func (r *commandReads) CourtByID(ctx context.Context, id uuid.UUID) (*court.Court, error) {
	return repository.NewCourtRepository(r.dbtx).FindByID(ctx, id)
}

func (r *commandReads) ReservationByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return repository.NewReservationRepository(r.dbtx).FindByID(ctx, id, r.lockRows)
}

func (r *commandReads) ActiveReservationsOn(ctx context.Context, courtID uuid.UUID, date slot.Date) ([]reservation.Booked, error) {
	return repository.NewReservationRepository(r.dbtx).ActiveOn(ctx, courtID, date)
}

func (r *commandReads) CountActiveReservationsFrom(ctx context.Context, courtID uuid.UUID, from slot.Date) (int, error) {
	return repository.NewReservationRepository(r.dbtx).CountActiveFrom(ctx, courtID, from)
}

func (r *commandReads) CountActiveUserReservationsFrom(ctx context.Context, userID uuid.UUID, from slot.Date) (int, error) {
	return repository.NewReservationRepository(r.dbtx).CountActiveByUserFrom(ctx, userID, from)
}

func (r *commandReads) UserByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return repository.NewUserRepository(r.dbtx).FindByID(ctx, id)
}

func (r *commandReads) UserByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	return repository.NewUserRepository(r.dbtx).FindByEmail(ctx, email)
}
