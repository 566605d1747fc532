package memstore

import (
	"context"
	"sort"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"
	"court-booking/internal/domain/user"
	"court-booking/internal/infra"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type UnitOfWork struct {
	store *Store
}

func NewUnitOfWork(store *Store) shared.UnitOfWork {
	return &UnitOfWork{store: store}
}

// Within runs fn against a private copy of the store. Writes are staged and
// replayed on commit, so constraint violations surface even when another
// writer committed in between.
func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &memTx{store: u.store, working: u.store.snapshot()}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return u.store.commit(tx.ops)
}

func (u *UnitOfWork) WithinSlotLock(ctx context.Context, courtID uuid.UUID, date slot.Date, fn func(ctx context.Context, tx shared.Tx) error) error {
	l := u.store.slotLock(courtID, date)
	l.Lock()
	defer l.Unlock()
	return u.Within(ctx, fn)
}

func (u *UnitOfWork) CommandReads() shared.CommandReads {
	return &committedReads{store: u.store}
}

type memTx struct {
	store   *Store
	working *state
	ops     []op
}

// stage applies o to the working copy and remembers it for commit.
func (t *memTx) stage(o op) (int64, error) {
	n, err := o(t.working)
	if err != nil {
		return 0, err
	}
	t.ops = append(t.ops, o)
	return n, nil
}

func (t *memTx) Reservations() shared.ReservationRepository { return &reservationRepo{tx: t} }
func (t *memTx) Courts() shared.CourtRepository             { return &courtRepo{tx: t} }
func (t *memTx) Users() shared.UserRepository               { return &userRepo{tx: t} }
func (t *memTx) Reads() shared.CommandReads                 { return &stateReads{st: t.working} }

type reservationRepo struct{ tx *memTx }

func (r *reservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	_, err := r.tx.stage(insertReservation(copyReservation(res)))
	return err
}

func (r *reservationRepo) Update(_ context.Context, res *reservation.Reservation) error {
	_, err := r.tx.stage(updateReservation(copyReservation(res)))
	return err
}

func (r *reservationRepo) Delete(_ context.Context, id uuid.UUID) error {
	_, err := r.tx.stage(deleteReservation(id))
	return err
}

func (r *reservationRepo) DeleteInactiveByCourt(_ context.Context, courtID uuid.UUID, before slot.Date) (int64, error) {
	return r.tx.stage(deleteInactiveReservationsByCourt(courtID, before))
}

func (r *reservationRepo) DeleteInactiveByUser(_ context.Context, userID uuid.UUID, before slot.Date) (int64, error) {
	return r.tx.stage(deleteInactiveReservationsByUser(userID, before))
}

type courtRepo struct{ tx *memTx }

func (r *courtRepo) Create(_ context.Context, c *court.Court) error {
	_, err := r.tx.stage(insertCourt(stampCourt(c, r.tx.store.clock.Now(), true)))
	return err
}

func (r *courtRepo) Update(_ context.Context, c *court.Court) error {
	_, err := r.tx.stage(updateCourt(stampCourt(c, r.tx.store.clock.Now(), false)))
	return err
}

// Lock only checks existence; commit-time replay plays the role of the row lock.
func (r *courtRepo) Lock(_ context.Context, id uuid.UUID) error {
	if _, ok := r.tx.working.courts[id]; !ok {
		return infra.NewRepoErr(infra.KindNotFound, "court not found")
	}
	return nil
}

func (r *courtRepo) Delete(_ context.Context, id uuid.UUID) error {
	_, err := r.tx.stage(deleteCourt(id))
	return err
}

type userRepo struct{ tx *memTx }

func (r *userRepo) Create(_ context.Context, u *user.User) error {
	_, err := r.tx.stage(insertUser(stampUser(u, r.tx.store.clock.Now(), true)))
	return err
}

func (r *userRepo) UpdateLastLogin(_ context.Context, u *user.User) error {
	current, ok := r.tx.working.users[u.ID()]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "user not found")
	}
	next := user.ReconstructUser(
		current.ID(), current.Name(), current.Email(), current.PasswordHash(), current.Role(),
		u.LastLogin(), current.IsActive(), current.CreatedAt(), r.tx.store.clock.Now(),
	)
	_, err := r.tx.stage(updateUser(next))
	return err
}

func (r *userRepo) Update(_ context.Context, u *user.User) error {
	_, err := r.tx.stage(updateUser(stampUser(u, r.tx.store.clock.Now(), false)))
	return err
}

func (r *userRepo) Lock(_ context.Context, id uuid.UUID) error {
	if _, ok := r.tx.working.users[id]; !ok {
		return infra.NewRepoErr(infra.KindNotFound, "user not found")
	}
	return nil
}

func (r *userRepo) Delete(_ context.Context, id uuid.UUID) error {
	_, err := r.tx.stage(deleteUser(id))
	return err
}

// stateReads serves CommandReads from one state value.
type stateReads struct {
	st *state
}

func (r *stateReads) CourtByID(_ context.Context, id uuid.UUID) (*court.Court, error) {
	c, ok := r.st.courts[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "court not found")
	}
	return copyCourt(c), nil
}

func (r *stateReads) ReservationByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := r.st.reservations[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	return copyReservation(res), nil
}

func (r *stateReads) ActiveReservationsOn(_ context.Context, courtID uuid.UUID, date slot.Date) ([]reservation.Booked, error) {
	booked := r.st.bookedOn(courtID, date, uuid.Nil)
	sort.Slice(booked, func(i, j int) bool {
		return booked[i].Interval.Start().Before(booked[j].Interval.Start())
	})
	return booked, nil
}

func (r *stateReads) CountActiveReservationsFrom(_ context.Context, courtID uuid.UUID, from slot.Date) (int, error) {
	return r.st.countActiveFrom(from, func(res *reservation.Reservation) bool { return res.CourtID() == courtID }), nil
}

func (r *stateReads) CountActiveUserReservationsFrom(_ context.Context, userID uuid.UUID, from slot.Date) (int, error) {
	return r.st.countActiveFrom(from, func(res *reservation.Reservation) bool { return res.UserID() == userID }), nil
}

func (r *stateReads) UserByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.st.users[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "user not found")
	}
	return copyUser(u), nil
}

func (r *stateReads) UserByEmail(_ context.Context, email user.Email) (*user.User, error) {
	u, ok := r.st.userByEmail(email)
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "user not found")
	}
	return copyUser(u), nil
}

// committedReads looks at the latest committed state on every call.
type committedReads struct {
	store *Store
}

func (r *committedReads) reads() *stateReads {
	return &stateReads{st: r.store.committed()}
}

func (r *committedReads) CourtByID(ctx context.Context, id uuid.UUID) (*court.Court, error) {
	return r.reads().CourtByID(ctx, id)
}

func (r *committedReads) ReservationByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return r.reads().ReservationByID(ctx, id)
}

func (r *committedReads) ActiveReservationsOn(ctx context.Context, courtID uuid.UUID, date slot.Date) ([]reservation.Booked, error) {
	return r.reads().ActiveReservationsOn(ctx, courtID, date)
}

func (r *committedReads) CountActiveReservationsFrom(ctx context.Context, courtID uuid.UUID, from slot.Date) (int, error) {
	return r.reads().CountActiveReservationsFrom(ctx, courtID, from)
}

func (r *committedReads) CountActiveUserReservationsFrom(ctx context.Context, userID uuid.UUID, from slot.Date) (int, error) {
	return r.reads().CountActiveUserReservationsFrom(ctx, userID, from)
}

func (r *committedReads) UserByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.reads().UserByID(ctx, id)
}

func (r *committedReads) UserByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	return r.reads().UserByEmail(ctx, email)
}
