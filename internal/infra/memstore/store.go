// Package memstore keeps courts, reservations and users in process memory.
// It backs STORE_DRIVER=memory and the use case test suites.
package memstore

import (
	"sync"
	"time"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"
	"court-booking/internal/domain/user"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

type Store struct {
	mu    sync.RWMutex
	state *state
	clock clock.Clock

	slotMu    sync.Mutex
	slotLocks map[string]*sync.Mutex
}

func NewStore(clk clock.Clock) *Store {
	return &Store{
		state:     newState(),
		clock:     clk,
		slotLocks: make(map[string]*sync.Mutex),
	}
}

// slotLock returns the mutex serialising writers for one court and day.
func (s *Store) slotLock(courtID uuid.UUID, date slot.Date) *sync.Mutex {
	key := courtID.String() + "|" + date.String()

	s.slotMu.Lock()
	defer s.slotMu.Unlock()
	l, ok := s.slotLocks[key]
	if !ok {
		l = &sync.Mutex{}
		s.slotLocks[key] = l
	}
	return l
}

func (s *Store) snapshot() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// commit replays staged operations against the latest state. Nothing is
// published unless every operation succeeds.
func (s *Store) commit(ops []op) error {
	if len(ops) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	for _, apply := range ops {
		if _, err := apply(next); err != nil {
			return err
		}
	}
	s.state = next
	return nil
}

// op mutates a state and reports how many rows it touched.
type op func(st *state) (int64, error)

// state holds immutable values: every write stores a fresh copy.
type state struct {
	courts       map[uuid.UUID]*court.Court
	reservations map[uuid.UUID]*reservation.Reservation
	users        map[uuid.UUID]*user.User
}

func newState() *state {
	return &state{
		courts:       make(map[uuid.UUID]*court.Court),
		reservations: make(map[uuid.UUID]*reservation.Reservation),
		users:        make(map[uuid.UUID]*user.User),
	}
}

func (st *state) clone() *state {
	next := &state{
		courts:       make(map[uuid.UUID]*court.Court, len(st.courts)),
		reservations: make(map[uuid.UUID]*reservation.Reservation, len(st.reservations)),
		users:        make(map[uuid.UUID]*user.User, len(st.users)),
	}
	for k, v := range st.courts {
		next.courts[k] = v
	}
	for k, v := range st.reservations {
		next.reservations[k] = v
	}
	for k, v := range st.users {
		next.users[k] = v
	}
	return next
}

func insertCourt(c *court.Court) op {
	return func(st *state) (int64, error) {
		if _, ok := st.courts[c.ID()]; ok {
			return 0, infra.NewRepoErr(infra.KindDuplicateKey, "court already exists")
		}
		st.courts[c.ID()] = c
		return 1, nil
	}
}

func updateCourt(c *court.Court) op {
	return func(st *state) (int64, error) {
		if _, ok := st.courts[c.ID()]; !ok {
			return 0, infra.NewRepoErr(infra.KindNotFound, "court not found")
		}
		st.courts[c.ID()] = c
		return 1, nil
	}
}

func deleteCourt(id uuid.UUID) op {
	return func(st *state) (int64, error) {
		if _, ok := st.courts[id]; !ok {
			return 0, infra.NewRepoErr(infra.KindNotFound, "court not found")
		}
		for _, r := range st.reservations {
			if r.CourtID() == id {
				return 0, infra.NewRepoErr(infra.KindForeignKeyViolated, "court still has reservations")
			}
		}
		delete(st.courts, id)
		return 1, nil
	}
}

func insertReservation(r *reservation.Reservation) op {
	return func(st *state) (int64, error) {
		if _, ok := st.reservations[r.ID()]; ok {
			return 0, infra.NewRepoErr(infra.KindDuplicateKey, "reservation already exists")
		}
		if _, ok := st.courts[r.CourtID()]; !ok {
			return 0, infra.NewRepoErr(infra.KindForeignKeyViolated, "court does not exist")
		}
		if err := st.checkOverlap(r); err != nil {
			return 0, err
		}
		st.reservations[r.ID()] = r
		return 1, nil
	}
}

func updateReservation(r *reservation.Reservation) op {
	return func(st *state) (int64, error) {
		if _, ok := st.reservations[r.ID()]; !ok {
			return 0, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
		}
		if err := st.checkOverlap(r); err != nil {
			return 0, err
		}
		st.reservations[r.ID()] = r
		return 1, nil
	}
}

func deleteReservation(id uuid.UUID) op {
	return func(st *state) (int64, error) {
		if _, ok := st.reservations[id]; !ok {
			return 0, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
		}
		delete(st.reservations, id)
		return 1, nil
	}
}

// deleteInactiveReservationsByCourt is evaluated again at commit, so a
// booking committed in between survives and then blocks deleteCourt.
func deleteInactiveReservationsByCourt(courtID uuid.UUID, before slot.Date) op {
	return func(st *state) (int64, error) {
		var n int64
		for id, r := range st.reservations {
			if r.CourtID() == courtID && (!r.IsActive() || r.Date().Before(before)) {
				delete(st.reservations, id)
				n++
			}
		}
		return n, nil
	}
}

func deleteInactiveReservationsByUser(userID uuid.UUID, before slot.Date) op {
	return func(st *state) (int64, error) {
		var n int64
		for id, r := range st.reservations {
			if r.UserID() == userID && (!r.IsActive() || r.Date().Before(before)) {
				delete(st.reservations, id)
				n++
			}
		}
		return n, nil
	}
}

func insertUser(u *user.User) op {
	return func(st *state) (int64, error) {
		if _, ok := st.users[u.ID()]; ok {
			return 0, infra.NewRepoErr(infra.KindDuplicateKey, "user already exists")
		}
		if _, ok := st.userByEmail(u.Email()); ok {
			return 0, infra.NewRepoErr(infra.KindDuplicateKey, "email already registered")
		}
		st.users[u.ID()] = u
		return 1, nil
	}
}

func updateUser(u *user.User) op {
	return func(st *state) (int64, error) {
		if _, ok := st.users[u.ID()]; !ok {
			return 0, infra.NewRepoErr(infra.KindNotFound, "user not found")
		}
		if other, ok := st.userByEmail(u.Email()); ok && other.ID() != u.ID() {
			return 0, infra.NewRepoErr(infra.KindDuplicateKey, "email already registered")
		}
		st.users[u.ID()] = u
		return 1, nil
	}
}

func deleteUser(id uuid.UUID) op {
	return func(st *state) (int64, error) {
		if _, ok := st.users[id]; !ok {
			return 0, infra.NewRepoErr(infra.KindNotFound, "user not found")
		}
		for _, r := range st.reservations {
			if r.UserID() == id {
				return 0, infra.NewRepoErr(infra.KindForeignKeyViolated, "user still has reservations")
			}
		}
		delete(st.users, id)
		return 1, nil
	}
}

// checkOverlap mirrors the database exclusion constraint: two active
// reservations of one court may not overlap on the same day.
func (st *state) checkOverlap(r *reservation.Reservation) error {
	if !r.IsActive() {
		return nil
	}
	if _, taken := reservation.FindConflict(r.CourtID(), r.Date(), r.Interval(), st.bookedOn(r.CourtID(), r.Date(), r.ID())); taken {
		return infra.NewRepoErr(infra.KindConflict, "reservation overlaps an existing booking")
	}
	return nil
}

func (st *state) countActiveFrom(from slot.Date, match func(*reservation.Reservation) bool) int {
	n := 0
	for _, r := range st.reservations {
		if match(r) && r.IsActive() && !r.Date().Before(from) {
			n++
		}
	}
	return n
}

// bookedOn lists active reservations of a court on a day, skipping one id.
func (st *state) bookedOn(courtID uuid.UUID, date slot.Date, skip uuid.UUID) []reservation.Booked {
	var out []reservation.Booked
	for id, r := range st.reservations {
		if id == skip || r.CourtID() != courtID || !r.Date().Equal(date) || !r.IsActive() {
			continue
		}
		out = append(out, r.Booked())
	}
	return out
}

func (st *state) userByEmail(email user.Email) (*user.User, bool) {
	for _, u := range st.users {
		if u.Email() == email {
			return u, true
		}
	}
	return nil, false
}

func copyCourt(c *court.Court) *court.Court {
	return court.ReconstructCourt(
		c.ID(), c.Name(), c.Type(), c.PricePerHour(), c.Description(), c.Facilities(),
		c.OpeningTime(), c.ClosingTime(), c.AvailableDays(), c.Image(), c.IsActive(),
		c.CreatedAt(), c.UpdatedAt(),
	)
}

// stampCourt fills timestamps the way column defaults do in Postgres.
func stampCourt(c *court.Court, now time.Time, created bool) *court.Court {
	createdAt := c.CreatedAt()
	if created || createdAt.IsZero() {
		createdAt = now
	}
	return court.ReconstructCourt(
		c.ID(), c.Name(), c.Type(), c.PricePerHour(), c.Description(), c.Facilities(),
		c.OpeningTime(), c.ClosingTime(), c.AvailableDays(), c.Image(), c.IsActive(),
		createdAt, now,
	)
}

func copyReservation(r *reservation.Reservation) *reservation.Reservation {
	cp := *r
	return &cp
}

func copyUser(u *user.User) *user.User {
	var lastLogin *time.Time
	if ll := u.LastLogin(); ll != nil {
		t := *ll
		lastLogin = &t
	}
	return user.ReconstructUser(
		u.ID(), u.Name(), u.Email(), u.PasswordHash(), u.Role(),
		lastLogin, u.IsActive(), u.CreatedAt(), u.UpdatedAt(),
	)
}

func stampUser(u *user.User, now time.Time, created bool) *user.User {
	createdAt := u.CreatedAt()
	if created || createdAt.IsZero() {
		createdAt = now
	}
	var lastLogin *time.Time
	if ll := u.LastLogin(); ll != nil {
		t := *ll
		lastLogin = &t
	}
	return user.ReconstructUser(
		u.ID(), u.Name(), u.Email(), u.PasswordHash(), u.Role(),
		lastLogin, u.IsActive(), createdAt, now,
	)
}
