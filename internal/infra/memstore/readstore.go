package memstore

import (
	"context"
	"sort"
	"strings"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"
	"court-booking/internal/domain/user"
	"court-booking/internal/infra"
	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

func (s *Store) committed() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

type ReservationReadStore struct {
	store *Store
}

func NewReservationReadStore(store *Store) *ReservationReadStore {
	return &ReservationReadStore{store: store}
}

func (rs *ReservationReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	st := rs.store.committed()
	res, ok := st.reservations[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	return st.reservationView(res), nil
}

func (rs *ReservationReadStore) FindByUserID(_ context.Context, userID uuid.UUID) ([]*queries.ReservationView, error) {
	st := rs.store.committed()
	return st.reservationViews(func(r *reservation.Reservation) bool {
		return r.UserID() == userID
	}), nil
}

func (rs *ReservationReadStore) FindAll(_ context.Context, filter queries.ReservationFilter) ([]*queries.ReservationView, error) {
	st := rs.store.committed()
	views := st.reservationViews(func(r *reservation.Reservation) bool {
		if filter.CourtID != nil && r.CourtID() != *filter.CourtID {
			return false
		}
		if filter.Date != nil && r.Date().String() != *filter.Date {
			return false
		}
		if filter.Status != nil && !strings.EqualFold(r.Status().String(), *filter.Status) {
			return false
		}
		return true
	})

	if filter.Offset >= len(views) {
		return []*queries.ReservationView{}, nil
	}
	views = views[filter.Offset:]
	if filter.Limit > 0 && len(views) > filter.Limit {
		views = views[:filter.Limit]
	}
	return views, nil
}

func (rs *ReservationReadStore) FindBookedSlots(_ context.Context, courtID uuid.UUID, date slot.Date) ([]*queries.BookedSlotView, error) {
	st := rs.store.committed()
	var matched []*reservation.Reservation
	for _, r := range st.reservations {
		if r.CourtID() == courtID && r.Date().Equal(date) && r.IsActive() {
			matched = append(matched, r)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Interval().Start().Before(matched[j].Interval().Start())
	})

	out := make([]*queries.BookedSlotView, 0, len(matched))
	for _, r := range matched {
		out = append(out, &queries.BookedSlotView{
			ReservationID: r.ID(),
			StartTime:     r.Interval().Start().String(),
			EndTime:       r.Interval().End().String(),
			Status:        r.Status().String(),
		})
	}
	return out, nil
}

// reservationViews returns matches newest day first, then by start time.
func (st *state) reservationViews(match func(*reservation.Reservation) bool) []*queries.ReservationView {
	var matched []*reservation.Reservation
	for _, r := range st.reservations {
		if match(r) {
			matched = append(matched, r)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.Date().Equal(b.Date()) {
			return b.Date().Before(a.Date())
		}
		if a.Interval().Start() != b.Interval().Start() {
			return a.Interval().Start().Before(b.Interval().Start())
		}
		return a.CreatedAt().Before(b.CreatedAt())
	})

	views := make([]*queries.ReservationView, 0, len(matched))
	for _, r := range matched {
		views = append(views, st.reservationView(r))
	}
	return views
}

func (st *state) reservationView(r *reservation.Reservation) *queries.ReservationView {
	view := &queries.ReservationView{
		ID:            r.ID(),
		CourtID:       r.CourtID(),
		UserID:        r.UserID(),
		Date:          r.Date().String(),
		StartTime:     r.Interval().Start().String(),
		EndTime:       r.Interval().End().String(),
		TotalPrice:    r.TotalPrice().Amount(),
		Status:        r.Status().String(),
		PaymentStatus: r.PaymentStatus().String(),
		Notes:         r.Note().String(),
		CreatedAt:     r.CreatedAt(),
		UpdatedAt:     r.UpdatedAt(),
	}
	if c, ok := st.courts[r.CourtID()]; ok {
		view.CourtName = c.Name()
		view.CourtType = c.Type().String()
	}
	if u, ok := st.users[r.UserID()]; ok {
		view.UserName = u.Name().Value()
		view.UserEmail = u.Email().Value()
	}
	return view
}

type CourtReadStore struct {
	store *Store
}

func NewCourtReadStore(store *Store) *CourtReadStore {
	return &CourtReadStore{store: store}
}

func (cs *CourtReadStore) FindAll(_ context.Context, activeOnly bool) ([]*queries.CourtView, error) {
	st := cs.store.committed()
	var matched []*court.Court
	for _, c := range st.courts {
		if activeOnly && !c.IsActive() {
			continue
		}
		matched = append(matched, c)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Name() < matched[j].Name()
	})

	views := make([]*queries.CourtView, 0, len(matched))
	for _, c := range matched {
		views = append(views, courtView(c))
	}
	return views, nil
}

func (cs *CourtReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.CourtView, error) {
	c, ok := cs.store.committed().courts[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "court not found")
	}
	return courtView(c), nil
}

func courtView(c *court.Court) *queries.CourtView {
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
	}
}

type UserReadStore struct {
	store *Store
}

func NewUserReadStore(store *Store) *UserReadStore {
	return &UserReadStore{store: store}
}

func (us *UserReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	u, ok := us.store.committed().users[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "user not found")
	}
	return userView(u), nil
}

func (us *UserReadStore) FindAll(_ context.Context) ([]*queries.AuthorizedUserView, error) {
	st := us.store.committed()
	users := make([]*user.User, 0, len(st.users))
	for _, u := range st.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt().Equal(users[j].CreatedAt()) {
			return users[i].CreatedAt().Before(users[j].CreatedAt())
		}
		return users[i].Email().Value() < users[j].Email().Value()
	})

	views := make([]*queries.AuthorizedUserView, 0, len(users))
	for _, u := range users {
		views = append(views, userView(u))
	}
	return views, nil
}

func userView(u *user.User) *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:        u.ID(),
		Name:      u.Name().Value(),
		Email:     u.Email().Value(),
		Role:      u.Role().String(),
		IsActive:  u.IsActive(),
		LastLogin: u.LastLogin(),
	}
}
