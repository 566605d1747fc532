//go:build unit

package queries_test

import (
	"context"
	"testing"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/slot"
	"court-booking/internal/domain/user"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"
	"court-booking/tests/common/builder"
	queriesmock "court-booking/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type stubLookup map[uuid.UUID]*court.Court

func (l stubLookup) CourtByID(_ context.Context, id uuid.UUID) (*court.Court, error) {
	c, ok := l[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "court not found")
	}
	return c, nil
}

func (stubLookup) Invalidate(context.Context, uuid.UUID) error { return nil }

type QueriesTestSuite struct {
	suite.Suite
	ctx          context.Context
	mockCtrl     *gomock.Controller
	reservations *queriesmock.MockReservationReadStore
	courts       *queriesmock.MockCourtReadStore
	users        *queriesmock.MockUserReadStore
	lookup       stubLookup

	customer shared.Actor
	admin    shared.Actor
}

func TestQueriesSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}

func (s *QueriesTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.reservations = queriesmock.NewMockReservationReadStore(s.mockCtrl)
	s.courts = queriesmock.NewMockCourtReadStore(s.mockCtrl)
	s.users = queriesmock.NewMockUserReadStore(s.mockCtrl)
	s.lookup = stubLookup{}

	s.customer = shared.Actor{UserID: uuid.New(), Role: user.RoleCustomer}
	s.admin = shared.Actor{UserID: uuid.New(), Role: user.RoleAdmin}
}

func (s *QueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *QueriesTestSuite) reservationQueries() queries.ReservationQueries {
	return queries.NewReservationQueries(s.reservations, s.lookup)
}

func (s *QueriesTestSuite) TestReservationGetByID() {
	view := builder.NewReservationBuilder().WithUser(s.customer.UserID).BuildView()

	s.Run("owner sees their booking", func() {
		s.reservations.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)
		got, err := s.reservationQueries().GetByID(s.ctx, s.customer, view.ID)
		s.Require().NoError(err)
		s.Equal(view, got)
	})

	s.Run("admin sees any booking", func() {
		s.reservations.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)
		_, err := s.reservationQueries().GetByID(s.ctx, s.admin, view.ID)
		s.NoError(err)
	})

	s.Run("other customers are forbidden", func() {
		s.reservations.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)
		stranger := shared.Actor{UserID: uuid.New(), Role: user.RoleCustomer}
		_, err := s.reservationQueries().GetByID(s.ctx, stranger, view.ID)
		s.True(errs.Is(err, errs.ErrForbidden))
	})

	s.Run("missing booking maps to not found", func() {
		s.reservations.EXPECT().FindByID(gomock.Any(), gomock.Any()).
			Return(nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found"))
		_, err := s.reservationQueries().GetByID(s.ctx, s.admin, uuid.New())
		s.ErrorIs(err, queries.ErrReservationNotFound)
		s.True(errs.Is(err, errs.ErrNotFound))
	})

	s.Run("store failures are database errors", func() {
		s.reservations.EXPECT().FindByID(gomock.Any(), gomock.Any()).
			Return(nil, errs.New("connection reset"))
		_, err := s.reservationQueries().GetByIDSystem(s.ctx, uuid.New())
		s.True(errs.Is(err, errs.ErrDatabaseOperationFailed))
	})
}

func (s *QueriesTestSuite) TestListAll() {
	s.Run("customers are rejected before the store is touched", func() {
		_, err := s.reservationQueries().ListAll(s.ctx, s.customer, queries.ReservationFilter{})
		s.ErrorIs(err, queries.ErrAdminRequired)
	})

	s.Run("filter is normalized", func() {
		courtID := uuid.New()
		date := "2026-10-19"
		status := "confirmed"
		s.reservations.EXPECT().FindAll(gomock.Any(), queries.ReservationFilter{
			CourtID: &courtID,
			Date:    &date,
			Status:  &status,
			Limit:   queries.MaxListLimit,
			Offset:  0,
		}).Return([]*queries.ReservationView{}, nil)

		_, err := s.reservationQueries().ListAll(s.ctx, s.admin, queries.ReservationFilter{
			CourtID: &courtID,
			Date:    &date,
			Status:  &status,
			Limit:   5000,
			Offset:  -3,
		})
		s.NoError(err)
	})

	s.Run("default limit", func() {
		s.reservations.EXPECT().FindAll(gomock.Any(), queries.ReservationFilter{Limit: queries.DefaultListLimit}).
			Return(nil, nil)
		_, err := s.reservationQueries().ListAll(s.ctx, s.admin, queries.ReservationFilter{})
		s.NoError(err)
	})

	for name, filter := range map[string]queries.ReservationFilter{
		"unknown status": {Status: ptr("archived")},
		"bad date":       {Date: ptr("2026-13-01")},
	} {
		s.Run(name, func() {
			_, err := s.reservationQueries().ListAll(s.ctx, s.admin, filter)
			s.True(errs.Is(err, queries.ErrInvalidFilter))
			s.True(errs.Is(err, errs.ErrDomainValidation))
		})
	}
}

func (s *QueriesTestSuite) TestListMine() {
	views := []*queries.ReservationView{builder.NewReservationBuilder().WithUser(s.customer.UserID).BuildView()}
	s.reservations.EXPECT().FindByUserID(gomock.Any(), s.customer.UserID).Return(views, nil)

	got, err := s.reservationQueries().ListMine(s.ctx, s.customer)
	s.Require().NoError(err)
	s.Len(got, 1)
}

func (s *QueriesTestSuite) TestAvailability() {
	c := builder.NewCourtBuilder().WithHours("08:00", "20:00").WithDays("Monday", "Tuesday").MustBuildDomain()
	s.lookup[c.ID()] = c
	booked := []*queries.BookedSlotView{{ReservationID: uuid.New(), StartTime: "09:00", EndTime: "10:00", Status: "pending"}}

	s.Run("open day", func() {
		monday, err := slot.ParseDate("2026-10-19")
		s.Require().NoError(err)
		s.reservations.EXPECT().FindBookedSlots(gomock.Any(), c.ID(), monday).Return(booked, nil)

		view, err := s.reservationQueries().Availability(s.ctx, c.ID(), monday)
		s.Require().NoError(err)
		s.True(view.Open)
		s.Equal("2026-10-19", view.Date)
		s.Equal("08:00", view.OpeningTime)
		s.Equal("20:00", view.ClosingTime)
		s.Equal(booked, view.Booked)
	})

	s.Run("closed weekday", func() {
		saturday, err := slot.ParseDate("2026-10-17")
		s.Require().NoError(err)
		s.reservations.EXPECT().FindBookedSlots(gomock.Any(), c.ID(), saturday).Return(nil, nil)

		view, err := s.reservationQueries().Availability(s.ctx, c.ID(), saturday)
		s.Require().NoError(err)
		s.False(view.Open)
	})

	s.Run("unknown court", func() {
		_, err := s.reservationQueries().Availability(s.ctx, uuid.New(), slot.NewDate(2026, 10, 19))
		s.ErrorIs(err, queries.ErrCourtNotFound)
	})
}

func (s *QueriesTestSuite) TestCourtQueries() {
	q := queries.NewCourtQueries(s.courts)
	view := builder.NewCourtBuilder().BuildView()

	s.Run("list passes the active flag through", func() {
		s.courts.EXPECT().FindAll(gomock.Any(), true).Return([]*queries.CourtView{view}, nil)
		got, err := q.List(s.ctx, true)
		s.Require().NoError(err)
		s.Len(got, 1)
	})

	s.Run("missing court", func() {
		s.courts.EXPECT().FindByID(gomock.Any(), gomock.Any()).
			Return(nil, infra.NewRepoErr(infra.KindNotFound, "court not found"))
		_, err := q.GetByID(s.ctx, uuid.New())
		s.ErrorIs(err, queries.ErrCourtNotFound)
	})
}

func (s *QueriesTestSuite) TestGetCurrentUser() {
	q := queries.NewUserQueries(s.users)

	s.Run("active user", func() {
		view := builder.NewUserBuilder().BuildReadModel()
		s.users.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)
		got, err := q.GetCurrentUser(s.ctx, view.ID)
		s.Require().NoError(err)
		s.Equal(view.Email, got.Email)
	})

	s.Run("inactive user is unauthenticated", func() {
		view := builder.NewUserBuilder().AsInactive().BuildReadModel()
		s.users.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)
		_, err := q.GetCurrentUser(s.ctx, view.ID)
		s.ErrorIs(err, queries.ErrUserInactive)
		s.True(errs.Is(err, errs.ErrUnauthenticated))
	})

	s.Run("unknown user", func() {
		s.users.EXPECT().FindByID(gomock.Any(), gomock.Any()).
			Return(nil, infra.NewRepoErr(infra.KindNotFound, "user not found"))
		_, err := q.GetCurrentUser(s.ctx, uuid.New())
		s.ErrorIs(err, queries.ErrUserNotFound)
	})
}

func (s *QueriesTestSuite) TestUserAdminViews() {
	q := queries.NewUserQueries(s.users)

	s.Run("list includes deactivated accounts", func() {
		views := []*queries.AuthorizedUserView{
			builder.NewUserBuilder().BuildReadModel(),
			builder.NewUserBuilder().WithEmail("off@example.com").AsInactive().BuildReadModel(),
		}
		s.users.EXPECT().FindAll(gomock.Any()).Return(views, nil)
		got, err := q.List(s.ctx, s.admin)
		s.Require().NoError(err)
		s.Len(got, 2)
	})

	s.Run("get returns a deactivated account", func() {
		view := builder.NewUserBuilder().AsInactive().BuildReadModel()
		s.users.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)
		got, err := q.GetByID(s.ctx, s.admin, view.ID)
		s.Require().NoError(err)
		s.False(got.IsActive)
	})

	s.Run("customers are refused", func() {
		_, err := q.List(s.ctx, s.customer)
		s.ErrorIs(err, queries.ErrAdminRequired)
		_, err = q.GetByID(s.ctx, s.customer, uuid.New())
		s.True(errs.Is(err, errs.ErrForbidden))
	})

	s.Run("unknown user", func() {
		s.users.EXPECT().FindByID(gomock.Any(), gomock.Any()).
			Return(nil, infra.NewRepoErr(infra.KindNotFound, "user not found"))
		_, err := q.GetByID(s.ctx, s.admin, uuid.New())
		s.ErrorIs(err, queries.ErrUserNotFound)
	})

	s.Run("store failure", func() {
		s.users.EXPECT().FindAll(gomock.Any()).Return(nil, infra.NewRepoErr(infra.KindDBFailure, "boom"))
		_, err := q.List(s.ctx, s.admin)
		s.True(errs.Is(err, errs.ErrDatabaseOperationFailed))
	})
}

func ptr[T any](v T) *T { return &v }
