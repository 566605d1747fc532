//go:build e2e

package booking_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"court-booking/internal/domain/user"
	"court-booking/internal/handler/dto/request"
	resdto "court-booking/internal/handler/dto/response"
	"court-booking/tests/common/authtest"
	"court-booking/tests/common/dbtest"
	"court-booking/tests/common/httptest"
	"court-booking/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const bookingsURL = "/api/bookings"

type bookingSuite struct {
	e2e.SharedSuite
	jwtHelper *authtest.JWTHelper

	courtID       uuid.UUID
	customerToken string
	otherToken    string
	adminToken    string
	day           string
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(bookingSuite))
}

func (s *bookingSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = authtest.NewJWTHelper(s.Config.JWT)
	// a week ahead so the real clock never makes it a past date
	s.day = time.Now().UTC().AddDate(0, 0, 7).Format(time.DateOnly)
}

func (s *bookingSuite) seed() {
	t := s.T()
	s.courtID = dbtest.CreateTestCourt(t, s.DB, dbtest.CourtFixture{PricePerHour: 500})

	otherID := dbtest.CreateTestUser(t, s.DB, "other@example.com", string(user.RoleCustomer))
	adminID := dbtest.CreateTestUser(t, s.DB, "admin@example.com", string(user.RoleAdmin))

	// the customer goes through the real login flow
	s.customerToken = authtest.CreateAndLogin(t, s.DB, s.Router, "customer@example.com", string(user.RoleCustomer)).Token
	s.otherToken = s.jwtHelper.GenerateToken(t, otherID, user.RoleCustomer)
	s.adminToken = s.jwtHelper.GenerateToken(t, adminID, user.RoleAdmin)
}

func (s *bookingSuite) SetupTest() {
	s.SharedSuite.SetupTest()
	s.seed()
}

func (s *bookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
	s.seed()
}

func (s *bookingSuite) book(token, start, end string) (*http.Response, resdto.BookingResponse) {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, request.CreateBookingRequest{
		CourtID:   s.courtID.String(),
		Date:      s.day,
		StartTime: start,
		EndTime:   end,
	}, token)

	var res resdto.BookingResponse
	if w.Code == http.StatusCreated {
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
	}
	return w.Result(), res
}

func (s *bookingSuite) TestLifecycle() {
	t := s.T()

	resp, created := s.book(s.customerToken, "10:00", "11:30")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, int64(750), created.TotalPrice)
	require.Equal(t, "pending", created.Status)
	require.Equal(t, "pending", created.PaymentStatus)
	require.Equal(t, "/api/bookings/"+created.ID.String(), resp.Header.Get("Location"))
	require.Equal(t, 1, dbtest.CountActiveReservations(t, s.DB, s.courtID))

	// overlapping request loses, touching request wins
	resp, _ = s.book(s.otherToken, "11:00", "12:00")
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp, _ = s.book(s.otherToken, "11:30", "12:30")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	w := httptest.PerformRequest(t, s.Router, http.MethodGet,
		"/api/courts/"+s.courtID.String()+"/availability?date="+s.day, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var availability resdto.AvailabilityResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &availability))
	want := []resdto.TimeRange{
		{StartTime: "10:00", EndTime: "11:30"},
		{StartTime: "11:30", EndTime: "12:30"},
	}
	if diff := cmp.Diff(want, availability.Booked); diff != "" {
		t.Errorf("booked slots mismatch (-want +got):\n%s", diff)
	}

	// strangers can neither read nor cancel
	bookingURL := bookingsURL + "/" + created.ID.String()
	w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingURL, nil, s.otherToken)
	require.Equal(t, http.StatusForbidden, w.Code)
	w = httptest.PerformRequest(t, s.Router, http.MethodPut, bookingURL+"/cancel", nil, s.otherToken)
	require.Equal(t, http.StatusForbidden, w.Code)

	// customers cannot confirm; admins can
	update := map[string]any{"status": "confirmed", "payment_status": "paid"}
	w = httptest.PerformRequest(t, s.Router, http.MethodPut, bookingURL, update, s.customerToken)
	require.Equal(t, http.StatusForbidden, w.Code)
	w = httptest.PerformRequest(t, s.Router, http.MethodPut, bookingURL, update, s.adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var confirmed resdto.BookingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &confirmed))
	want2 := created
	want2.Status = "confirmed"
	want2.PaymentStatus = "paid"
	if diff := cmp.Diff(want2, confirmed, cmpopts.IgnoreFields(resdto.BookingResponse{}, "CreatedAt", "UpdatedAt")); diff != "" {
		t.Errorf("confirmed booking mismatch (-want +got):\n%s", diff)
	}

	// owner cancels twice, the slot frees up
	for range 2 {
		w = httptest.PerformRequest(t, s.Router, http.MethodPut, bookingURL+"/cancel", nil, s.customerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	w = httptest.PerformRequest(t, s.Router, http.MethodPut, bookingURL, map[string]any{"status": "confirmed"}, s.adminToken)
	require.Equal(t, http.StatusConflict, w.Code)

	resp, _ = s.book(s.otherToken, "10:00", "11:00")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/mine", nil, s.customerToken)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []resdto.BookingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &mine))
	require.Len(t, mine, 1)
	require.Equal(t, "cancelled", mine[0].Status)
}

func (s *bookingSuite) TestCreateValidation() {
	tests := []struct {
		name       string
		date       string
		start, end string
		status     int
		msg        string
	}{
		{name: "past date", date: "2020-01-01", start: "10:00", end: "11:00", status: http.StatusBadRequest, msg: "in the past"},
		{name: "past date wins over bad times", date: "2020-01-01", start: "25:00", end: "nope", status: http.StatusBadRequest, msg: "in the past"},
		{name: "end before start", start: "12:00", end: "11:00", status: http.StatusBadRequest, msg: "start time must be before end time"},
		{name: "before opening", start: "05:00", end: "07:00", status: http.StatusBadRequest, msg: "operating hours"},
		{name: "malformed time", start: "9am", end: "10:00", status: http.StatusBadRequest, msg: "HH:MM"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			date := tt.date
			if date == "" {
				date = s.day
			}
			w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, request.CreateBookingRequest{
				CourtID:   s.courtID.String(),
				Date:      date,
				StartTime: tt.start,
				EndTime:   tt.end,
			}, s.customerToken)
			httptest.AssertErrorResponse(s.T(), w, tt.status, tt.msg)
		})
	}

	s.Run("unknown court", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, request.CreateBookingRequest{
			CourtID:   uuid.NewString(),
			Date:      s.day,
			StartTime: "10:00",
			EndTime:   "11:00",
		}, s.customerToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "court not found")
	})

	s.Run("anonymous caller", func() {
		resp, _ := s.book("", "10:00", "11:00")
		require.Equal(s.T(), http.StatusUnauthorized, resp.StatusCode)
	})
}

func (s *bookingSuite) TestConcurrentCreateHasSingleWinner() {
	t := s.T()
	const contenders = 12

	var (
		wg       sync.WaitGroup
		start    = make(chan struct{})
		mu       sync.Mutex
		statuses = map[int]int{}
	)
	for range contenders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, request.CreateBookingRequest{
				CourtID:   s.courtID.String(),
				Date:      s.day,
				StartTime: "18:00",
				EndTime:   "19:00",
			}, s.customerToken)
			mu.Lock()
			statuses[w.Code]++
			mu.Unlock()
		}()
	}
	close(start)
	wg.Wait()

	require.Equal(t, map[int]int{http.StatusCreated: 1, http.StatusConflict: contenders - 1}, statuses)

	require.Equal(t, 1, dbtest.CountActiveReservations(t, s.DB, s.courtID))
}

func (s *bookingSuite) TestCourtDeleteBlockedByUpcomingBookings() {
	t := s.T()
	resp, _ := s.book(s.customerToken, "08:00", "09:00")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	courtURL := "/api/courts/" + s.courtID.String()
	w := httptest.PerformRequest(t, s.Router, http.MethodDelete, courtURL, nil, s.customerToken)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.PerformRequest(t, s.Router, http.MethodDelete, courtURL, nil, s.adminToken)
	httptest.AssertErrorResponse(t, w, http.StatusConflict, "upcoming reservations")

	// an admin-only listing still shows the booking
	w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?court_id="+s.courtID.String(), nil, s.adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	var all []resdto.BookingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &all))
	require.Len(t, all, 1)
}

func (s *bookingSuite) TestCourtDeleteWaitsForUncommittedBooking() {
	t := s.T()
	ctx := context.Background()
	userID := dbtest.CreateTestUser(t, s.DB, "late@example.com", string(user.RoleCustomer))

	tx, err := s.DB.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()
	dbtest.InsertReservation(t, tx, s.courtID, userID, s.day, "07:00", "08:00")

	done := make(chan int, 1)
	go func() {
		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, "/api/courts/"+s.courtID.String(), nil, s.adminToken)
		done <- w.Code
	}()

	select {
	case code := <-done:
		t.Fatalf("court delete returned %d while a booking insert was still open", code)
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, tx.Commit(ctx))
	require.Equal(t, http.StatusConflict, <-done)
	require.Equal(t, 1, dbtest.CountActiveReservations(t, s.DB, s.courtID))
}
