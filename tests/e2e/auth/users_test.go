//go:build e2e

package auth_test

import (
	"net/http"
	"time"

	"court-booking/internal/domain/user"
	"court-booking/internal/usecase/queries"
	"court-booking/tests/common/authtest"
	"court-booking/tests/common/dbtest"
	"court-booking/tests/common/httptest"

	"github.com/stretchr/testify/require"
)

const usersURL = "/api/users"

func (s *authSuite) TestUpdateProfile() {
	s.Run("rename and change password", func() {
		t := s.T()
		session := authtest.Login(t, s.Router, "customer@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, meURL, map[string]any{
			"name":             "Renamed",
			"password":         "brand-new-password",
			"current_password": "password123",
		}, session.Token)
		var view queries.AuthorizedUserView
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &view)
		require.Equal(t, "Renamed", view.Name)

		authtest.Login(t, s.Router, "customer@example.com", "brand-new-password")
	})

	s.Run("wrong current password", func() {
		t := s.T()
		session := authtest.Login(t, s.Router, "customer@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, meURL, map[string]any{
			"password":         "brand-new-password",
			"current_password": "not-it",
		}, session.Token)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "current password is incorrect")
	})

	s.Run("taken email", func() {
		t := s.T()
		session := authtest.Login(t, s.Router, "customer@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, meURL,
			map[string]any{"email": "admin@example.com"}, session.Token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "already registered")
	})
}

func (s *authSuite) TestUserAdministration() {
	s.Run("customers cannot list users", func() {
		t := s.T()
		session := authtest.Login(t, s.Router, "customer@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, usersURL, nil, session.Token)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("list includes deactivated accounts", func() {
		t := s.T()
		admin := authtest.Login(t, s.Router, "admin@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, usersURL, nil, admin.Token)
		var views []queries.AuthorizedUserView
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &views)
		require.Len(t, views, 3)
	})

	s.Run("deactivation ends the session", func() {
		t := s.T()
		admin := authtest.Login(t, s.Router, "admin@example.com", "password123")
		customer := authtest.Login(t, s.Router, "customer@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, usersURL+"/"+customer.User.ID.String(),
			map[string]any{"is_active": false}, admin.Token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		me := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, customer.Token)
		httptest.AssertErrorResponse(t, me, http.StatusUnauthorized, "user inactive")
	})

	s.Run("admins cannot demote themselves", func() {
		t := s.T()
		admin := authtest.Login(t, s.Router, "admin@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, usersURL+"/"+admin.User.ID.String(),
			map[string]any{"role": string(user.RoleCustomer)}, admin.Token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "their own account")
	})

	s.Run("delete waits for upcoming bookings to go", func() {
		t := s.T()
		admin := authtest.Login(t, s.Router, "admin@example.com", "password123")
		customerID := dbtest.CreateTestUser(t, s.DB, "customer@example.com", string(user.RoleCustomer))
		courtID := dbtest.CreateTestCourt(t, s.DB, dbtest.CourtFixture{PricePerHour: 500})
		day := time.Now().UTC().AddDate(0, 0, 7).Format(time.DateOnly)
		dbtest.InsertReservation(t, s.DB, courtID, customerID, day, "10:00", "11:00")

		url := usersURL + "/" + customerID.String()
		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, url, nil, admin.Token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "upcoming reservations")

		_, err := s.DB.Exec(t.Context(), "UPDATE reservations SET status = 'cancelled' WHERE user_id = $1", customerID)
		require.NoError(t, err)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, url, nil, admin.Token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, admin.Token)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "user not found")
	})
}
