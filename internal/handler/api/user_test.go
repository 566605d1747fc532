//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"court-booking/internal/domain/user"
	"court-booking/internal/handler/api"
	reqdto "court-booking/internal/handler/dto/request"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"
	"court-booking/tests/common/builder"
	"court-booking/tests/common/httptest"
	commandsmock "court-booking/tests/mock/commands"
	queriesmock "court-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type UserHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockUserCommands
	mockQueries  *queriesmock.MockUserQueries
	handler      *api.UserHandler
	actor        shared.Actor
}

func (s *UserHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(reqdto.RegisterValidators())
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockUserCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	s.handler = api.NewUserHandler(s.mockCommands, s.mockQueries)
	s.actor = shared.Actor{UserID: uuid.New(), Role: user.RoleAdmin}

	auth := fakeAuth(&s.actor)
	s.router.PUT("/auth/me", auth, s.handler.UpdateProfile)
	s.router.GET("/users", auth, s.handler.List)
	s.router.GET("/users/:id", auth, s.handler.Get)
	s.router.PUT("/users/:id", auth, s.handler.Update)
	s.router.DELETE("/users/:id", auth, s.handler.Delete)
}

func (s *UserHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestUserHandlerSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}

// ================================================================================
// TestUpdateProfile
// ================================================================================

func (s *UserHandlerTestSuite) TestUpdateProfile() {
	s.Run("success: renames the caller", func() {
		name := "Renamed"
		view := builder.NewUserBuilder().WithName(name).BuildReadModel()
		s.mockCommands.EXPECT().UpdateProfile(gomock.Any(), s.actor, commands.UpdateProfileInput{Name: &name}).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/auth/me",
			map[string]any{"name": name}, "bearer-token")

		var body queries.AuthorizedUserView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("Renamed", body.Name)
	})

	s.Run("success: password change passes the current password", func() {
		pw := "new-password"
		s.mockCommands.EXPECT().UpdateProfile(gomock.Any(), s.actor, commands.UpdateProfileInput{
			Password:        &pw,
			CurrentPassword: "old-password",
		}).Return(builder.NewUserBuilder().BuildReadModel(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/auth/me",
			map[string]any{"password": pw, "current_password": "old-password"}, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	validation := []struct {
		name string
		body map[string]any
	}{
		{name: "password without current password", body: map[string]any{"password": "new-password"}},
		{name: "short password", body: map[string]any{"password": "short", "current_password": "old-password"}},
		{name: "malformed email", body: map[string]any{"email": "not-an-email"}},
	}
	for _, tc := range validation {
		s.Run("validation: "+tc.name, func() {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/auth/me", tc.body, "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
		})
	}

	s.Run("error: 400 on a wrong current password", func() {
		s.mockCommands.EXPECT().UpdateProfile(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrWrongCurrentPassword).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/auth/me",
			map[string]any{"password": "new-password", "current_password": "guess"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "current password is incorrect")
	})

	s.Run("error: 409 when the email belongs to someone else", func() {
		s.mockCommands.EXPECT().UpdateProfile(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrEmailTaken).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/auth/me",
			map[string]any{"email": "taken@example.com"}, "bearer-token")
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/auth/me",
			map[string]any{"name": "x"}, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// ================================================================================
// TestList / TestGet
// ================================================================================

func (s *UserHandlerTestSuite) TestList() {
	s.Run("success", func() {
		views := []*queries.AuthorizedUserView{
			builder.NewUserBuilder().AsAdmin().BuildReadModel(),
			builder.NewUserBuilder().WithEmail("off@example.com").AsInactive().BuildReadModel(),
		}
		s.mockQueries.EXPECT().List(gomock.Any(), s.actor).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users", nil, "bearer-token")

		var body []queries.AuthorizedUserView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 2)
		s.False(body[1].IsActive)
	})

	s.Run("error: 403 for customers", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, queries.ErrAdminRequired).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "admin role required")
	})
}

func (s *UserHandlerTestSuite) TestGet() {
	view := builder.NewUserBuilder().BuildReadModel()

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actor, view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users/"+view.ID.String(), nil, "bearer-token")

		var body queries.AuthorizedUserView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
	})

	s.Run("error: 404 when missing", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, queries.ErrUserNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users/"+uuid.NewString(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "user not found")
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users/42", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid user id")
	})
}

// ================================================================================
// TestUpdate / TestDelete
// ================================================================================

func (s *UserHandlerTestSuite) TestUpdate() {
	id := uuid.New()
	url := "/users/" + id.String()

	s.Run("success: role and active flag", func() {
		role := "admin"
		inactive := false
		view := builder.NewUserBuilder().AsAdmin().AsInactive().BuildReadModel()
		s.mockCommands.EXPECT().Update(gomock.Any(), s.actor, id, commands.UpdateUserInput{
			Role:     &role,
			IsActive: &inactive,
		}).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url,
			map[string]any{"role": "admin", "is_active": false}, "bearer-token")

		var body queries.AuthorizedUserView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("admin", body.Role)
		s.False(body.IsActive)
	})

	s.Run("error: 400 on unknown role", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url,
			map[string]any{"role": "owner"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 409 when an admin would lock themselves out", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrSelfLockout).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url,
			map[string]any{"is_active": false}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "their own account")
	})

	s.Run("error: 404 when missing", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrUserNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url,
			map[string]any{"name": "Someone"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "user not found")
	})
}

func (s *UserHandlerTestSuite) TestDelete() {
	id := uuid.New()
	url := "/users/" + id.String()

	s.Run("success: 204 No Content", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), s.actor, id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 while upcoming bookings exist", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(commands.ErrUserInUse).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "upcoming reservations")
	})
}
