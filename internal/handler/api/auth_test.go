//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"court-booking/internal/domain/user"
	"court-booking/internal/handler/api"
	reqdto "court-booking/internal/handler/dto/request"
	resdto "court-booking/internal/handler/dto/response"
	"court-booking/internal/pkg/config"
	"court-booking/internal/pkg/cookie"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"
	"court-booking/tests/common/builder"
	"court-booking/tests/common/httptest"
	"court-booking/tests/common/testutil"
	commandsmock "court-booking/tests/mock/commands"
	queriesmock "court-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockUserQueries
	handler      *api.AuthHandler
	actor        shared.Actor
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(reqdto.RegisterValidators())
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockQueries, config.Config{
		Cookie: config.CookieConfig{SameSite: "Strict"},
	})
	s.actor = shared.Actor{UserID: uuid.New(), Role: user.RoleCustomer}

	s.router.POST("/auth/register", s.handler.Register)
	s.router.POST("/auth/login", s.handler.Login)
	s.router.POST("/auth/logout", s.handler.Logout)
	s.router.GET("/auth/me", fakeAuth(&s.actor), s.handler.Me)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) authResult() *commands.AuthResult {
	return &commands.AuthResult{
		AccessToken: "signed.jwt.token",
		ExpiresIn:   time.Hour,
		User:        builder.NewUserBuilder().BuildReadModel(),
	}
}

// ================================================================================
// TestLogin
// ================================================================================

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"
	reqBody := builder.NewAuthBuilder().BuildDTO()

	s.Run("success: returns token and sets HttpOnly cookie", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), commands.LoginInput{
			Email:    "test@example.com",
			Password: "password123",
		}).Return(s.authResult(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.AuthResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("signed.jwt.token", body.AccessToken)
		s.Equal("Bearer", body.TokenType)
		s.Equal(int64(3600), body.ExpiresIn)
		s.Equal("test@example.com", body.User.Email)

		c := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(c)
		s.Equal("signed.jwt.token", c.Value)
		s.True(c.HttpOnly)
		s.Equal(http.SameSiteStrictMode, c.SameSite)
	})

	s.Run("validation", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing email", mutate: testutil.Field("email", nil)},
			{name: "malformed email", mutate: testutil.Field("email", "not-an-email")},
			{name: "missing password", mutate: testutil.Field("password", nil)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
					testutil.DtoMap(s.T(), reqBody, tc.mutate), "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: 401 on bad credentials", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrInvalidCredentials).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "invalid email or password")
		s.Nil(httptest.ExtractCookie(rec, cookie.AccessTokenCookieName))
	})
}

// ================================================================================
// TestRegister
// ================================================================================

func (s *AuthHandlerTestSuite) TestRegister() {
	url := "/auth/register"
	reqBody := builder.NewAuthBuilder().BuildRegisterDTO()

	s.Run("success: 201 Created", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), commands.RegisterInput{
			Name:     "Test User",
			Email:    "test@example.com",
			Password: "password123",
		}).Return(s.authResult(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.AuthResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("customer", body.User.Role)
		s.NotNil(httptest.ExtractCookie(rec, cookie.AccessTokenCookieName))
	})

	s.Run("error: 400 on short password", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			testutil.DtoMap(s.T(), reqBody, testutil.Field("password", "short")), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 409 when the email is taken", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrEmailTaken).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already registered")
	})
}

// ================================================================================
// TestLogout / TestMe
// ================================================================================

func (s *AuthHandlerTestSuite) TestLogout() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "")

	s.Equal(http.StatusNoContent, rec.Code)
	c := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
	s.Require().NotNil(c)
	s.Empty(c.Value)
	s.Less(c.MaxAge, 0)
}

func (s *AuthHandlerTestSuite) TestMe() {
	s.Run("success", func() {
		view := builder.NewUserBuilder().BuildReadModel()
		view.ID = s.actor.UserID
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.actor.UserID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "bearer-token")

		var body queries.AuthorizedUserView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(s.actor.UserID, body.ID)
	})

	s.Run("error: 401 for a deactivated account", func() {
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrUserInactive).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "user inactive")
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}
