//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"court-booking/internal/handler/dto/request"
	resdto "court-booking/internal/handler/dto/response"
	"court-booking/internal/pkg/cookie"
	"court-booking/internal/usecase/queries"
	"court-booking/tests/common/dbtest"
	"court-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// Session is what a successful login hands back: the bearer token and the cookies set with it.
type Session struct {
	Token   string
	Cookies []*http.Cookie
	User    *queries.AuthorizedUserView
}

func Login(t *testing.T, router *gin.Engine, email, password string) Session {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res resdto.AuthResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))

	access := httptest.ExtractCookie(w, cookie.AccessTokenCookieName)
	require.NotNil(t, access, "login did not set the access token cookie")
	require.Equal(t, res.AccessToken, access.Value)

	return Session{Token: res.AccessToken, Cookies: httptest.ExtractCookies(w), User: res.User}
}

// CreateAndLogin inserts a user with dbtest.TestPasswordHash and logs them in.
func CreateAndLogin(t *testing.T, db dbtest.DBLike, router *gin.Engine, email, role string) Session {
	t.Helper()
	dbtest.CreateTestUser(t, db, email, role)
	return Login(t, router, email, "password123")
}
