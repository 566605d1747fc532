//go:build unit

package middleware_test

import (
	"net/http"
	"testing"

	"court-booking/internal/domain/user"
	"court-booking/internal/handler/middleware"
	"court-booking/internal/pkg/cookie"
	"court-booking/internal/pkg/jwt"
	"court-booking/internal/usecase/shared"
	"court-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator map[string]shared.Actor

func (v stubValidator) ValidateToken(token string) (shared.Actor, error) {
	actor, ok := v[token]
	if !ok {
		return shared.Actor{}, jwt.ErrInvalidToken
	}
	return actor, nil
}

func newRouter(v stubValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := middleware.NewAuthMiddleware(v)
	r := gin.New()

	whoami := func(c *gin.Context) {
		actor, ok := middleware.GetActor(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"role": ""})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": actor.UserID.String(), "role": string(actor.Role)})
	}
	r.GET("/private", m.RequireAuth(), whoami)
	r.GET("/admin", m.RequireAuth(), m.RequireRole(user.RoleAdmin), whoami)
	r.GET("/public", m.OptionalAuth(), whoami)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	customerID, adminID := uuid.New(), uuid.New()
	router := newRouter(stubValidator{
		"customer-token": {UserID: customerID, Role: user.RoleCustomer},
		"admin-token":    {UserID: adminID, Role: user.RoleAdmin},
	})

	t.Run("missing token is 401", func(t *testing.T) {
		w := httptest.PerformRequest(t, router, http.MethodGet, "/private", nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Access token required")
	})

	t.Run("invalid token is 401", func(t *testing.T) {
		w := httptest.PerformRequest(t, router, http.MethodGet, "/private", nil, "forged")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("bearer token sets the actor", func(t *testing.T) {
		w := httptest.PerformRequest(t, router, http.MethodGet, "/private", nil, "customer-token")
		var body map[string]string
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &body)
		assert.Equal(t, customerID.String(), body["id"])
		assert.Equal(t, "customer", body["role"])
	})

	t.Run("cookie token is accepted", func(t *testing.T) {
		cookies := []*http.Cookie{{Name: cookie.AccessTokenCookieName, Value: "admin-token"}}
		w := httptest.PerformRequestWithCookies(t, router, http.MethodGet, "/private", nil, cookies, "")
		var body map[string]string
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &body)
		assert.Equal(t, adminID.String(), body["id"])
	})

	t.Run("customer is forbidden from admin routes", func(t *testing.T) {
		w := httptest.PerformRequest(t, router, http.MethodGet, "/admin", nil, "customer-token")
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Insufficient permissions")
	})

	t.Run("admin passes the role check", func(t *testing.T) {
		w := httptest.PerformRequest(t, router, http.MethodGet, "/admin", nil, "admin-token")
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("optional auth never aborts", func(t *testing.T) {
		for _, token := range []string{"", "forged"} {
			w := httptest.PerformRequest(t, router, http.MethodGet, "/public", nil, token)
			var body map[string]string
			httptest.AssertSuccessResponse(t, w, http.StatusOK, &body)
			assert.Empty(t, body["role"])
		}

		w := httptest.PerformRequest(t, router, http.MethodGet, "/public", nil, "admin-token")
		var body map[string]string
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &body)
		assert.Equal(t, "admin", body["role"])
	})
}
