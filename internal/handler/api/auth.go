package api

import (
	"net/http"

	reqdto "court-booking/internal/handler/dto/request"
	resdto "court-booking/internal/handler/dto/response"
	"court-booking/internal/handler/httperr"
	"court-booking/internal/pkg/config"
	"court-booking/internal/pkg/cookie"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	cmds commands.AuthCommands
	q    queries.UserQueries
	cfg  config.CookieConfig
}

func NewAuthHandler(cmds commands.AuthCommands, q queries.UserQueries, cfg config.Config) *AuthHandler {
	return &AuthHandler{cmds: cmds, q: q, cfg: cfg.Cookie}
}

// @Summary Register
// @Description Create a customer account and sign in.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterRequest true "Register request"
// @Success 201 {object} resdto.AuthResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, err)
		return
	}
	result, err := h.cmds.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusCreated, result)
}

// @Summary Login
// @Description Login with email and password. The token is also set as an HttpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.AuthResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, err)
		return
	}
	result, err := h.cmds.Login(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusOK, result)
}

// @Summary Logout
// @Description Clears the access token cookie. Tokens stay valid until they expire.
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearAccessToken(c, h.cfg)
	c.Status(http.StatusNoContent)
}

// @Summary Current user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} queries.AuthorizedUserView
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	u, err := h.q.GetCurrentUser(c.Request.Context(), actor.UserID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *AuthHandler) respond(c *gin.Context, status int, result *commands.AuthResult) {
	cookie.SetAccessToken(c, h.cfg, result.AccessToken, result.ExpiresIn)
	c.JSON(status, resdto.AuthResponse{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(result.ExpiresIn.Seconds()),
		User:        result.User,
	})
}
