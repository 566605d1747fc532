package handler

import (
	"net/http"
	"slices"

	"court-booking/internal/domain/user"
	"court-booking/internal/handler/api"
	reqdto "court-booking/internal/handler/dto/request"
	"court-booking/internal/handler/middleware"
	"court-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth    *api.AuthHandler
	Courts  *api.CourtHandler
	Booking *api.BookingHandler
	Users   *api.UserHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) error {
	if err := reqdto.RegisterValidators(); err != nil {
		return err
	}
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware, cfg.Store.Driver)
	return nil
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, store string) {
	engine.GET("/health", healthCheck(store))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := authMiddleware.RequireAuth()
	adminOnly := authMiddleware.RequireRole(user.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me, Mw: []gin.HandlerFunc{requireAuth}},
				{Method: http.MethodPut, Path: "/me", Handler: h.Users.UpdateProfile, Mw: []gin.HandlerFunc{requireAuth}},
			})
		}

		courts := apiGroup.Group("/courts")
		{
			addRoutes(courts, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Courts.List, Mw: []gin.HandlerFunc{authMiddleware.OptionalAuth()}},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Courts.Get},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: h.Courts.Availability},
				{Method: http.MethodPost, Path: "", Handler: h.Courts.Create, Mw: []gin.HandlerFunc{requireAuth, adminOnly}},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Courts.Update, Mw: []gin.HandlerFunc{requireAuth, adminOnly}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Courts.Delete, Mw: []gin.HandlerFunc{requireAuth, adminOnly}},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(requireAuth)
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Booking.Create},
				{Method: http.MethodGet, Path: "/mine", Handler: h.Booking.ListMine},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
				{Method: http.MethodPut, Path: "/:id/cancel", Handler: h.Booking.Cancel},
				{Method: http.MethodGet, Path: "", Handler: h.Booking.ListAll, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Booking.Update, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Booking.Delete, Mw: []gin.HandlerFunc{adminOnly}},
			})
		}

		users := apiGroup.Group("/users")
		users.Use(requireAuth, adminOnly)
		{
			addRoutes(users, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Users.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Users.Get},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Users.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Users.Delete},
			})
		}
	}
}

// @Summary Health check
// @Description Reports liveness and which reservation store is active
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(store string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"store":  store,
		})
	}
}

// addRoutes registers each route with its own middleware ahead of the handler.
func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		g.Handle(r.Method, r.Path, slices.Concat(r.Mw, []gin.HandlerFunc{r.Handler})...)
	}
}
