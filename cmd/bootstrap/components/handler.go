package components

import (
	"court-booking/internal/handler"
	"court-booking/internal/handler/api"
	"court-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewCourtHandler,
		api.NewBookingHandler,
		api.NewUserHandler,
		middleware.NewAuthMiddleware,
		func(auth *api.AuthHandler, courts *api.CourtHandler, booking *api.BookingHandler, users *api.UserHandler) handler.Handlers {
			return handler.Handlers{Auth: auth, Courts: courts, Booking: booking, Users: users}
		},
	),
	fx.Invoke(handler.NewRouter),
)
