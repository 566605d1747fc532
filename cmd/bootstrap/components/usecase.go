package components

import (
	"context"
	"log/slog"
	"time"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/config"
	"court-booking/internal/pkg/password"
	"court-booking/internal/usecase"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
	fx.Invoke(SeedAdmin),
)

var usecaseBaseOption = fx.Provide(
	func(cfg config.Config) reservation.PriceCalculator {
		return reservation.NewPriceCalculator(reservation.PricingMode(cfg.Booking.PricingMode))
	},
	func(cfg config.Config, clk clock.Clock, calc reservation.PriceCalculator) (*reservation.Factory, error) {
		loc, err := cfg.Booking.Location()
		if err != nil {
			return nil, err
		}
		return reservation.NewFactory(clk, calc, loc), nil
	},
	fx.Annotate(
		password.NewDefaultHasher,
		fx.As(new(commands.PasswordHasher)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewCourtCommands,
		commands.NewReservationCommands,
		commands.NewUserCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewCourtQueries,
		queries.NewReservationQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

// SeedAdmin creates the configured admin account on start. Existing accounts are left alone.
func SeedAdmin(lc fx.Lifecycle, cfg config.Config, auth commands.AuthCommands) {
	if cfg.Admin.Email == "" {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			created, err := auth.EnsureAdmin(ctx, commands.RegisterInput{
				Name:     cfg.Admin.Name,
				Email:    cfg.Admin.Email,
				Password: cfg.Admin.Password,
			})
			if err != nil {
				return err
			}
			if created {
				slog.Info("Admin account created", "email", cfg.Admin.Email)
			}
			return nil
		},
	})
}
