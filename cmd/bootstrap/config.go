package bootstrap

import (
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		clock.NewRealClock,
	),
)
