package bootstrap

import (
	"context"
	"log/slog"

	"court-booking/internal/infra/events"
	"court-booking/internal/pkg/config"
	"court-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewEventPublisher,
	),
)

// NewEventPublisher falls back to a no-op publisher when RABBITMQ_URL is unset.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) (shared.EventPublisher, error) {
	if cfg.Events.URL == "" {
		slog.Info("Event publishing disabled")
		return shared.NoopPublisher{}, nil
	}

	publisher, err := events.NewRabbitPublisher(cfg.Events.URL, cfg.Events.Exchange)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})

	return publisher, nil
}
