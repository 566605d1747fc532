package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"court-booking/internal/pkg/config"
	"court-booking/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
	),
)

// NewRedisClient returns nil when REDIS_ADDR is unset, which disables the court cache.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrap(err, "failed to ping redis")
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			slog.Info("redis client closed")
			return client.Close()
		},
	})

	return client, nil
}
