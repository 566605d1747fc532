package components

import (
	"court-booking/internal/infra/cache"
	"court-booking/internal/infra/memstore"
	"court-booking/internal/infra/readstore"
	"court-booking/internal/infra/uow"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/config"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewPersistence,
		NewCourtLookup,
	),
)

// Persistence is the write and read side chosen by STORE_DRIVER.
type Persistence struct {
	fx.Out

	UnitOfWork   shared.UnitOfWork
	Reservations queries.ReservationReadStore
	Courts       queries.CourtReadStore
	Users        queries.UserReadStore
}

func NewPersistence(cfg config.Config, pool *pgxpool.Pool, clk clock.Clock) (Persistence, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		if pool == nil {
			return Persistence{}, errs.New("postgres store requires a database pool")
		}
		return Persistence{
			UnitOfWork:   uow.NewPostgresUoW(pool),
			Reservations: readstore.NewReservationReadStore(pool),
			Courts:       readstore.NewCourtReadStore(pool),
			Users:        readstore.NewUserReadStore(pool),
		}, nil
	case config.StoreDriverMemory:
		store := memstore.NewStore(clk)
		return Persistence{
			UnitOfWork:   memstore.NewUnitOfWork(store),
			Reservations: memstore.NewReservationReadStore(store),
			Courts:       memstore.NewCourtReadStore(store),
			Users:        memstore.NewUserReadStore(store),
		}, nil
	default:
		return Persistence{}, errs.New("unsupported store driver " + cfg.Store.Driver)
	}
}

// NewCourtLookup puts the Redis court cache in front of the store when a client is configured.
func NewCourtLookup(cfg config.Config, client *redis.Client, unitOfWork shared.UnitOfWork) shared.CourtLookup {
	if client == nil {
		return cache.NewDirectLookup(unitOfWork.CommandReads())
	}
	return cache.NewCourtCache(client, unitOfWork.CommandReads(), cfg.Redis.CourtTTL)
}
