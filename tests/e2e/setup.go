//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"court-booking/cmd/bootstrap"
	"court-booking/cmd/bootstrap/components"
	"court-booking/internal/infra/db"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/config"
	"court-booking/tests/common/dbtest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

var migrationFiles = []string{
	"migrations/001_initial_schema.sql",
}

// SharedSuite boots the whole application against real Postgres and Redis.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	cfg := config.NewTestConfig()
	cfg.DB = createDatabase(t, postgresEndpoint(t))
	cfg.Redis.Addr = redisEndpoint(t).Addr()

	pool, closePool, err := db.Connect(context.Background(), cfg.DB)
	require.NoError(t, err, "connect to test database")
	t.Cleanup(closePool)
	require.NoError(t, applyMigrations(pool))

	s.DB = pool
	s.Config = cfg
	s.Router = startApp(t, pool, cfg)
}

func (s *SharedSuite) SetupTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "reset database")
}

// SetupSubTest gives every s.Run its own empty tables.
func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "reset database")
}

func createDatabase(t *testing.T, ep Endpoint) config.DBConfig {
	t.Helper()

	name := "court_booking_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, adminDSN(ep, "postgres"))
	require.NoError(t, err, "connect as admin")
	defer admin.Close()

	// CREATE DATABASE can race with template1 being copied by a parallel suite
	for attempt := 1; ; attempt++ {
		if _, err = admin.Exec(ctx, "CREATE DATABASE "+name); err == nil || attempt == 5 {
			break
		}
		slog.Warn("retrying database creation", "attempt", attempt, "error", err.Error())
		time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
	}
	require.NoError(t, err, "create test database")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, adminDSN(ep, "postgres"))
		if err != nil {
			return
		}
		defer admin.Close()
		if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("failed to drop test database", "database", name, "error", err.Error())
		}
	})

	return config.DBConfig{
		Host:     ep.Host,
		Port:     ep.Port.Port(),
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 20,
	}
}

// applyMigrations looks for the migration files from the package directory upwards.
func applyMigrations(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, file := range migrationFiles {
		sql, err := readUpwards(file)
		if err != nil {
			return err
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply %s: %w", file, err)
		}
	}
	return nil
}

func readUpwards(rel string) ([]byte, error) {
	path := rel
	for range 4 {
		b, err := os.ReadFile(path)
		if err == nil {
			return b, nil
		}
		path = filepath.Join("..", path)
	}
	return nil, fmt.Errorf("migration %s not found above the working directory", rel)
}

// startApp wires the production modules around the test pool and config.
func startApp(t *testing.T, pool *pgxpool.Pool, cfg config.Config) *gin.Engine {
	t.Helper()

	var router *gin.Engine
	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(
			func() *pgxpool.Pool { return pool },
			func() *gin.Engine { return gin.New() },
			clock.NewRealClock,
		),
		bootstrap.LoggerModule,
		bootstrap.RedisModule,
		bootstrap.EventsModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "start application")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop application", "error", err.Error())
		}
	})
	return router
}
