//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"
)

// Endpoint is a host:port pair published by a test container.
type Endpoint struct {
	Host string
	Port nat.Port
}

func (e Endpoint) Addr() string {
	return e.Host + ":" + e.Port.Port()
}

// One container of each kind per test process; every suite gets its own database.
var (
	postgresOnce sync.Once
	postgresEP   Endpoint
	postgresErr  error

	redisOnce sync.Once
	redisEP   Endpoint
	redisErr  error
)

func adminDSN(ep Endpoint, dbName string) string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", pgUser, pgPassword, ep.Addr(), dbName)
}

func postgresEndpoint(t *testing.T) Endpoint {
	t.Helper()
	postgresOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
			// durability is irrelevant for throwaway data
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "full_page_writes=off",
				"-c", "synchronous_commit=off",
				"-c", "max_connections=200",
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return adminDSN(Endpoint{Host: host, Port: port}, "postgres")
			}).WithStartupTimeout(60 * time.Second),
			Labels: map[string]string{"purpose": "court-booking-e2e"},
		}
		postgresEP, postgresErr = startContainer(req, "5432/tcp")
	})
	require.NoError(t, postgresErr, "start postgres container")
	return postgresEP
}

func redisEndpoint(t *testing.T) Endpoint {
	t.Helper()
	redisOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			Cmd:          []string{"redis-server", "--save", "", "--appendonly", "no"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
			Labels:       map[string]string{"purpose": "court-booking-e2e"},
		}
		redisEP, redisErr = startContainer(req, "6379/tcp")
	})
	require.NoError(t, redisErr, "start redis container")
	return redisEP
}

// startContainer leaves termination to the testcontainers reaper.
func startContainer(req testcontainers.ContainerRequest, port nat.Port) (Endpoint, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return Endpoint{}, err
	}

	host, err := c.Host(ctx)
	if err != nil {
		return Endpoint{}, err
	}
	mapped, err := c.MappedPort(ctx, port)
	if err != nil {
		return Endpoint{}, err
	}

	slog.Info("container ready", "image", req.Image, "host", host, "port", mapped.Port())
	return Endpoint{Host: host, Port: mapped}, nil
}
