//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by *pgxpool.Pool, *pgxpool.Conn and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CountActiveReservations counts the non-cancelled reservations of a court.
func CountActiveReservations(t *testing.T, db DBLike, courtID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM reservations WHERE court_id = $1 AND status <> 'cancelled'", courtID).Scan(&n)
	require.NoError(t, err)
	return n
}
