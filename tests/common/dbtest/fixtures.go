//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123"
const TestPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	name, _, _ := strings.Cut(email, "@")
	tag, err := db.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		ON CONFLICT (email) DO NOTHING`,
		userID, name, email, TestPasswordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		err = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
		require.NoError(t, err)
	}

	return userID
}

// InsertReservation writes a pending reservation row directly, bypassing the slot lock.
func InsertReservation(t *testing.T, db DBLike, courtID, userID uuid.UUID, date, start, end string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO reservations (id, court_id, user_id, booking_date, start_time, end_time, total_price)
		VALUES ($1, $2, $3, $4::date, $5::time, $6::time, 0)`,
		id, courtID, userID, date, start, end)
	require.NoError(t, err)
	return id
}

// CourtFixture describes a court row; zero values fall back to a 06:00-22:00 court at 500 per hour.
type CourtFixture struct {
	Name          string
	Type          string
	PricePerHour  int64
	OpeningTime   string
	ClosingTime   string
	AvailableDays []int16
	Inactive      bool
}

func CreateTestCourt(t *testing.T, db DBLike, f CourtFixture) uuid.UUID {
	t.Helper()

	if f.Name == "" {
		f.Name = "Center Court"
	}
	if f.Type == "" {
		f.Type = "Indoor"
	}
	if f.PricePerHour == 0 {
		f.PricePerHour = 500
	}
	if f.OpeningTime == "" {
		f.OpeningTime = "06:00"
	}
	if f.ClosingTime == "" {
		f.ClosingTime = "22:00"
	}
	if f.AvailableDays == nil {
		f.AvailableDays = []int16{}
	}

	courtID := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO courts (id, name, court_type, price_per_hour, opening_time, closing_time, available_days, is_active)
		VALUES ($1, $2, $3, $4, $5::time, $6::time, $7, $8)`,
		courtID, f.Name, f.Type, f.PricePerHour, f.OpeningTime, f.ClosingTime, f.AvailableDays, !f.Inactive)
	require.NoError(t, err)

	return courtID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
