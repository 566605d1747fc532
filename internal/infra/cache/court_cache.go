// Package cache keeps court lookups for booking flows in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/slot"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const courtKeyPrefix = "court:"

func courtKey(id uuid.UUID) string {
	return courtKeyPrefix + id.String()
}

// CourtCache is a read-through cache in front of CommandReads. Redis failures
// degrade to direct reads and are only logged.
type CourtCache struct {
	client redis.Cmdable
	reads  shared.CommandReads
	ttl    time.Duration
}

func NewCourtCache(client redis.Cmdable, reads shared.CommandReads, ttl time.Duration) *CourtCache {
	return &CourtCache{client: client, reads: reads, ttl: ttl}
}

func (c *CourtCache) CourtByID(ctx context.Context, id uuid.UUID) (*court.Court, error) {
	key := courtKey(id)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		cached, decodeErr := decodeCourt(raw)
		if decodeErr == nil {
			return cached, nil
		}
		slog.Warn("discarding unreadable court cache entry", "court_id", id, "error", decodeErr.Error())
	case errors.Is(err, redis.Nil):
	default:
		slog.Warn("court cache read failed", "court_id", id, "error", err.Error())
		return c.reads.CourtByID(ctx, id)
	}

	loaded, err := c.reads.CourtByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := encodeCourt(loaded)
	if err != nil {
		slog.Warn("court cache encode failed", "court_id", id, "error", err.Error())
		return loaded, nil
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Warn("court cache write failed", "court_id", id, "error", err.Error())
	}
	return loaded, nil
}

func (c *CourtCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, courtKey(id)).Err(); err != nil {
		return errs.Wrap(err, "invalidate court cache")
	}
	return nil
}

// DirectLookup reads courts without caching. Used when Redis is not configured.
type DirectLookup struct {
	reads shared.CommandReads
}

func NewDirectLookup(reads shared.CommandReads) *DirectLookup {
	return &DirectLookup{reads: reads}
}

func (d *DirectLookup) CourtByID(ctx context.Context, id uuid.UUID) (*court.Court, error) {
	return d.reads.CourtByID(ctx, id)
}

func (d *DirectLookup) Invalidate(context.Context, uuid.UUID) error { return nil }

type courtSnapshot struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	PricePerHour  int64     `json:"price_per_hour"`
	Description   string    `json:"description"`
	Facilities    []string  `json:"facilities"`
	OpeningTime   string    `json:"opening_time"`
	ClosingTime   string    `json:"closing_time"`
	AvailableDays []string  `json:"available_days"`
	Image         string    `json:"image"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func encodeCourt(c *court.Court) ([]byte, error) {
	return json.Marshal(courtSnapshot{
		ID:            c.ID(),
		Name:          c.Name(),
		Type:          c.Type().String(),
		PricePerHour:  c.PricePerHour(),
		Description:   c.Description(),
		Facilities:    c.Facilities(),
		OpeningTime:   c.OpeningTime().String(),
		ClosingTime:   c.ClosingTime().String(),
		AvailableDays: court.WeekdayNames(c.AvailableDays()),
		Image:         c.Image(),
		IsActive:      c.IsActive(),
		CreatedAt:     c.CreatedAt(),
		UpdatedAt:     c.UpdatedAt(),
	})
}

func decodeCourt(raw []byte) (*court.Court, error) {
	var s courtSnapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	courtType, err := court.ParseType(s.Type)
	if err != nil {
		return nil, err
	}
	opening, err := slot.ParseTimeOfDay(s.OpeningTime)
	if err != nil {
		return nil, err
	}
	closing, err := slot.ParseTimeOfDay(s.ClosingTime)
	if err != nil {
		return nil, err
	}
	days, err := court.ParseWeekdays(s.AvailableDays)
	if err != nil {
		return nil, err
	}
	return court.ReconstructCourt(
		s.ID, s.Name, courtType, s.PricePerHour, s.Description, s.Facilities,
		opening, closing, days, s.Image, s.IsActive, s.CreatedAt, s.UpdatedAt,
	), nil
}
