package shared

import (
	"context"
	"time"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the authenticated caller on whose behalf a use case runs.
type Actor struct {
	UserID uuid.UUID
	Role   user.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role.IsAdmin()
}

// CourtLookup is the read-only court collaborator used by booking flows.
type CourtLookup interface {
	CourtByID(ctx context.Context, id uuid.UUID) (*court.Court, error)
	Invalidate(ctx context.Context, id uuid.UUID) error
}

type EventType string

const (
	EventBookingCreated       EventType = "booking.created"
	EventBookingStatusChanged EventType = "booking.status_changed"
	EventBookingCancelled     EventType = "booking.cancelled"
	EventBookingDeleted       EventType = "booking.deleted"
)

type BookingEvent struct {
	Type          EventType `json:"type"`
	ReservationID uuid.UUID `json:"reservation_id"`
	CourtID       uuid.UUID `json:"court_id"`
	UserID        uuid.UUID `json:"user_id"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	TotalPrice    int64     `json:"total_price"`
	ActorID       uuid.UUID `json:"actor_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// EventPublisher delivers booking events after the owning transaction commits.
type EventPublisher interface {
	Publish(ctx context.Context, event BookingEvent) error
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, BookingEvent) error { return nil }
