package queries

import (
	"time"

	"github.com/google/uuid"
)

// ReservationView is the read model shown to owners and admins.
type ReservationView struct {
	ID            uuid.UUID `json:"id"`
	CourtID       uuid.UUID `json:"court_id"`
	CourtName     string    `json:"court_name"`
	CourtType     string    `json:"court_type"`
	UserID        uuid.UUID `json:"user_id"`
	UserName      string    `json:"user_name"`
	UserEmail     string    `json:"user_email"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	TotalPrice    int64     `json:"total_price"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CourtView struct {
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

type BookedSlotView struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        string    `json:"status"`
}

// AvailabilityView lists the occupied intervals of one court on one day.
type AvailabilityView struct {
	CourtID     uuid.UUID         `json:"court_id"`
	Date        string            `json:"date"`
	OpeningTime string            `json:"opening_time"`
	ClosingTime string            `json:"closing_time"`
	Open        bool              `json:"open"`
	Booked      []*BookedSlotView `json:"booked"`
}

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// ReservationFilter narrows the admin listing. Nil fields match everything.
type ReservationFilter struct {
	CourtID *uuid.UUID
	Date    *string
	Status  *string
	Limit   int
	Offset  int
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
