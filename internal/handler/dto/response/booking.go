package response

import (
	"time"

	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type CourtSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Type string    `json:"type"`
}

type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name,omitempty"`
	Email string    `json:"email,omitempty"`
}

type BookingResponse struct {
	ID            uuid.UUID    `json:"id"`
	Court         CourtSummary `json:"court"`
	User          UserSummary  `json:"user"`
	Date          string       `json:"date"`
	StartTime     string       `json:"start_time"`
	EndTime       string       `json:"end_time"`
	TotalPrice    int64        `json:"total_price"`
	Status        string       `json:"status"`
	PaymentStatus string       `json:"payment_status"`
	Notes         string       `json:"notes"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func FromReservationView(v *queries.ReservationView) *BookingResponse {
	return &BookingResponse{
		ID:            v.ID,
		Court:         CourtSummary{ID: v.CourtID, Name: v.CourtName, Type: v.CourtType},
		User:          UserSummary{ID: v.UserID, Name: v.UserName, Email: v.UserEmail},
		Date:          v.Date,
		StartTime:     v.StartTime,
		EndTime:       v.EndTime,
		TotalPrice:    v.TotalPrice,
		Status:        v.Status,
		PaymentStatus: v.PaymentStatus,
		Notes:         v.Notes,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func FromReservationViews(views []*queries.ReservationView) []*BookingResponse {
	out := make([]*BookingResponse, len(views))
	for i, v := range views {
		out[i] = FromReservationView(v)
	}
	return out
}
