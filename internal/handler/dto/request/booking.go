package request

import (
	"court-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

// CreateBookingRequest leaves date and time checks to the use case so a past
// date is reported before a malformed time.
type CreateBookingRequest struct {
	CourtID   string `json:"court_id" binding:"required,uuid"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Notes     string `json:"notes" binding:"max=1000"`
}

func (r CreateBookingRequest) ToInput() (commands.CreateReservationInput, error) {
	courtID, err := uuid.Parse(r.CourtID)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}
	return commands.CreateReservationInput{
		CourtID:   courtID,
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Notes:     r.Notes,
	}, nil
}

type UpdateBookingRequest struct {
	Status        *string `json:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
	PaymentStatus *string `json:"payment_status" binding:"omitempty,oneof=pending paid refunded"`
	Notes         *string `json:"notes" binding:"omitempty,max=1000"`
}

func (r UpdateBookingRequest) ToInput() commands.UpdateReservationInput {
	return commands.UpdateReservationInput{
		Status:        r.Status,
		PaymentStatus: r.PaymentStatus,
		Notes:         r.Notes,
	}
}

// BookingFilterQuery binds the admin listing query string.
type BookingFilterQuery struct {
	CourtID string `form:"court_id" binding:"omitempty,uuid"`
	Date    string `form:"date"`
	Status  string `form:"status"`
	Limit   int    `form:"limit" binding:"omitempty,min=0"`
	Offset  int    `form:"offset" binding:"omitempty,min=0"`
}
